package ptr

// Ptr возвращает указатель на копию значения
func Ptr[T any](v T) *T {
	return &v
}

// Value разыменовывает указатель, возвращая fallback для nil
func Value[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
