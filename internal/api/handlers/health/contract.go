package health

import "context"

// Pinger зависимость, доступность которой проверяет readiness
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}
