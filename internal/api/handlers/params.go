package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIDList разбирает список id через запятую ("1,2,3").
// Пустая строка дает пустой, но не nil список
func ParseIDList(raw string) ([]int64, error) {
	ids := []int64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
