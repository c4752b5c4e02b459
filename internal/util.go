package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// Reverse reverses s in place.
func Reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// ParsePair parses "a,b" into two integers. Surrounding spaces are ignored.
func ParsePair(s string) (int, int, error) {
	first, second, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected \"row,col\", got %q", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, fmt.Errorf("row %q: %w", first, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, fmt.Errorf("col %q: %w", second, err)
	}
	return a, b, nil
}
