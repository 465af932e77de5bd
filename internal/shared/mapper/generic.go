// Package mapper provides generic helpers for mapping between persistence
// rows and domain entities.
package mapper

import "fmt"

// Rows maps a slice of gorm rows through mapFunc, stopping at the first
// failure. The row is passed by pointer so mappers can share the single-row
// signature used everywhere else.
func Rows[T any, R any](rows []T, mapFunc func(*T) (R, error)) ([]R, error) {
	result := make([]R, 0, len(rows))
	for i := range rows {
		mapped, err := mapFunc(&rows[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map row %d: %w", i, err)
		}
		result = append(result, mapped)
	}
	return result, nil
}
