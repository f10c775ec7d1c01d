package sizeparser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSize - parses a human-readable size string ("200B", "32KB", "5MB",
// "10GB", case-insensitive) into a byte count.
func ParseSize(size string) (int, error) {
	units := []struct {
		suffix string
		shift  int
	}{
		{"GB", 30},
		{"MB", 20},
		{"KB", 10},
		{"B", 0},
	}

	upper := strings.ToUpper(strings.TrimSpace(size))
	for _, unit := range units {
		if !strings.HasSuffix(upper, unit.suffix) {
			continue
		}

		num, err := strconv.Atoi(strings.TrimSuffix(upper, unit.suffix))
		if err != nil {
			return 0, fmt.Errorf("invalid size %q: %w", size, err)
		}
		if num < 0 {
			return 0, fmt.Errorf("invalid size %q: negative value", size)
		}

		return num << unit.shift, nil
	}

	return 0, fmt.Errorf("invalid size %q: unknown unit", size)
}
