package autoscaling

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/asgkit/asgkit/internal/types"
)

var ErrInvalidSliceBound = errors.New("invalid slice bound")

// SliceBoundError reports a sort_start/sort_end value that is not an integer.
type SliceBoundError struct {
	Bound string
	Value string
}

func (e *SliceBoundError) Error() string {
	return fmt.Sprintf("%s: %s must be an integer, got %q", ErrInvalidSliceBound, e.Bound, e.Value)
}

func (e *SliceBoundError) Unwrap() error {
	return ErrInvalidSliceBound
}

// Search filters records by name, optionally sorts them by name and then applies the
// half-open [start, end) slice. The input slice is never modified.
func Search(records []types.LaunchConfigRecord, query types.LaunchConfigQuery) ([]types.LaunchConfigRecord, error) {
	start, err := parseBound("sort_start", query.SortStart)
	if err != nil {
		return nil, err
	}
	end, err := parseBound("sort_end", query.SortEnd)
	if err != nil {
		return nil, err
	}

	matched, err := filterByName(records, query.NameRegex)
	if err != nil {
		return nil, err
	}

	if query.Sort {
		order := query.SortOrder
		if order == "" {
			order = types.SortOrderAscending
		}
		if !order.IsValid() {
			return nil, fmt.Errorf("invalid sort order %q, expected ascending or descending", query.SortOrder)
		}

		slices.SortStableFunc(matched, func(a, b types.LaunchConfigRecord) int {
			return strings.Compare(a.Name, b.Name)
		})
		if order == types.SortOrderDescending {
			slices.Reverse(matched)
		}
	}

	lo, hi := sliceRange(len(matched), start, end)
	return matched[lo:hi], nil
}

func filterByName(records []types.LaunchConfigRecord, nameRegex string) ([]types.LaunchConfigRecord, error) {
	if nameRegex == "" {
		return slices.Clone(records), nil
	}

	// Anchored at the start only: "app" matches "app-1" but not "my-app".
	pattern, err := regexp.Compile(`^(?:` + nameRegex + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid name regex %q: %w", nameRegex, err)
	}

	matched := []types.LaunchConfigRecord{}
	for _, record := range records {
		if pattern.MatchString(record.Name) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

func parseBound(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &SliceBoundError{Bound: name, Value: raw}
	}
	return &value, nil
}

// sliceRange resolves optional bounds the way a Python slice does: negative values count
// from the end and out-of-range values clamp.
func sliceRange(length int, start, end *int) (int, int) {
	lo, hi := 0, length
	if start != nil {
		lo = clampIndex(*start, length)
	}
	if end != nil {
		hi = clampIndex(*end, length)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func clampIndex(index, length int) int {
	if index < 0 {
		index += length
	}
	return min(max(index, 0), length)
}
