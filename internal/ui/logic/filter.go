package logic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FilterKey names one field of FilterState
type FilterKey string

const (
	FilterSearchTerm FilterKey = "searchTerm"
	FilterStartYear  FilterKey = "startYear"
	FilterEndYear    FilterKey = "endYear"
)

// FilterState holds the active list filters. A nil field means no constraint.
// In an update passed to SetFilters, a nil field means "leave unchanged".
type FilterState struct {
	SearchTerm *string
	StartYear  *int
	EndYear    *int
}

// WithSearch returns an update that sets only the search term
func WithSearch(term string) FilterState {
	return FilterState{SearchTerm: &term}
}

// WithStartYear returns an update that sets only the start year
func WithStartYear(year int) FilterState {
	return FilterState{StartYear: &year}
}

// WithEndYear returns an update that sets only the end year
func WithEndYear(year int) FilterState {
	return FilterState{EndYear: &year}
}

// IsEmpty reports whether no filter constrains the list.
// An empty search term does not constrain it either.
func (f FilterState) IsEmpty() bool {
	return (f.SearchTerm == nil || *f.SearchTerm == "") && f.StartYear == nil && f.EndYear == nil
}

// Clone returns a copy that shares no pointers with f
func (f FilterState) Clone() FilterState {
	var out FilterState
	if f.SearchTerm != nil {
		v := *f.SearchTerm
		out.SearchTerm = &v
	}
	if f.StartYear != nil {
		v := *f.StartYear
		out.StartYear = &v
	}
	if f.EndYear != nil {
		v := *f.EndYear
		out.EndYear = &v
	}
	return out
}

// Search returns the search term or ""
func (f FilterState) Search() string {
	if f.SearchTerm == nil {
		return ""
	}
	return *f.SearchTerm
}

// Describe renders the active filters for a status line, e.g. `"dune", 1990-2000`
func (f FilterState) Describe() string {
	var parts []string
	if term := f.Search(); term != "" {
		parts = append(parts, strconv.Quote(term))
	}
	switch {
	case f.StartYear != nil && f.EndYear != nil:
		parts = append(parts, fmt.Sprintf("%d-%d", *f.StartYear, *f.EndYear))
	case f.StartYear != nil:
		parts = append(parts, fmt.Sprintf("from %d", *f.StartYear))
	case f.EndYear != nil:
		parts = append(parts, fmt.Sprintf("until %d", *f.EndYear))
	}
	return strings.Join(parts, ", ")
}

// YearRangeText formats the year filters the way ParseYearRange reads them
func (f FilterState) YearRangeText() string {
	switch {
	case f.StartYear != nil && f.EndYear != nil:
		return fmt.Sprintf("%d-%d", *f.StartYear, *f.EndYear)
	case f.StartYear != nil:
		return fmt.Sprintf("%d-", *f.StartYear)
	case f.EndYear != nil:
		return fmt.Sprintf("-%d", *f.EndYear)
	}
	return ""
}

// ErrInvalidYearRange is returned for year range input that cannot be parsed
var ErrInvalidYearRange = errors.New("invalid year range")

// ParseYearRange reads "1990-2000", "1990-", "-2000" or a single year.
// A single year constrains both ends. Empty input yields two nils.
func ParseYearRange(input string) (start, end *int, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, nil
	}

	if !strings.Contains(input, "-") {
		y, err := parseYear(input)
		if err != nil {
			return nil, nil, err
		}
		return &y, &y, nil
	}

	left, right, _ := strings.Cut(input, "-")
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" && right == "" {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidYearRange, input)
	}

	if left != "" {
		y, err := parseYear(left)
		if err != nil {
			return nil, nil, err
		}
		start = &y
	}
	if right != "" {
		y, err := parseYear(right)
		if err != nil {
			return nil, nil, err
		}
		end = &y
	}
	if start != nil && end != nil && *start > *end {
		return nil, nil, fmt.Errorf("%w: %d is after %d", ErrInvalidYearRange, *start, *end)
	}
	return start, end, nil
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(s)
	if err != nil || y < 0 || y > 9999 {
		return 0, fmt.Errorf("%w: %q is not a year", ErrInvalidYearRange, s)
	}
	return y, nil
}
