package enum

import (
	"fmt"
	"strings"
)

// SaleSortField is the closed set of sale columns a listing may be ordered by
type SaleSortField string

const (
	SaleSortBySaleDate    SaleSortField = "sale_date"
	SaleSortBySaleNumber  SaleSortField = "sale_number"
	SaleSortByTotalAmount SaleSortField = "total_amount"
	SaleSortByBranch      SaleSortField = "branch"
	SaleSortByCreatedAt   SaleSortField = "created_at"
)

var saleSortFields = map[string]SaleSortField{
	string(SaleSortBySaleDate):    SaleSortBySaleDate,
	string(SaleSortBySaleNumber):  SaleSortBySaleNumber,
	string(SaleSortByTotalAmount): SaleSortByTotalAmount,
	string(SaleSortByBranch):      SaleSortByBranch,
	string(SaleSortByCreatedAt):   SaleSortByCreatedAt,
}

func (f SaleSortField) String() string {
	return string(f)
}

// Column returns the database column backing the sort field
func (f SaleSortField) Column() string {
	return string(f)
}

// ParseSaleSortField resolves a client-supplied field name. An empty name
// falls back to sale_date; anything outside the known set is an error.
func ParseSaleSortField(name string) (SaleSortField, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SaleSortBySaleDate, nil
	}
	f, ok := saleSortFields[name]
	if !ok {
		return "", fmt.Errorf("unknown sort field %q", name)
	}
	return f, nil
}

// SortOrder is the direction of a listing
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts asc or desc, defaulting to desc
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SortDesc, nil
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}
