package models

import (
	"sort"
	"strings"
)

// IndentSort selects the listing order.
type IndentSort string

const (
	SortNewest   IndentSort = "newest"
	SortAmount   IndentSort = "amount"
	SortPriority IndentSort = "priority"
)

// IndentFilter narrows an indent listing. Zero values match everything.
type IndentFilter struct {
	Statuses   []Status
	Department string
	Priority   Priority
	Query      string
	Sort       IndentSort
}

// Match reports whether the indent passes every populated criterion.
func (f IndentFilter) Match(i Indent) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, i.Status) {
		return false
	}
	if f.Department != "" && !strings.EqualFold(f.Department, i.Department) {
		return false
	}
	if f.Priority != "" && f.Priority != i.Priority {
		return false
	}
	return matchesQuery(f.Query, i.ID, i.Title, i.Department)
}

// SortIndents orders the slice in place.
func SortIndents(items []Indent, by IndentSort) {
	switch by {
	case SortAmount:
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].Amount.GreaterThan(items[b].Amount)
		})
	case SortPriority:
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].Priority.Rank() < items[b].Priority.Rank()
		})
	default:
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].CreatedAt.After(items[b].CreatedAt)
		})
	}
}

// VendorFilter narrows the vendor directory.
type VendorFilter struct {
	Category string
	Query    string
}

// Match reports whether the vendor passes the filter.
func (f VendorFilter) Match(v Vendor) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, v.Category) {
		return false
	}
	return matchesQuery(f.Query, v.ID, v.Name, v.Category)
}

// EnquiryFilter narrows enquiry listings.
type EnquiryFilter struct {
	Status   EnquiryStatus
	IndentID string
	VendorID string
}

// Match reports whether the enquiry passes the filter.
func (f EnquiryFilter) Match(e Enquiry) bool {
	if f.Status != "" && f.Status != e.Status {
		return false
	}
	if f.IndentID != "" && f.IndentID != e.IndentID {
		return false
	}
	if f.VendorID != "" && !e.HasVendor(f.VendorID) {
		return false
	}
	return true
}

func matchesQuery(query string, fields ...string) bool {
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func containsStatus(list []Status, s Status) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}
