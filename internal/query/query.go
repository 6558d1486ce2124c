// Package query implements the list-endpoint query parameter contract:
// filter[<field>], sort, include and page[number]/page[size], checked against a
// per-resource allow-list and applied to a gorm query.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidQueryParameter is the sentinel every rejected key unwraps to.
var ErrInvalidQueryParameter = errors.New("invalid query parameter")

// InvalidParameterError names the offending parameter family and key.
type InvalidParameterError struct {
	Param string // filter | sort | include | page
	Key   string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s %q is not allowed", e.Param, e.Key)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidQueryParameter }

func invalid(param, key string) error {
	return &InvalidParameterError{Param: param, Key: key}
}

// Sort is one ordering term. A leading "-" in the request means descending.
type Sort struct {
	Field string
	Desc  bool
}

// Params is a parsed list request.
type Params struct {
	Filters  map[string]string
	Sorts    []Sort
	Includes []string
	Page     int
	PageSize int
}

// AllowList declares what a resource lets clients query by.
type AllowList struct {
	// ExactFilters match by equality; a comma-separated value becomes IN.
	ExactFilters []string
	// PartialFilters match case-insensitively by substring.
	PartialFilters []string
	Sorts          []string
	Includes       []string
	// DefaultSort applies when the request has no sort, e.g. "-created_at".
	DefaultSort string
}

// Paging bounds page[size].
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// DefaultPaging is used when a resource is registered without explicit bounds.
var DefaultPaging = Paging{DefaultSize: 15, MaxSize: 100}

// Parse reads the contract keys out of a raw query string. Keys outside the
// contract (e.g. cache busters) are ignored; allow-list checks happen in
// AllowList.Validate.
func Parse(values url.Values, paging Paging) (Params, error) {
	if paging.DefaultSize <= 0 {
		paging = DefaultPaging
	}
	p := Params{
		Filters:  map[string]string{},
		Page:     1,
		PageSize: paging.DefaultSize,
	}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		val := vals[len(vals)-1]

		switch {
		case strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]"):
			name := key[len("filter[") : len(key)-1]
			if name == "" {
				return Params{}, invalid("filter", key)
			}
			p.Filters[name] = val
		case key == "sort":
			p.Sorts = parseSorts(val)
		case key == "include":
			p.Includes = splitCSV(val)
		case key == "page[number]":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return Params{}, invalid("page", key)
			}
			p.Page = n
		case key == "page[size]":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return Params{}, invalid("page", key)
			}
			if paging.MaxSize > 0 && n > paging.MaxSize {
				n = paging.MaxSize
			}
			p.PageSize = n
		}
	}
	return p, nil
}

// Validate rejects any filter, sort or include key missing from the allow-list.
func (a AllowList) Validate(p Params) error {
	filters := make([]string, 0, len(p.Filters))
	for name := range p.Filters {
		filters = append(filters, name)
	}
	sort.Strings(filters)
	for _, name := range filters {
		if !contains(a.ExactFilters, name) && !contains(a.PartialFilters, name) {
			return invalid("filter", name)
		}
	}
	for _, s := range p.Sorts {
		if !contains(a.Sorts, s.Field) {
			return invalid("sort", s.Field)
		}
	}
	return a.ValidateIncludes(p.Includes)
}

// ValidateIncludes checks only relation includes; used by show endpoints.
func (a AllowList) ValidateIncludes(includes []string) error {
	for _, inc := range includes {
		if !contains(a.Includes, inc) {
			return invalid("include", inc)
		}
	}
	return nil
}

func (a AllowList) isExact(name string) bool { return contains(a.ExactFilters, name) }

func parseSorts(raw string) []Sort {
	var out []Sort
	for _, term := range splitCSV(raw) {
		if strings.HasPrefix(term, "-") {
			out = append(out, Sort{Field: term[1:], Desc: true})
			continue
		}
		out = append(out, Sort{Field: term})
	}
	return out
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
