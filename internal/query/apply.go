package query

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Page is one page of a list result.
type Page[T any] struct {
	Items  []T
	Total  int64
	Number int
	Size   int
}

// LastPage is the index of the final page; an empty result still has page 1.
func (p Page[T]) LastPage() int {
	if p.Total == 0 || p.Size <= 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// Find runs a validated list request for model T: filters, count, sort,
// includes and pagination. Callers must run AllowList.Validate first.
func Find[T any](ctx context.Context, db *gorm.DB, a AllowList, p Params) (Page[T], error) {
	base := func() *gorm.DB {
		return ApplyFilters(db.WithContext(ctx).Model(new(T)), a, p)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	items := make([]T, 0)
	q := Paginate(ApplyIncludes(ApplySorts(base(), a, p), p.Includes), p)
	if err := q.Find(&items).Error; err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: items, Total: total, Number: p.Page, Size: p.PageSize}, nil
}

// ApplyFilters adds one WHERE term per filter, in key order.
func ApplyFilters(db *gorm.DB, a AllowList, p Params) *gorm.DB {
	names := make([]string, 0, len(p.Filters))
	for name := range p.Filters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := splitCSV(p.Filters[name])
		if len(values) == 0 {
			continue
		}
		col := clause.Column{Table: clause.CurrentTable, Name: name}

		if a.isExact(name) {
			if len(values) == 1 {
				db = db.Where(clause.Eq{Column: col, Value: values[0]})
				continue
			}
			vars := make([]interface{}, len(values))
			for i, v := range values {
				vars[i] = v
			}
			db = db.Where(clause.IN{Column: col, Values: vars})
			continue
		}

		exprs := make([]clause.Expression, len(values))
		for i, v := range values {
			exprs[i] = clause.Expr{SQL: "? ILIKE ?", Vars: []interface{}{col, "%" + escapeLike(v) + "%"}}
		}
		if len(exprs) == 1 {
			db = db.Where(exprs[0])
		} else {
			db = db.Where(clause.Or(exprs...))
		}
	}
	return db
}

// ApplySorts orders by the requested terms or the allow-list default.
func ApplySorts(db *gorm.DB, a AllowList, p Params) *gorm.DB {
	sorts := p.Sorts
	if len(sorts) == 0 && a.DefaultSort != "" {
		sorts = parseSorts(a.DefaultSort)
	}
	for _, s := range sorts {
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: s.Field},
			Desc:   s.Desc,
		})
	}
	return db
}

// ApplyIncludes preloads each requested relation.
func ApplyIncludes(db *gorm.DB, includes []string) *gorm.DB {
	for _, inc := range includes {
		db = db.Preload(RelationName(inc))
	}
	return db
}

// Paginate applies page[number]/page[size] as OFFSET/LIMIT.
func Paginate(db *gorm.DB, p Params) *gorm.DB {
	if p.PageSize <= 0 {
		return db
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	return db.Offset((page - 1) * p.PageSize).Limit(p.PageSize)
}

// initialisms are field-name words written in upper case, as in Go.
var initialisms = map[string]string{"id": "ID", "rfq": "RFQ", "sku": "SKU"}

// RelationName maps an include key to its gorm association path:
// "from_warehouse" -> "FromWarehouse", "items.product" -> "Items.Product".
func RelationName(include string) string {
	segments := strings.Split(include, ".")
	for i, seg := range segments {
		var b strings.Builder
		for _, word := range strings.Split(seg, "_") {
			if word == "" {
				continue
			}
			if up, ok := initialisms[word]; ok {
				b.WriteString(up)
				continue
			}
			b.WriteString(strings.ToUpper(word[:1]))
			b.WriteString(word[1:])
		}
		segments[i] = b.String()
	}
	return strings.Join(segments, ".")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
