package query

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var brandAllow = AllowList{
	ExactFilters:   []string{"id", "is_active"},
	PartialFilters: []string{"name"},
	Sorts:          []string{"name", "created_at"},
	Includes:       []string{"products"},
	DefaultSort:    "-created_at",
}

func mustParse(t *testing.T, raw string) Params {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	p, err := Parse(values, Paging{DefaultSize: 15, MaxSize: 100})
	require.NoError(t, err)
	return p
}

func TestParseFullRequest(t *testing.T) {
	p := mustParse(t, "filter[name]=acme&filter[is_active]=true&sort=-name,created_at&include=products&page[number]=3&page[size]=20")

	assert.Equal(t, map[string]string{"name": "acme", "is_active": "true"}, p.Filters)
	assert.Equal(t, []Sort{{Field: "name", Desc: true}, {Field: "created_at"}}, p.Sorts)
	assert.Equal(t, []string{"products"}, p.Includes)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.PageSize)
}

func TestParseDefaults(t *testing.T) {
	p := mustParse(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PageSize)
	assert.Empty(t, p.Filters)
	assert.Empty(t, p.Sorts)
}

func TestParseCapsPageSize(t *testing.T) {
	p := mustParse(t, "page[size]=5000")
	assert.Equal(t, 100, p.PageSize)
}

func TestParseIgnoresUnrelatedKeys(t *testing.T) {
	p := mustParse(t, "_=123&foo=bar")
	assert.Empty(t, p.Filters)
}

func TestParseRejectsBadPage(t *testing.T) {
	for _, raw := range []string{"page[number]=0", "page[number]=abc", "page[size]=-1", "filter[]=x"} {
		values, _ := url.ParseQuery(raw)
		_, err := Parse(values, DefaultPaging)
		assert.ErrorIs(t, err, ErrInvalidQueryParameter, raw)
	}
}

func TestValidateAcceptsAllowed(t *testing.T) {
	p := mustParse(t, "filter[name]=a&filter[id]=1&sort=-created_at&include=products")
	assert.NoError(t, brandAllow.Validate(p))
}

func TestValidateRejectsUnknownKeys(t *testing.T) {
	cases := map[string]string{
		"filter[secret]=x":  "filter",
		"sort=password":     "sort",
		"sort=-password":    "sort",
		"include=suppliers": "include",
	}
	for raw, param := range cases {
		err := brandAllow.Validate(mustParse(t, raw))
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, ErrInvalidQueryParameter), raw)

		var ipe *InvalidParameterError
		require.True(t, errors.As(err, &ipe))
		assert.Equal(t, param, ipe.Param)
	}
}

func TestRelationName(t *testing.T) {
	assert.Equal(t, "Brand", RelationName("brand"))
	assert.Equal(t, "FromWarehouse", RelationName("from_warehouse"))
	assert.Equal(t, "Items.Product", RelationName("items.product"))
	assert.Equal(t, "RFQ", RelationName("rfq"))
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 1, Page[int]{Total: 0, Size: 15}.LastPage())
	assert.Equal(t, 1, Page[int]{Total: 15, Size: 15}.LastPage())
	assert.Equal(t, 2, Page[int]{Total: 16, Size: 15}.LastPage())
}

// ── SQL generation (dry run, no database) ────────────────────────────────────

type widget struct {
	ID       string
	Name     string
	IsActive bool
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=maharat dbname=maharat sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func toSQL(t *testing.T, raw string) string {
	p := mustParse(t, raw)
	db := dryRunDB(t)
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		q := ApplyFilters(tx.Model(&widget{}), brandAllow, p)
		q = Paginate(ApplySorts(q, brandAllow, p), p)
		return q.Find(&[]widget{})
	})
}

func TestApplyPartialFilter(t *testing.T) {
	sql := toSQL(t, "filter[name]=acme")
	assert.Contains(t, sql, `"widgets"."name" ILIKE '%acme%'`)
}

func TestApplyPartialFilterEscapesWildcards(t *testing.T) {
	sql := toSQL(t, "filter[name]=50%25_off")
	assert.Contains(t, sql, `'%50\%\_off%'`)
}

func TestApplyExactFilterIn(t *testing.T) {
	sql := toSQL(t, "filter[id]=a,b")
	assert.Contains(t, sql, `"widgets"."id" IN ('a','b')`)
}

func TestApplyExactFilterEq(t *testing.T) {
	sql := toSQL(t, "filter[is_active]=true")
	assert.Contains(t, sql, `"widgets"."is_active" = 'true'`)
}

func TestApplyDefaultSortAndPage(t *testing.T) {
	sql := toSQL(t, "page[number]=2&page[size]=10")
	assert.Contains(t, sql, `ORDER BY "widgets"."created_at" DESC`)
	assert.Contains(t, sql, "LIMIT 10 OFFSET 10")
}

func TestApplyExplicitSort(t *testing.T) {
	sql := toSQL(t, "sort=name,-created_at")
	assert.Contains(t, sql, `ORDER BY "widgets"."name","widgets"."created_at" DESC`)
}

func TestApplyIncludesPreloads(t *testing.T) {
	db := dryRunDB(t)
	q := ApplyIncludes(db.Model(&widget{}), []string{"products", "from_warehouse"})
	assert.Contains(t, q.Statement.Preloads, "Products")
	assert.Contains(t, q.Statement.Preloads, "FromWarehouse")
}
