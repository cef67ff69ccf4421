package queryHelper

import (
	"math"
	"strconv"
	"testing"

	"github.com/ojst60/DevBootcamp/utils/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	"id":             {Column: "id", Kind: KindUUID, Selectable: true},
	"name":           {Column: "name", Kind: KindString, Selectable: true, Sortable: true},
	"averageCost":    {Column: "average_cost", Kind: KindNumber, Selectable: true, Sortable: true},
	"housing":        {Column: "housing", Kind: KindBool, Selectable: true},
	"careers":        {Column: "careers", Kind: KindStringArray, Selectable: true},
	"createdAt":      {Column: "created_at", Kind: KindTime, Selectable: true, Sortable: true},
	"location":       {Column: "location", Kind: KindDocument, Selectable: true},
	"location.state": {Column: "location->>'state'", Kind: KindString},
}

func TestParse_Defaults(t *testing.T) {
	q, err := Parse(map[string]string{}, testSchema, "-createdAt")
	require.NoError(t, err)

	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, 0, q.Skip())
	assert.Empty(t, q.Filters)
	assert.Empty(t, q.Fields)
	assert.Equal(t, []SortField{{Field: "createdAt", Column: "created_at", Desc: true}}, q.Sort)
}

func TestParse_ReservedKeysAreNotFilters(t *testing.T) {
	q, err := Parse(map[string]string{
		"select": "name,averageCost",
		"sort":   "-averageCost,name",
		"limit":  "2",
		"page":   "3",
	}, testSchema, "-createdAt")
	require.NoError(t, err)

	assert.Empty(t, q.Filters)
	assert.Equal(t, []string{"id", "name", "averageCost"}, q.Fields)
	assert.Equal(t, []string{"id", "name", "average_cost"}, q.Columns)
	assert.Equal(t, []SortField{
		{Field: "averageCost", Column: "average_cost", Desc: true},
		{Field: "name", Column: "name"},
	}, q.Sort)
	assert.Equal(t, 2, q.Limit)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 4, q.Skip())
}

func TestParse_Operators(t *testing.T) {
	q, err := Parse(map[string]string{
		"averageCost[gte]": "1000",
		"averageCost[lt]":  "10000",
		"housing":          "true",
		"careers[in]":      "Business, UI/UX",
		"location.state":   "MA",
	}, testSchema, "")
	require.NoError(t, err)

	require.Len(t, q.Filters, 5)
	assert.Equal(t, Filter{Field: "averageCost", Column: "average_cost", Kind: KindNumber, Op: OpGte, Value: 1000.0}, q.Filters[0])
	assert.Equal(t, Filter{Field: "averageCost", Column: "average_cost", Kind: KindNumber, Op: OpLt, Value: 10000.0}, q.Filters[1])
	assert.Equal(t, Filter{Field: "careers", Column: "careers", Kind: KindStringArray, Op: OpIn, Value: []any{"Business", "UI/UX"}}, q.Filters[2])
	assert.Equal(t, Filter{Field: "housing", Column: "housing", Kind: KindBool, Op: OpEq, Value: true}, q.Filters[3])
	assert.Equal(t, Filter{Field: "location.state", Column: "location->>'state'", Kind: KindString, Op: OpEq, Value: "MA"}, q.Filters[4])
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{name: "unknown operator", params: map[string]string{"averageCost[invalidop]": "5"}},
		{name: "unknown field", params: map[string]string{"color": "blue"}},
		{name: "non-numeric value", params: map[string]string{"averageCost[gt]": "cheap"}},
		{name: "non-boolean value", params: map[string]string{"housing": "sometimes"}},
		{name: "ordering on boolean", params: map[string]string{"housing[gt]": "true"}},
		{name: "ordering on array", params: map[string]string{"careers[lte]": "Business"}},
		{name: "document field", params: map[string]string{"location": "Boston"}},
		{name: "empty in list", params: map[string]string{"careers[in]": " , "}},
		{name: "non-numeric limit", params: map[string]string{"limit": "ten"}},
		{name: "zero limit", params: map[string]string{"limit": "0"}},
		{name: "negative page", params: map[string]string{"page": "-1"}},
		{name: "non-numeric page", params: map[string]string{"page": "first"}},
		{name: "limit above the cap", params: map[string]string{"limit": "1001"}},
		{name: "page overflowing skip", params: map[string]string{"page": "100000000000000000", "limit": "100"}},
		{name: "page beyond int", params: map[string]string{"page": "99999999999999999999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.params, testSchema, "-createdAt")
			require.Error(t, err)
			assert.Equal(t, apperror.KindBadInput, apperror.KindOf(err))
		})
	}
}

func TestParse_PaginationBounds(t *testing.T) {
	q, err := Parse(map[string]string{"limit": "1000", "page": "3"}, testSchema, "-createdAt")
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, 2000, q.Skip())

	_, err = Parse(map[string]string{"page": "100000000000000000", "limit": "100"}, testSchema, "-createdAt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pagination parameter")

	// the largest page that still parses keeps Skip non-negative
	q, err = Parse(map[string]string{"page": strconv.Itoa(math.MaxInt/100), "limit": "100"}, testSchema, "-createdAt")
	require.NoError(t, err)
	assert.Positive(t, q.Skip())
}

func TestParse_UnknownSelectAndSortAreIgnored(t *testing.T) {
	q, err := Parse(map[string]string{
		"select": "name,password,location.state",
		"sort":   "-password",
	}, testSchema, "-createdAt")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, q.Fields)
	assert.Equal(t, []SortField{{Field: "createdAt", Column: "created_at", Desc: true}}, q.Sort)
}

func TestProject(t *testing.T) {
	type item struct {
		ID   string  `json:"id"`
		Name string  `json:"name"`
		Cost float64 `json:"averageCost"`
	}

	out, err := Project([]item{{ID: "1", Name: "Devworks", Cost: 10000}}, []string{"id", "name"})
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"id": "1", "name": "Devworks"}}, out)

	same, err := Project([]item{{ID: "1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "1"}}, same)
}
