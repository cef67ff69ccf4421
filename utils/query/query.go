package queryHelper

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/ojst60/DevBootcamp/utils/apperror"
)

// Reserved query-string keys; everything else is a filter
const (
	ParamSelect = "select"
	ParamSort   = "sort"
	ParamLimit  = "limit"
	ParamPage   = "page"
)

const (
	DefaultLimit = 100
	DefaultPage  = 1
	// MaxLimit caps the page size a client may request
	MaxLimit = 1000
)

// Kind is the value type of a filterable field
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindTime
	KindUUID
	// KindStringArray fields match when any element equals the filter value
	KindStringArray
	// KindDocument fields can be selected but not filtered
	KindDocument
)

// Operator is a comparison applied by a filter
type Operator string

const (
	OpEq  Operator = "eq"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	OpIn  Operator = "in"
)

// SQL returns the comparison operator for scalar columns
func (o Operator) SQL() string {
	switch o {
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpIn:
		return "IN"
	default:
		return "="
	}
}

var operators = map[string]Operator{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

// Field describes how a JSON field maps onto the store
type Field struct {
	// Column is a column name or a read-only SQL expression over columns
	Column     string
	Kind       Kind
	Selectable bool
	Sortable   bool
}

// Schema maps JSON field names to store fields; only fields listed here can be filtered, selected or sorted
type Schema map[string]Field

// Filter is one parsed field comparison
type Filter struct {
	Field  string
	Column string
	Kind   Kind
	Op     Operator
	// Value holds a single coerced value, or []any for OpIn
	Value any
}

// SortField orders by one column
type SortField struct {
	Field  string
	Column string
	Desc   bool
}

// ListQuery is the store-independent form of a list request
type ListQuery struct {
	Filters []Filter
	// Fields are the selected JSON field names; empty means all fields
	Fields []string
	// Columns are the store columns backing Fields
	Columns []string
	Sort    []SortField
	Page    int
	Limit   int
}

// Skip is the number of records before the requested page
func (q *ListQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

var filterKey = regexp.MustCompile(`^([A-Za-z0-9_.]+)\[([A-Za-z]+)\]$`)

// Parse turns query-string parameters into a ListQuery.
// Unknown filter fields, unknown operators, values that do not fit the field type
// and non-positive or non-numeric limit/page are rejected with a BadInput error.
func Parse(params map[string]string, schema Schema, defaultSort string) (*ListQuery, error) {
	q := &ListQuery{Page: DefaultPage, Limit: DefaultLimit}

	var err error
	if raw, ok := params[ParamLimit]; ok {
		if q.Limit, err = parsePositive(ParamLimit, raw); err != nil {
			return nil, err
		}
	}
	if raw, ok := params[ParamPage]; ok {
		if q.Page, err = parsePositive(ParamPage, raw); err != nil {
			return nil, err
		}
	}
	if q.Limit > MaxLimit {
		return nil, apperror.BadInput("invalid pagination parameter %q: must not exceed %d", ParamLimit, MaxLimit)
	}
	// Skip and the page links must stay representable
	if q.Page-1 > (math.MaxInt-q.Limit)/q.Limit {
		return nil, apperror.BadInput("invalid pagination parameter %q: %d is out of range", ParamPage, q.Page)
	}

	if raw, ok := params[ParamSelect]; ok {
		q.Fields, q.Columns = parseSelect(raw, schema)
	}

	q.Sort = parseSort(params[ParamSort], schema)
	if len(q.Sort) == 0 {
		q.Sort = parseSort(defaultSort, schema)
	}

	for key, raw := range params {
		switch key {
		case ParamSelect, ParamSort, ParamLimit, ParamPage:
			continue
		}

		filter, err := parseFilter(key, raw, schema)
		if err != nil {
			return nil, err
		}
		q.Filters = append(q.Filters, filter)
	}

	// map iteration order is random; keep the generated SQL stable
	sortFilters(q.Filters)

	return q, nil
}

func parsePositive(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, apperror.BadInput("invalid pagination parameter %q: %q must be a positive integer", name, raw)
	}
	return n, nil
}

func parseSelect(raw string, schema Schema) (fields, columns []string) {
	fields = []string{"id"}
	columns = []string{schema["id"].Column}
	if columns[0] == "" {
		columns[0] = "id"
	}

	for _, name := range splitList(raw) {
		f, ok := schema[name]
		if !ok || !f.Selectable || name == "id" || contains(fields, name) {
			continue
		}
		fields = append(fields, name)
		columns = append(columns, f.Column)
	}
	return fields, columns
}

func parseSort(raw string, schema Schema) []SortField {
	var out []SortField
	for _, name := range splitList(raw) {
		desc := strings.HasPrefix(name, "-")
		name = strings.TrimPrefix(name, "-")

		f, ok := schema[name]
		if !ok || !f.Sortable {
			continue
		}
		out = append(out, SortField{Field: name, Column: f.Column, Desc: desc})
	}
	return out
}

func parseFilter(key, raw string, schema Schema) (Filter, error) {
	name, op := key, OpEq
	if m := filterKey.FindStringSubmatch(key); m != nil {
		name = m[1]
		var ok bool
		if op, ok = operators[m[2]]; !ok {
			return Filter{}, apperror.BadInput("invalid filter operator %q for field %q", m[2], m[1])
		}
	}

	f, ok := schema[name]
	if !ok {
		return Filter{}, apperror.BadInput("unknown filter field %q", name)
	}

	if f.Kind == KindDocument {
		return Filter{}, apperror.BadInput("field %q cannot be filtered", name)
	}

	if (f.Kind == KindBool || f.Kind == KindStringArray || f.Kind == KindUUID) && op != OpEq && op != OpIn {
		return Filter{}, apperror.BadInput("operator %q is not supported for field %q", op, name)
	}

	filter := Filter{Field: name, Column: f.Column, Kind: f.Kind, Op: op}

	if op == OpIn {
		parts := splitList(raw)
		if len(parts) == 0 {
			return Filter{}, apperror.BadInput("filter %q needs at least one value", key)
		}
		values := make([]any, 0, len(parts))
		for _, p := range parts {
			v, err := coerce(name, f.Kind, p)
			if err != nil {
				return Filter{}, err
			}
			values = append(values, v)
		}
		filter.Value = values
		return filter, nil
	}

	v, err := coerce(name, f.Kind, raw)
	if err != nil {
		return Filter{}, err
	}
	filter.Value = v
	return filter, nil
}

func coerce(name string, kind Kind, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch kind {
	case KindNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, apperror.BadInput("filter %q expects a number, got %q", name, raw)
		}
		return n, nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apperror.BadInput("filter %q expects true or false, got %q", name, raw)
		}
		return b, nil
	case KindTime:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, apperror.BadInput("filter %q expects an RFC 3339 timestamp or a date, got %q", name, raw)
	case KindUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperror.BadInput("filter %q expects an id, got %q", name, raw)
		}
		return id, nil
	default:
		return raw, nil
	}
}

func sortFilters(filters []Filter) {
	for i := 1; i < len(filters); i++ {
		for j := i; j > 0 && filterLess(filters[j], filters[j-1]); j-- {
			filters[j], filters[j-1] = filters[j-1], filters[j]
		}
	}
}

func filterLess(a, b Filter) bool {
	if a.Field != b.Field {
		return a.Field < b.Field
	}
	return a.Op < b.Op
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Project keeps only the given JSON fields of each element of items (a slice of structs).
// With no fields it returns items unchanged.
func Project(items any, fields []string) (any, error) {
	if len(fields) == 0 {
		return items, nil
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("project: marshal: %w", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("project: unmarshal: %w", err)
	}

	projected := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out := make(map[string]any, len(fields))
		for _, f := range fields {
			if v, ok := rec[f]; ok {
				out[f] = v
			}
		}
		projected = append(projected, out)
	}
	return projected, nil
}
