package database

import (
	"fmt"

	"github.com/lib/pq"
	queryHelper "github.com/ojst60/DevBootcamp/utils/query"
	"gorm.io/gorm"
)

// BootcampSchema lists the bootcamp fields reachable from the query string
var BootcampSchema = queryHelper.Schema{
	"id":                {Column: "id", Kind: queryHelper.KindUUID, Selectable: true},
	"name":              {Column: "name", Kind: queryHelper.KindString, Selectable: true, Sortable: true},
	"nameSlug":          {Column: "name_slug", Kind: queryHelper.KindString, Selectable: true, Sortable: true},
	"description":       {Column: "description", Kind: queryHelper.KindString, Selectable: true},
	"website":           {Column: "website", Kind: queryHelper.KindString, Selectable: true},
	"email":             {Column: "email", Kind: queryHelper.KindString, Selectable: true},
	"phone":             {Column: "phone", Kind: queryHelper.KindString, Selectable: true},
	"address":           {Column: "address", Kind: queryHelper.KindString, Selectable: true},
	"location":          {Column: "location", Kind: queryHelper.KindDocument, Selectable: true},
	"location.city":     {Column: "location->>'city'", Kind: queryHelper.KindString},
	"location.state":    {Column: "location->>'state'", Kind: queryHelper.KindString},
	"location.postcode": {Column: "location->>'postcode'", Kind: queryHelper.KindString},
	"location.country":  {Column: "location->>'country'", Kind: queryHelper.KindString},
	"careers":           {Column: "careers", Kind: queryHelper.KindStringArray, Selectable: true},
	"averageRating":     {Column: "average_rating", Kind: queryHelper.KindNumber, Selectable: true, Sortable: true},
	"averageCost":       {Column: "average_cost", Kind: queryHelper.KindNumber, Selectable: true, Sortable: true},
	"photo":             {Column: "photo", Kind: queryHelper.KindString, Selectable: true},
	"housing":           {Column: "housing", Kind: queryHelper.KindBool, Selectable: true},
	"jobAssistance":     {Column: "job_assistance", Kind: queryHelper.KindBool, Selectable: true},
	"jobGuarantee":      {Column: "job_guarantee", Kind: queryHelper.KindBool, Selectable: true},
	"acceptGi":          {Column: "accept_gi", Kind: queryHelper.KindBool, Selectable: true},
	"createdAt":         {Column: "created_at", Kind: queryHelper.KindTime, Selectable: true, Sortable: true},
}

// CourseSchema lists the course fields reachable from the query string
var CourseSchema = queryHelper.Schema{
	"id":                   {Column: "id", Kind: queryHelper.KindUUID, Selectable: true},
	"title":                {Column: "title", Kind: queryHelper.KindString, Selectable: true, Sortable: true},
	"description":          {Column: "description", Kind: queryHelper.KindString, Selectable: true},
	"weeks":                {Column: "weeks", Kind: queryHelper.KindString, Selectable: true, Sortable: true},
	"tuition":              {Column: "tuition", Kind: queryHelper.KindNumber, Selectable: true, Sortable: true},
	"minimumSkill":         {Column: "minimum_skill", Kind: queryHelper.KindString, Selectable: true, Sortable: true},
	"scholarshipAvailable": {Column: "scholarship_available", Kind: queryHelper.KindBool, Selectable: true},
	"bootcamp":             {Column: "bootcamp_id", Kind: queryHelper.KindUUID, Selectable: true},
	"createdAt":            {Column: "created_at", Kind: queryHelper.KindTime, Selectable: true, Sortable: true},
}

// DefaultSort orders newest first
const DefaultSort = "-createdAt"

// applyFilters adds one WHERE clause per filter. Columns come from a Schema, never from the request.
func applyFilters(db *gorm.DB, filters []queryHelper.Filter) *gorm.DB {
	for _, f := range filters {
		switch {
		case f.Kind == queryHelper.KindStringArray && f.Op == queryHelper.OpIn:
			db = db.Where(fmt.Sprintf("%s && ?", f.Column), pq.Array(toStrings(f.Value)))
		case f.Kind == queryHelper.KindStringArray:
			db = db.Where(fmt.Sprintf("? = ANY(%s)", f.Column), f.Value)
		case f.Op == queryHelper.OpIn:
			db = db.Where(fmt.Sprintf("%s IN ?", f.Column), f.Value)
		default:
			db = db.Where(fmt.Sprintf("%s %s ?", f.Column, f.Op.SQL()), f.Value)
		}
	}
	return db
}

// applyPage adds ordering, projection and the page window
func applyPage(db *gorm.DB, q *queryHelper.ListQuery) *gorm.DB {
	if len(q.Columns) > 0 {
		db = db.Select(q.Columns)
	}

	db = applySort(db, q.Sort)

	db = db.Limit(q.Limit)
	if skip := q.Skip(); skip > 0 {
		db = db.Offset(skip)
	}
	return db
}

// applySort orders by the requested fields with id as the final tiebreak so pages never overlap
func applySort(db *gorm.DB, sort []queryHelper.SortField) *gorm.DB {
	for _, s := range sort {
		if s.Desc {
			db = db.Order(s.Column + " DESC")
		} else {
			db = db.Order(s.Column)
		}
	}
	return db.Order("id")
}

func toStrings(v any) []string {
	values, _ := v.([]any)
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, fmt.Sprint(value))
	}
	return out
}
