package prompts

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("title", "Title").
	Project("text", "Text").
	Project("username", "Username").
	Project("response", "Response").
	Project("modification_code", "ModificationCode").
	Project("created_at", "CreatedAt").
	Project("read_only", "ReadOnly")

// returning matches the column order scanPrompt expects.
var returning = projection.Returning()

// sortable maps the public sort parameter to projection view names.
// The modification code is deliberately absent.
var sortable = map[string]string{
	"id":         "ID",
	"title":      "Title",
	"text":       "Text",
	"username":   "Username",
	"response":   "Response",
	"created_at": "CreatedAt",
	"read_only":  "ReadOnly",
}

// Default list ordering.
const (
	DefaultSort  = "created_at"
	DefaultOrder = "desc"
)

// newestFirst orders results that have no caller-chosen sort.
var newestFirst = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

// ListQuery holds the list parameters. Title matches case-insensitively
// as a substring; Order is "asc" for ascending and anything else descending.
type ListQuery struct {
	Title string
	Sort  string
	Order string
}

// ListQueryFromValues extracts list parameters from URL query values.
func ListQueryFromValues(values url.Values) ListQuery {
	q := ListQuery{
		Title: values.Get("filter_title"),
		Sort:  values.Get("sort"),
		Order: values.Get("order"),
	}
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	if q.Order == "" {
		q.Order = DefaultOrder
	}
	return q
}

// SortField resolves the query's ordering against the projection.
func (q ListQuery) SortField() (query.SortField, error) {
	name := q.Sort
	if name == "" {
		name = DefaultSort
	}

	field, ok := sortable[name]
	if !ok {
		return query.SortField{}, fmt.Errorf("%w: %s", ErrInvalidSortColumn, name)
	}

	return query.SortField{
		Field:      field,
		Descending: !strings.EqualFold(q.Order, "asc"),
	}, nil
}

// Apply adds the title filter and ordering to a query builder. Ties are
// broken by id in the same direction.
func (q ListQuery) Apply(b *query.Builder) (*query.Builder, error) {
	sort, err := q.SortField()
	if err != nil {
		return nil, err
	}

	fields := []query.SortField{sort}
	if sort.Field != "ID" {
		fields = append(fields, query.SortField{Field: "ID", Descending: sort.Descending})
	}

	return b.WhereContains("Title", &q.Title).OrderByFields(fields), nil
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Text,
		&p.Username,
		&p.Response,
		&p.ModificationCode,
		&p.CreatedAt,
		&p.ReadOnly,
	)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, err
}
