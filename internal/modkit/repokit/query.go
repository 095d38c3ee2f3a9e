package repokit

import (
	"strconv"
	"strings"
)

// MaxPage bounds the page number so the row offset cannot overflow
const MaxPage = 100000

// Page is a 1 based page request already clamped to sane bounds
type Page struct {
	Page  int
	Limit int
}

// NewPage clamps page to [1, MaxPage] and limit to [1, max], zero limit means def
func NewPage(page, limit, def, max int) Page {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return Page{Page: page, Limit: limit}
}

// Offset is the number of rows skipped before this page
func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// Where accumulates AND-ed sql conditions with positional args
//
//	var w repokit.Where
//	w.And("contacted = " + w.Arg(true))
//	sql := "select ... from registrations" + w.SQL()
type Where struct {
	clauses []string
	args    []any
}

// Arg appends v and returns its $n placeholder
func (w *Where) Arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

// And adds a condition, callers wrap OR groups in parens
func (w *Where) And(clause string) { w.clauses = append(w.clauses, clause) }

// SQL renders " where ..." or an empty string when no conditions were added
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " where " + strings.Join(w.clauses, " and ")
}

// Args returns the accumulated args, append paging args after these
func (w *Where) Args() []any { return append([]any(nil), w.args...) }

// Next returns the placeholder index the next arg will take
func (w *Where) Next() int { return len(w.args) + 1 }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains turns free text into an ILIKE pattern matching it anywhere
// wildcards in s match literally
func Contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
