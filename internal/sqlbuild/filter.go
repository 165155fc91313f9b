package sqlbuild

import (
	"fmt"
	"strings"
)

// Filter composes an AND-joined predicate list with bound arguments.
// An absent filter field means no constraint; callers simply skip the
// corresponding method call.
type Filter struct {
	conds []string
	args  []any
}

func NewFilter() *Filter {
	return &Filter{}
}

func (f *Filter) Equal(column string, value any) *Filter {
	f.args = append(f.args, value)
	f.conds = append(f.conds, fmt.Sprintf("%s = $%d", column, len(f.args)))
	return f
}

func (f *Filter) AtLeast(column string, value any) *Filter {
	f.args = append(f.args, value)
	f.conds = append(f.conds, fmt.Sprintf("%s >= $%d", column, len(f.args)))
	return f
}

func (f *Filter) AtMost(column string, value any) *Filter {
	f.args = append(f.args, value)
	f.conds = append(f.conds, fmt.Sprintf("%s <= $%d", column, len(f.args)))
	return f
}

// Search adds a case-insensitive substring match over one or more columns,
// OR-joined inside a single AND-level predicate. The term is bound once.
func (f *Filter) Search(term string, columns ...string) *Filter {
	if len(columns) == 0 {
		return f
	}
	f.args = append(f.args, "%"+term+"%")
	n := len(f.args)
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
	}
	f.conds = append(f.conds, "("+strings.Join(parts, " OR ")+")")
	return f
}

// Where renders " WHERE ..." or "" when no predicate was added.
func (f *Filter) Where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

func (f *Filter) Args() []any { return f.args }

// NextArg is the placeholder index for the next bound value, handy for
// LIMIT/OFFSET appended after the WHERE clause.
func (f *Filter) NextArg() int { return len(f.args) + 1 }
