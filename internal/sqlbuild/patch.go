// Package sqlbuild assembles parameterized SQL fragments from sparse
// inputs. Values always travel as bound arguments; only column names,
// which are compile-time constants in the repositories, reach the
// statement text.
package sqlbuild

import (
	"fmt"
	"strings"

	"jobmarket/internal/apperrors"
)

// Patch collects the subset of an entity's columns present in a partial
// update. Output order follows the declared column list, not insertion
// order, so the same field set always produces the same statement.
type Patch struct {
	columns  []string
	declared map[string]bool
	values   map[string]any
}

func NewPatch(columns ...string) *Patch {
	declared := make(map[string]bool, len(columns))
	for _, c := range columns {
		declared[c] = true
	}
	return &Patch{
		columns:  columns,
		declared: declared,
		values:   make(map[string]any),
	}
}

// Set marks a column as present. An explicit zero value ("" included) is
// still a set; absence means the column was never passed to Set.
func (p *Patch) Set(column string, value any) *Patch {
	if !p.declared[column] {
		panic(fmt.Sprintf("sqlbuild: column %q not declared for this patch", column))
	}
	p.values[column] = value
	return p
}

func (p *Patch) Len() int { return len(p.values) }

// Assignments renders the SET fragment starting at placeholder $start,
// e.g. "first_name=$1, phone_number=$2", with the matching args slice.
// Returns apperrors.ErrNoFieldsToUpdate when nothing was set.
func (p *Patch) Assignments(start int) (string, []any, error) {
	if len(p.values) == 0 {
		return "", nil, apperrors.ErrNoFieldsToUpdate
	}
	parts := make([]string, 0, len(p.values))
	args := make([]any, 0, len(p.values))
	i := start
	for _, col := range p.columns {
		v, ok := p.values[col]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=$%d", col, i))
		args = append(args, v)
		i++
	}
	return strings.Join(parts, ", "), args, nil
}
