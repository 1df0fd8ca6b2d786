package filter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"

	"gorm.io/gorm"
)

// Columns maps the lowercase field names clients may filter on to trusted
// SQL column expressions. Anything not listed is rejected.
type Columns map[string]string

func (c Columns) resolve(field string) (string, error) {
	col, ok := c[strings.ToLower(field)]
	if !ok {
		return "", apperror.Newf(apperror.CodeInvalidField, http.StatusBadRequest,
			"Invalid field: %s", field)
	}
	return col, nil
}

// Apply adds the compiled predicate and exclusions to db as WHERE clauses.
func Apply(db *gorm.DB, res Result, cols Columns) (*gorm.DB, error) {
	if len(res.Predicate) > 0 {
		sql, args, err := render(res.Predicate, cols)
		if err != nil {
			return nil, err
		}
		db = db.Where(sql, args...)
	}

	for _, ex := range res.Exclusions {
		parts := make([]string, 0, len(ex.Fields))
		args := make([]any, 0, len(ex.Fields))
		for _, f := range ex.Fields {
			col, err := cols.resolve(f)
			if err != nil {
				return nil, err
			}
			parts = append(parts, col+" = ?")
			args = append(args, ex.Value)
		}
		// NOT (... = ?) would also drop NULL rows; exclusions only remove matches.
		db = db.Where("NOT COALESCE(("+strings.Join(parts, " OR ")+"), false)", args...)
	}

	return db, nil
}

func render(e Expr, cols Columns) (string, []any, error) {
	switch node := e.(type) {
	case And:
		return renderGroup([]Expr(node), " AND ", cols)
	case Or:
		return renderGroup([]Expr(node), " OR ", cols)
	case Compare:
		return renderCompare(node, cols)
	default:
		return "", nil, fmt.Errorf("filter: unknown expression %T", e)
	}
}

func renderGroup(nodes []Expr, sep string, cols Columns) (string, []any, error) {
	parts := make([]string, 0, len(nodes))
	var args []any
	for _, n := range nodes {
		sql, a, err := render(n, cols)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, a...)
	}
	return "(" + strings.Join(parts, sep) + ")", args, nil
}

func renderCompare(c Compare, cols Columns) (string, []any, error) {
	col, err := cols.resolve(c.Field)
	if err != nil {
		return "", nil, err
	}

	switch c.Op {
	case OpEq, OpLt, OpLte, OpGt, OpGte:
		return fmt.Sprintf("%s %s ?", col, c.Op), []any{c.Value}, nil
	case OpLike, OpILike:
		return fmt.Sprintf("CAST(%s AS TEXT) ILIKE ?", col), []any{"%" + escapeLike(toStr(c.Value)) + "%"}, nil
	case OpIn, OpNotIn:
		list, _ := asList(c.Value)
		if len(list) == 0 {
			if c.Op == OpIn {
				return "1 = 0", nil, nil
			}
			return "1 = 1", nil, nil
		}
		return fmt.Sprintf("%s %s ?", col, c.Op), []any{list}, nil
	case OpIsNull:
		if isNull, _ := c.Value.(bool); isNull {
			return col + " IS NULL", nil, nil
		}
		return col + " IS NOT NULL", nil, nil
	case OpBetween:
		list, _ := asList(c.Value)
		return col + " BETWEEN ? AND ?", []any{list[0], list[1]}, nil
	default:
		return "", nil, fmt.Errorf("filter: operator %q can not be rendered", c.Op)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
