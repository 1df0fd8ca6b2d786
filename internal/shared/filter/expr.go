package filter

// Expr is a node of the compiled predicate tree.
type Expr interface {
	isExpr()
}

type And []Expr

type Or []Expr

// Compare tests a single field. Value has already been coerced to the
// condition's data type: time.Time for dates, int64 for ints, bool for bools,
// and []any for list operators. For BETWEEN the list holds exactly two items.
type Compare struct {
	Field string
	Op    Operator
	Value any
}

func (And) isExpr()     {}
func (Or) isExpr()      {}
func (Compare) isExpr() {}

// Exclusion removes rows where any of Fields equals Value. Every "!="
// condition compiles to one of these instead of a predicate node.
type Exclusion struct {
	Fields []string
	Value  any
}

type Result struct {
	Predicate  And
	Exclusions []Exclusion
}

func (r Result) Empty() bool {
	return len(r.Predicate) == 0 && len(r.Exclusions) == 0
}
