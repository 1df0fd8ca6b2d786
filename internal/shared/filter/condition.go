// Package filter compiles the declarative condition payloads accepted by list
// and search endpoints into a backend-neutral predicate tree, and applies that
// tree to gorm queries against an allow-list of columns.
package filter

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Operator string

const (
	OpEq      Operator = "="
	OpNe      Operator = "!="
	OpLike    Operator = "LIKE"
	OpILike   Operator = "ILIKE"
	OpLt      Operator = "<"
	OpLte     Operator = "<="
	OpGt      Operator = ">"
	OpGte     Operator = ">="
	OpIn      Operator = "IN"
	OpNotIn   Operator = "NOT IN"
	OpIsNull  Operator = "IS NULL"
	OpBetween Operator = "BETWEEN"
)

var supportedOperators = map[Operator]struct{}{
	OpEq: {}, OpNe: {}, OpLike: {}, OpILike: {}, OpLt: {}, OpLte: {},
	OpGt: {}, OpGte: {}, OpIn: {}, OpNotIn: {}, OpIsNull: {}, OpBetween: {},
}

func (o Operator) requiresList() bool {
	return o == OpIn || o == OpNotIn || o == OpBetween
}

type DataType string

const (
	TypeDate DataType = "date"
	TypeInt  DataType = "int"
	TypeStr  DataType = "str"
	TypeBool DataType = "bool"
	TypeList DataType = "list"
)

var supportedDataTypes = map[DataType]struct{}{
	TypeDate: {}, TypeInt: {}, TypeStr: {}, TypeBool: {}, TypeList: {},
}

// Fields is the "field" member of a condition. A single name or a list of
// names; a list is OR-ed across its members.
type Fields []string

func (f *Fields) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*f = nil
			return nil
		}
		*f = Fields{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("field must be a string or a list of strings")
	}
	*f = many
	return nil
}

func (f Fields) MarshalJSON() ([]byte, error) {
	if len(f) == 1 {
		return json.Marshal(f[0])
	}
	return json.Marshal([]string(f))
}

type Condition struct {
	Field    Fields `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"condition"`
	DataType string `json:"dataType"`
}

// Request is the body shape shared by every advanced-filter endpoint.
type Request struct {
	Condition []Condition `json:"condition"`
}

// SimpleRequest carries a flat field=value map, AND-combined.
type SimpleRequest struct {
	Condition map[string]any `json:"condition"`
}

func normalizeOperator(op string) Operator {
	return Operator(strings.ToUpper(strings.Join(strings.Fields(op), " ")))
}
