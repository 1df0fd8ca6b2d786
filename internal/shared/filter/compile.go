package filter

import (
	"fmt"
	"math"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
)

var errConditionFormat = apperror.PayloadValidation(
	"Invalid condition format. Each condition must include 'field', 'operator', and 'condition' keys.",
)

// Compile validates conditions and folds them, in order, into a single AND
// predicate plus the exclusion list. On any error the partial result is
// discarded.
func Compile(conditions []Condition) (Result, error) {
	var res Result

	for _, cond := range conditions {
		fields, op, value, err := validate(cond)
		if err != nil {
			return Result{}, err
		}

		if op == OpNe {
			res.Exclusions = append(res.Exclusions, Exclusion{Fields: fields, Value: value})
			continue
		}

		if len(fields) == 1 {
			res.Predicate = append(res.Predicate, Compare{Field: fields[0], Op: op, Value: value})
			continue
		}

		either := make(Or, 0, len(fields))
		for _, f := range fields {
			either = append(either, Compare{Field: f, Op: op, Value: value})
		}
		res.Predicate = append(res.Predicate, either)
	}

	return res, nil
}

// CompileSimple handles the flat {field: value} form. Keys are lowercased
// and compared for equality; iteration is sorted so the output is stable.
func CompileSimple(condition map[string]any) Result {
	keys := make([]string, 0, len(condition))
	lowered := make(map[string]any, len(condition))
	for k, v := range condition {
		lk := strings.ToLower(strings.TrimSpace(k))
		if lk == "" {
			continue
		}
		if _, dup := lowered[lk]; !dup {
			keys = append(keys, lk)
		}
		lowered[lk] = v
	}
	sort.Strings(keys)

	var res Result
	for _, k := range keys {
		res.Predicate = append(res.Predicate, Compare{Field: k, Op: OpEq, Value: lowered[k]})
	}
	return res
}

func validate(cond Condition) ([]string, Operator, any, error) {
	fields := make([]string, 0, len(cond.Field))
	for _, f := range cond.Field {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 || strings.TrimSpace(cond.Operator) == "" || cond.Value == nil {
		return nil, "", nil, errConditionFormat
	}

	op := normalizeOperator(cond.Operator)
	if _, ok := supportedOperators[op]; !ok {
		return nil, "", nil, apperror.Newf(apperror.CodeInvalidOperator, http.StatusBadRequest,
			"Invalid operator: %s", cond.Operator)
	}

	dt := DataType(strings.ToLower(strings.TrimSpace(cond.DataType)))
	if _, ok := supportedDataTypes[dt]; !ok {
		return nil, "", nil, apperror.Newf(apperror.CodeInvalidDataType, http.StatusBadRequest,
			"Invalid data type: %s", cond.DataType)
	}

	if op == OpIsNull && dt != TypeBool {
		return nil, "", nil, apperror.Newf(apperror.CodeInvalidDataType, http.StatusBadRequest,
			"Invalid condition for operator 'IS NULL'. Expected a boolean value but got '%s'", dt)
	}

	list, isList := asList(cond.Value)
	if op.requiresList() && !isList {
		return nil, "", nil, apperror.Newf(apperror.CodeInvalidListValue, http.StatusBadRequest,
			"Invalid value for operator '%s'. Expected a list", op)
	}
	if op == OpBetween && len(list) != 2 {
		return nil, "", nil, apperror.Newf(apperror.CodeInvalidListValue, http.StatusBadRequest,
			"Invalid value for operator 'BETWEEN'. Expected exactly two values")
	}

	label := strings.Join(fields, ", ")
	value, err := coerce(dt, op, cond.Value, list, isList, label)
	if err != nil {
		return nil, "", nil, err
	}

	return fields, op, value, nil
}

func coerce(dt DataType, op Operator, raw any, list []any, isList bool, field string) (any, error) {
	switch dt {
	case TypeList:
		if !isList {
			return nil, apperror.Newf(apperror.CodeInvalidListValue, http.StatusBadRequest,
				"Invalid value for field %s. Expected a list", field)
		}
		if !op.requiresList() {
			return nil, apperror.Newf(apperror.CodeInvalidListValue, http.StatusBadRequest,
				"Operator '%s' can not be used with a list value", op)
		}
		return list, nil
	case TypeDate:
		return mapScalar(raw, list, isList, func(v any) (any, error) { return toDate(v, field) })
	case TypeInt:
		return mapScalar(raw, list, isList, func(v any) (any, error) { return toInt(v, field) })
	case TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, apperror.Newf(apperror.CodeInvalidDataType, http.StatusBadRequest,
				"Invalid boolean format for field %s", field)
		}
		return b, nil
	default:
		return mapScalar(raw, list, isList, func(v any) (any, error) { return toStr(v), nil })
	}
}

func mapScalar(raw any, list []any, isList bool, fn func(any) (any, error)) (any, error) {
	if !isList {
		return fn(raw)
	}
	out := make([]any, len(list))
	for i, item := range list {
		v, err := fn(item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func toDate(v any, field string) (time.Time, error) {
	s, ok := v.(string)
	if ok {
		s = strings.TrimSpace(s)
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, apperror.Newf(apperror.CodeInvalidDateFormat, http.StatusBadRequest,
		"Invalid date format for field %s. Expected an ISO 8601 date format", field)
}

func toInt(v any, field string) (int64, error) {
	invalid := apperror.Newf(apperror.CodeInvalidDataType, http.StatusBadRequest,
		"Invalid integer format for field %s", field)

	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, invalid
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, invalid
		}
		return i, nil
	default:
		return 0, invalid
	}
}

func toStr(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func asList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if l, ok := v.([]any); ok {
		return l, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
