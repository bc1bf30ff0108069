/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package coerce

import (
	"fmt"
	"math"

	"github.com/mazzi/graphlark/lang/graphql/ast"
	"github.com/mazzi/graphlark/lang/graphql/schema"
)

func rawTypeMismatch(t ast.TypeRef, raw interface{}) error {
	return fmt.Errorf("Expected type %s, found %v.", t.String(), raw)
}

// CoerceRaw coerces a decoded JSON value (as produced by DecodeVariablesJSON
// or plain encoding/json) against a declared type, per §4.6. It is the raw
// counterpart to Coerce: there is no literal syntax to dispatch on, only Go's
// JSON-decoded shapes (nil, float64, string, bool, []interface{},
// map[string]interface{}).
func CoerceRaw(raw interface{}, t ast.TypeRef, sch *schema.Schema) (Presence, error) {
	if raw == nil {
		if isNonNull(t) {
			return Absent, fmt.Errorf("null value found for non-null type %s", t.String())
		}
		return Null(), nil
	}

	switch u := t.(type) {
	case ast.NonNullType:
		return CoerceRaw(raw, u.Inner, sch)

	case ast.ListType:
		if arr, ok := raw.([]interface{}); ok {
			vals := make([]interface{}, 0, len(arr))
			for _, e := range arr {
				p, err := CoerceRaw(e, u.Elem, sch)
				if err != nil {
					return Absent, err
				}
				vals = append(vals, p.ToInterface())
			}
			return Of(vals), nil
		}
		p, err := CoerceRaw(raw, u.Elem, sch)
		if err != nil {
			return Absent, err
		}
		return Of([]interface{}{p.ToInterface()}), nil

	case ast.NamedType:
		return coerceNamedRaw(raw, u, sch)
	}

	return Absent, fmt.Errorf("coerce: unsupported type reference %T", t)
}

func asFloat64(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func coerceNamedRaw(raw interface{}, named ast.NamedType, sch *schema.Schema) (Presence, error) {
	switch named.Name {
	case "Int":
		f, ok := asFloat64(raw)
		if !ok {
			return Absent, rawTypeMismatch(named, raw)
		}
		i := int64(f)
		if float64(i) != f {
			return Absent, fmt.Errorf("Int cannot represent non-integer value: %v", raw)
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return Absent, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %d", i)
		}
		return Of(i), nil

	case "Float":
		f, ok := asFloat64(raw)
		if !ok {
			return Absent, rawTypeMismatch(named, raw)
		}
		return Of(f), nil

	case "String":
		s, ok := raw.(string)
		if !ok {
			return Absent, rawTypeMismatch(named, raw)
		}
		return Of(s), nil

	case "Boolean":
		b, ok := raw.(bool)
		if !ok {
			return Absent, rawTypeMismatch(named, raw)
		}
		return Of(b), nil

	case "ID":
		switch n := raw.(type) {
		case string:
			return Of(n), nil
		case float64, int, int64:
			f, _ := asFloat64(raw)
			return Of(fmt.Sprintf("%d", int64(f))), nil
		}
		return Absent, rawTypeMismatch(named, raw)
	}

	if sch == nil {
		return Absent, rawTypeMismatch(named, raw)
	}
	nt, ok := sch.ResolveType(named)
	if !ok {
		return Absent, fmt.Errorf("unknown type %q", named.Name)
	}

	switch t2 := nt.(type) {
	case *schema.EnumType:
		s, ok := raw.(string)
		if !ok {
			return Absent, rawTypeMismatch(named, raw)
		}
		for _, val := range t2.Values {
			if val.Name == s {
				return Of(s), nil
			}
		}
		return Absent, fmt.Errorf("Value %q does not exist in %q enum.", s, named.Name)

	case *schema.InputObjectType:
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return Absent, rawTypeMismatch(named, raw)
		}
		result := make(map[string]interface{})
		for _, fd := range t2.Fields {
			rv, present := obj[fd.Name]
			var p Presence
			var err error
			switch {
			case present:
				p, err = CoerceRaw(rv, fd.Type, sch)
			case fd.HasDefault:
				p, err = Coerce(fd.Default, fd.Type, sch, nil)
			case isNonNull(fd.Type):
				return Absent, fmt.Errorf("field %q of required type %q was not provided", fd.Name, fd.Type.String())
			default:
				p = Absent
			}
			if err != nil {
				return Absent, err
			}
			if !p.IsAbsent() {
				result[fd.Name] = p.ToInterface()
			}
		}
		return Of(result), nil
	}

	return Absent, rawTypeMismatch(named, raw)
}
