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
	"strconv"

	"github.com/mazzi/graphlark/lang/graphql/ast"
	"github.com/mazzi/graphlark/lang/graphql/schema"
)

func isNonNull(t ast.TypeRef) bool {
	_, ok := t.(ast.NonNullType)
	return ok
}

func typeMismatch(t ast.TypeRef, got string) error {
	return fmt.Errorf("Expected type %s, found %s.", t.String(), got)
}

// Coerce coerces a query-literal value against a declared type, per §4.6.
// vars carries the already-coerced variable presences for the enclosing
// operation so a Variable(name) appearing anywhere in the literal - at the
// top level or nested inside a list/object - resolves to its own
// three-state presence rather than being re-coerced against t.
func Coerce(v ast.Value, t ast.TypeRef, sch *schema.Schema, vars map[string]Presence) (Presence, error) {
	if vv, ok := v.(ast.VariableValue); ok {
		if p, ok := vars[vv.Name]; ok {
			return p, nil
		}
		return Absent, nil
	}

	if _, ok := v.(ast.NullValue); ok {
		if isNonNull(t) {
			return Absent, fmt.Errorf("null value found for non-null type %s", t.String())
		}
		return Null(), nil
	}

	switch u := t.(type) {
	case ast.NonNullType:
		return Coerce(v, u.Inner, sch, vars)

	case ast.ListType:
		if lv, ok := v.(ast.ListValue); ok {
			vals := make([]interface{}, 0, len(lv.Values))
			for _, e := range lv.Values {
				p, err := Coerce(e, u.Elem, sch, vars)
				if err != nil {
					return Absent, err
				}
				vals = append(vals, p.ToInterface())
			}
			return Of(vals), nil
		}
		p, err := Coerce(v, u.Elem, sch, vars)
		if err != nil {
			return Absent, err
		}
		if p.IsAbsent() {
			return Absent, nil
		}
		return Of([]interface{}{p.ToInterface()}), nil

	case ast.NamedType:
		return coerceNamedLiteral(v, u, sch, vars)
	}

	return Absent, fmt.Errorf("coerce: unsupported type reference %T", t)
}

func coerceNamedLiteral(v ast.Value, named ast.NamedType, sch *schema.Schema, vars map[string]Presence) (Presence, error) {
	switch named.Name {
	case "Int":
		iv, ok := v.(ast.IntValue)
		if !ok {
			return Absent, typeMismatch(named, ast.PrintValue(v))
		}
		if iv.Value < math.MinInt32 || iv.Value > math.MaxInt32 {
			return Absent, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %d", iv.Value)
		}
		return Of(iv.Value), nil

	case "Float":
		switch n := v.(type) {
		case ast.FloatValue:
			return Of(n.Value), nil
		case ast.IntValue:
			return Of(float64(n.Value)), nil
		}
		return Absent, typeMismatch(named, ast.PrintValue(v))

	case "String":
		sv, ok := v.(ast.StringValue)
		if !ok {
			return Absent, typeMismatch(named, ast.PrintValue(v))
		}
		return Of(sv.Value), nil

	case "Boolean":
		bv, ok := v.(ast.BoolValue)
		if !ok {
			return Absent, typeMismatch(named, ast.PrintValue(v))
		}
		return Of(bv.Value), nil

	case "ID":
		switch n := v.(type) {
		case ast.StringValue:
			return Of(n.Value), nil
		case ast.IntValue:
			return Of(strconv.FormatInt(n.Value, 10)), nil
		}
		return Absent, typeMismatch(named, ast.PrintValue(v))
	}

	if sch == nil {
		return Absent, typeMismatch(named, ast.PrintValue(v))
	}
	nt, ok := sch.ResolveType(named)
	if !ok {
		return Absent, fmt.Errorf("unknown type %q", named.Name)
	}

	switch t2 := nt.(type) {
	case *schema.EnumType:
		ev, ok := v.(ast.EnumValue)
		if !ok {
			return Absent, typeMismatch(named, ast.PrintValue(v))
		}
		for _, val := range t2.Values {
			if val.Name == ev.Value {
				return Of(ev.Value), nil
			}
		}
		return Absent, fmt.Errorf("Value %q does not exist in %q enum.", ev.Value, named.Name)

	case *schema.InputObjectType:
		ov, ok := v.(ast.ObjectValue)
		if !ok {
			return Absent, typeMismatch(named, ast.PrintValue(v))
		}
		litByName := make(map[string]ast.Value, len(ov.Fields))
		for _, f := range ov.Fields {
			litByName[f.Name] = f.Value
		}
		result := make(map[string]interface{})
		for _, fd := range t2.Fields {
			lit, present := litByName[fd.Name]
			var p Presence
			var err error
			if present {
				p, err = Coerce(lit, fd.Type, sch, vars)
			} else if fd.HasDefault {
				p, err = Coerce(fd.Default, fd.Type, sch, vars)
			} else if isNonNull(fd.Type) {
				return Absent, fmt.Errorf("field %q of required type %q was not provided", fd.Name, fd.Type.String())
			} else {
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

	return Absent, typeMismatch(named, ast.PrintValue(v))
}
