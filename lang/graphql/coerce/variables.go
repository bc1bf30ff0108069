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

	"github.com/mazzi/graphlark/lang/graphql/ast"
	"github.com/mazzi/graphlark/lang/graphql/gqlerrors"
	"github.com/mazzi/graphlark/lang/graphql/schema"
)

// CoerceVariables is C5: it coerces the raw `variables` payload of an
// operation against its declared VariableDefinitions exactly once, before
// any field is resolved. raw may be nil, which behaves as if every key were
// absent. The returned map always carries one Presence per declared
// variable.
//
// A missing required variable or an explicit null against a non-null type
// is terminal: the whole request aborts with a single top-level error
// rather than executing with partial data, because the failure happens
// before field resolution begins.
func CoerceVariables(defs []ast.VariableDefinition, raw map[string]interface{}, sch *schema.Schema) (map[string]Presence, error) {
	result := make(map[string]Presence, len(defs))

	for _, def := range defs {
		loc := &gqlerrors.Location{Line: def.Line, Column: def.Column}
		typeStr := def.Type.String()

		rawVal, present := raw[def.Name]

		if !present {
			if def.HasDefault {
				p, err := Coerce(def.Default, def.Type, sch, result)
				if err != nil {
					return nil, gqlerrors.NewTerminalOperationError(err.Error(), loc)
				}
				result[def.Name] = p
				continue
			}
			if isNonNull(def.Type) {
				msg := fmt.Sprintf("Variable < $%s > of required type < %s > was not provided.", def.Name, typeStr)
				return nil, gqlerrors.NewTerminalOperationError(msg, loc)
			}
			result[def.Name] = Absent
			continue
		}

		if rawVal == nil {
			if isNonNull(def.Type) {
				msg := fmt.Sprintf("Variable < $%s > of non-null type < %s > must not be null.", def.Name, typeStr)
				return nil, gqlerrors.NewTerminalOperationError(msg, loc)
			}
			result[def.Name] = Null()
			continue
		}

		p, err := CoerceRaw(rawVal, def.Type, sch)
		if err != nil {
			return nil, gqlerrors.NewTerminalOperationError(err.Error(), loc)
		}
		result[def.Name] = p
	}

	return result, nil
}
