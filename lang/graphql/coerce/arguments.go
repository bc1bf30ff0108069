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

// CoerceArguments is C6: it coerces one field's literal argument list against
// the field's ArgumentsDefinition, per §4.5's four rules -
//
//  1. a Variable(v) argument passes through v's own coerced presence,
//     falling back to the argument's default only when v is itself absent
//     (an explicit null on v is passed through, never defaulted);
//  2. a literal argument coerces against the declared type directly;
//  3. a wholly absent argument takes the declared default, if any;
//  4. whatever presence results, a null against a non-null argument type
//     is an error.
//
// vars is the operation's already-coerced variable map (from
// CoerceVariables); path/loc locate the owning field for error reporting.
func CoerceArguments(fieldArgs []ast.Argument, argDefs []ast.InputValueDefinition, vars map[string]Presence, sch *schema.Schema, path gqlerrors.Path, loc *gqlerrors.Location) (map[string]Presence, error) {
	litByName := make(map[string]ast.Value, len(fieldArgs))
	for _, a := range fieldArgs {
		litByName[a.Name] = a.Value
	}

	result := make(map[string]Presence, len(argDefs))

	for _, def := range argDefs {
		lit, present := litByName[def.Name]

		var p Presence
		var err error

		switch {
		case present:
			p, err = Coerce(lit, def.Type, sch, vars)
			if err == nil && p.IsAbsent() && def.HasDefault {
				p, err = Coerce(def.Default, def.Type, sch, vars)
			}
		case def.HasDefault:
			p, err = Coerce(def.Default, def.Type, sch, vars)
		default:
			p = Absent
		}

		if err != nil {
			return nil, gqlerrors.NewOperationError(err.Error(), path, loc)
		}

		if p.IsNull() && isNonNull(def.Type) {
			msg := fmt.Sprintf("Argument < %s > of non-null type < %s > must not be null.", def.Name, def.Type.String())
			return nil, gqlerrors.NewOperationError(msg, path, loc)
		}

		result[def.Name] = p
	}

	return result, nil
}
