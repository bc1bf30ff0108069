/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package executor

import "github.com/mazzi/graphlark/lang/graphql/ast"

// flattenSelections expands FragmentSpread and InlineFragment selections
// into a flat, ordered list of Fields. Type-condition matching against the
// parent's concrete runtime type is not implemented - every fragment is
// inlined unconditionally - because resolving the concrete type of a
// polymorphic (interface/union) parent value is outside this pipeline's
// scope (see DESIGN.md); callers working with concrete object types only
// are unaffected.
func flattenSelections(sels []ast.Selection, fragments map[string]*ast.FragmentDefinition, visited map[string]bool) []ast.Field {
	var out []ast.Field
	for _, sel := range sels {
		switch s := sel.(type) {
		case ast.Field:
			out = append(out, s)
		case ast.InlineFragment:
			out = append(out, flattenSelections(s.SelectionSet, fragments, visited)...)
		case ast.FragmentSpread:
			if visited[s.Name] {
				continue
			}
			frag, ok := fragments[s.Name]
			if !ok {
				continue
			}
			next := make(map[string]bool, len(visited)+1)
			for k := range visited {
				next[k] = true
			}
			next[s.Name] = true
			out = append(out, flattenSelections(frag.SelectionSet, fragments, next)...)
		}
	}
	return out
}

func collectFragments(doc *ast.Document) map[string]*ast.FragmentDefinition {
	out := make(map[string]*ast.FragmentDefinition)
	for _, def := range doc.Definitions {
		if fd, ok := def.(ast.FragmentDefinition); ok {
			f := fd
			out[f.Name] = &f
		}
	}
	return out
}
