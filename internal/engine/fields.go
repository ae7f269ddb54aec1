package engine

import "github.com/vektah/gqlparser/v2/ast"

// collectedField groups every occurrence of one response name in a selection
// set, preserving document order.
type collectedField struct {
	ResponseName string
	Fields       []*ast.Field
}

// collectFields flattens a selection set for one object type: aliases are
// grouped by response name, fragment spreads and inline fragments are
// expanded when their type condition applies, and @skip/@include are
// honored.
func (s *executionState) collectFields(objectDef *ast.Definition, selectionSet ast.SelectionSet) []collectedField {
	var fields []collectedField
	index := make(map[string]int)
	visited := make(map[string]bool)

	var walk func(selectionSet ast.SelectionSet)
	walk = func(selectionSet ast.SelectionSet) {
		for _, selection := range selectionSet {
			switch sel := selection.(type) {
			case *ast.Field:
				if !s.shouldInclude(sel.Directives) {
					continue
				}
				name := sel.Alias
				if name == "" {
					name = sel.Name
				}
				if i, ok := index[name]; ok {
					fields[i].Fields = append(fields[i].Fields, sel)
				} else {
					index[name] = len(fields)
					fields = append(fields, collectedField{ResponseName: name, Fields: []*ast.Field{sel}})
				}

			case *ast.InlineFragment:
				if !s.shouldInclude(sel.Directives) {
					continue
				}
				if !s.typeApplies(objectDef, sel.TypeCondition) {
					continue
				}
				walk(sel.SelectionSet)

			case *ast.FragmentSpread:
				if !s.shouldInclude(sel.Directives) {
					continue
				}
				if visited[sel.Name] {
					continue
				}
				visited[sel.Name] = true

				def := s.document.Fragments.ForName(sel.Name)
				if def == nil {
					continue
				}
				if !s.typeApplies(objectDef, def.TypeCondition) {
					continue
				}
				walk(def.SelectionSet)
			}
		}
	}
	walk(selectionSet)

	return fields
}

// typeApplies reports whether a fragment type condition matches the object
// type, either directly or through an implemented interface.
func (s *executionState) typeApplies(objectDef *ast.Definition, condition string) bool {
	if condition == "" || condition == objectDef.Name {
		return true
	}
	for _, iface := range objectDef.Interfaces {
		if iface == condition {
			return true
		}
	}
	return false
}

// shouldInclude evaluates @skip and @include on a selection.
func (s *executionState) shouldInclude(directives ast.DirectiveList) bool {
	if skip := directives.ForName("skip"); skip != nil {
		if cond, ok := s.directiveCondition(skip); ok && cond {
			return false
		}
	}
	if include := directives.ForName("include"); include != nil {
		if cond, ok := s.directiveCondition(include); ok && !cond {
			return false
		}
	}
	return true
}

// directiveCondition evaluates the boolean "if" argument of @skip/@include.
func (s *executionState) directiveCondition(directive *ast.Directive) (bool, bool) {
	arg := directive.Arguments.ForName("if")
	if arg == nil {
		return false, false
	}
	value := s.valueFromAST(arg.Value)
	cond, ok := value.(bool)
	return cond, ok
}
