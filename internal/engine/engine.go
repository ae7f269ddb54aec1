// Package engine executes parsed GraphQL operations against a Runtime.
//
// The engine owns the generic execution algorithm: operation selection,
// variable and argument coercion, field collection (aliases, fragments,
// @skip/@include), recursive value completion with non-null propagation,
// and leaf serialization. Everything domain-specific (computing field
// values, classifying interface values, rendering scalars) is delegated to
// the Runtime.
//
// Execution is fully synchronous: fields are resolved one at a time in
// collection order, and a resolver never suspends mid-computation.
package engine

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Runtime is the host integration surface for field resolution, abstract
// type resolution, and leaf-value serialization.
//
// objectType is the GraphQL type name ("Query", "Post", ...), field the
// field name on that type, source the parent value (nil for root fields),
// and args the already-coerced argument values. Returning (nil, nil)
// produces a GraphQL null for nullable fields; a returned error becomes a
// located GraphQL error, and for non-null fields the null propagates to the
// nearest nullable ancestor.
type Runtime interface {
	// Resolve computes a field value.
	Resolve(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error)

	// ResolveType returns the concrete object type name for a value of an
	// interface (or union) type.
	ResolveType(abstractType string, value any) (string, error)

	// Serialize renders a scalar or enum value into a JSON-safe Go value.
	Serialize(typeName string, value any) (any, error)
}

// Response is the result of executing one operation.
type Response struct {
	Data   map[string]any
	Errors gqlerror.List
}

// Engine executes operations against a fixed schema and runtime.
type Engine struct {
	schema  *ast.Schema
	runtime Runtime
}

// New creates an Engine for the given schema and runtime.
func New(schema *ast.Schema, rt Runtime) *Engine {
	return &Engine{schema: schema, runtime: rt}
}

// Schema returns the schema the engine executes against.
func (e *Engine) Schema() *ast.Schema {
	return e.schema
}

// executionState holds per-request execution state.
type executionState struct {
	ctx       context.Context
	schema    *ast.Schema
	runtime   Runtime
	document  *ast.QueryDocument
	variables map[string]any
	errors    gqlerror.List
}

// Execute parses, validates, and runs a single query or mutation document.
// Errors never panic out: they are collected into the response.
func (e *Engine) Execute(ctx context.Context, query, operationName string, variables map[string]any) *Response {
	doc, errs := gqlparser.LoadQuery(e.schema, query)
	if len(errs) > 0 {
		return &Response{Errors: errs}
	}

	op := selectOperation(doc, operationName)
	if op == nil {
		if operationName == "" {
			return errorResponse("operation name required for multi-operation documents")
		}
		return errorResponse(fmt.Sprintf("operation %q not found", operationName))
	}

	var rootDef *ast.Definition
	switch op.Operation {
	case ast.Query:
		rootDef = e.schema.Query
	case ast.Mutation:
		rootDef = e.schema.Mutation
	default:
		return errorResponse(fmt.Sprintf("unsupported operation type: %s", op.Operation))
	}
	if rootDef == nil {
		return errorResponse(fmt.Sprintf("schema does not define a %s root", op.Operation))
	}

	state := &executionState{
		ctx:      ctx,
		schema:   e.schema,
		runtime:  e.runtime,
		document: doc,
	}

	coerced, err := state.coerceVariables(op, variables)
	if err != nil {
		return &Response{Errors: gqlerror.List{{Message: err.Error()}}}
	}
	state.variables = coerced

	data := state.executeSelectionSet(rootDef, op.SelectionSet, nil, nil)

	return &Response{Data: data, Errors: state.errors}
}

// selectOperation picks the requested operation, or the only one when no
// name is given.
func selectOperation(doc *ast.QueryDocument, operationName string) *ast.OperationDefinition {
	if operationName == "" {
		if len(doc.Operations) == 1 {
			return doc.Operations[0]
		}
		return nil
	}
	return doc.Operations.ForName(operationName)
}

func errorResponse(message string) *Response {
	return &Response{Errors: gqlerror.List{{Message: message}}}
}

func (s *executionState) addError(message string, path ast.Path) {
	s.errors = append(s.errors, &gqlerror.Error{Message: message, Path: path})
}

// executeSelectionSet resolves every collected field of a selection set on
// one object value. It returns nil when a non-null field resolved to null
// and the whole object must collapse (non-root only).
func (s *executionState) executeSelectionSet(objectDef *ast.Definition, selectionSet ast.SelectionSet, objectValue any, path ast.Path) map[string]any {
	result := make(map[string]any)

	for _, collected := range s.collectFields(objectDef, selectionSet) {
		fieldPath := childPath(path, ast.PathName(collected.ResponseName))
		field := collected.Fields[0]

		if field.Name == "__typename" {
			result[collected.ResponseName] = objectDef.Name
			continue
		}

		fieldDef := objectDef.Fields.ForName(field.Name)
		if fieldDef == nil {
			// Validation catches this; kept as a defensive path.
			s.addError(fmt.Sprintf("cannot query field %q on type %q", field.Name, objectDef.Name), fieldPath)
			continue
		}

		value := s.executeField(objectDef, fieldDef, collected.Fields, objectValue, fieldPath)

		if fieldDef.Type.NonNull && isNullish(value) {
			if len(path) > 0 {
				return nil
			}
			// Root level: keep executing the remaining root fields.
			result[collected.ResponseName] = nil
			continue
		}

		if isNullish(value) {
			result[collected.ResponseName] = nil
		} else {
			result[collected.ResponseName] = value
		}
	}

	return result
}

// executeField resolves one field group and completes its value.
func (s *executionState) executeField(objectDef *ast.Definition, fieldDef *ast.FieldDefinition, fields []*ast.Field, objectValue any, path ast.Path) any {
	args, ok := s.coerceArguments(fieldDef, fields[0].Arguments, path)
	if !ok {
		return nil
	}

	value, err := s.runtime.Resolve(s.ctx, objectDef.Name, fieldDef.Name, objectValue, args)
	if err != nil {
		s.addError(err.Error(), path)
		return nil
	}

	return s.completeValue(fieldDef.Type, fields, value, path)
}

// completeValue completes a resolved value against its declared type:
// unwrapping non-null, walking lists, serializing leaves, and recursing
// into object and abstract types.
func (s *executionState) completeValue(typ *ast.Type, fields []*ast.Field, value any, path ast.Path) any {
	if typ.NonNull {
		if isNullish(value) {
			if !s.hasErrorAt(path) {
				s.addError(fmt.Sprintf("cannot return null for non-nullable field %s", path.String()), path)
			}
			return nil
		}
		return s.completeValue(nullableOf(typ), fields, value, path)
	}

	if isNullish(value) {
		return nil
	}

	if typ.Elem != nil {
		return s.completeList(typ, fields, value, path)
	}

	def := s.schema.Types[typ.NamedType]
	if def == nil {
		s.addError(fmt.Sprintf("unknown type %q", typ.NamedType), path)
		return nil
	}

	switch def.Kind {
	case ast.Scalar, ast.Enum:
		serialized, err := s.runtime.Serialize(def.Name, value)
		if err != nil {
			s.addError(err.Error(), path)
			return nil
		}
		return serialized

	case ast.Object:
		return s.executeSelectionSet(def, mergeSelectionSets(fields), value, path)

	case ast.Interface, ast.Union:
		typeName, err := s.runtime.ResolveType(def.Name, value)
		if err != nil {
			s.addError(err.Error(), path)
			return nil
		}
		concrete := s.schema.Types[typeName]
		if concrete == nil || concrete.Kind != ast.Object {
			s.addError(fmt.Sprintf("abstract type %s resolved to non-object type %q", def.Name, typeName), path)
			return nil
		}
		return s.executeSelectionSet(concrete, mergeSelectionSets(fields), value, path)

	default:
		s.addError(fmt.Sprintf("cannot complete value of type %s", def.Name), path)
		return nil
	}
}

// completeList completes each element of a list value.
func (s *executionState) completeList(listType *ast.Type, fields []*ast.Field, value any, path ast.Path) any {
	items, ok := asSlice(value)
	if !ok {
		s.addError(fmt.Sprintf("expected a list value, got %T", value), path)
		return nil
	}

	elemType := listType.Elem
	completed := make([]any, len(items))
	for i, item := range items {
		elemPath := childPath(path, ast.PathIndex(i))
		v := s.completeValue(elemType, fields, item, elemPath)
		if elemType.NonNull && isNullish(v) {
			// A null element of a non-null list collapses the whole list.
			return nil
		}
		completed[i] = v
	}
	return completed
}

// mergeSelectionSets merges the sub-selections of a field group.
func mergeSelectionSets(fields []*ast.Field) ast.SelectionSet {
	var merged ast.SelectionSet
	for _, f := range fields {
		merged = append(merged, f.SelectionSet...)
	}
	return merged
}

// childPath copies the path before extending it so that error paths kept in
// the state are not clobbered by sibling fields sharing a backing array.
func childPath(path ast.Path, elem ast.PathElement) ast.Path {
	child := make(ast.Path, len(path)+1)
	copy(child, path)
	child[len(path)] = elem
	return child
}

// nullableOf strips the outer non-null wrapper from a type.
func nullableOf(typ *ast.Type) *ast.Type {
	return &ast.Type{NamedType: typ.NamedType, Elem: typ.Elem, NonNull: false}
}

func (s *executionState) hasErrorAt(path ast.Path) bool {
	for _, err := range s.errors {
		if reflect.DeepEqual(err.Path, path) {
			return true
		}
	}
	return false
}

// asSlice converts any slice value to []any.
func asSlice(value any) ([]any, bool) {
	if direct, ok := value.([]any); ok {
		return direct, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// isNullish reports nil interfaces and typed nils.
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
