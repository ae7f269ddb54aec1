package engine

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
)

// coerceVariables coerces the request's variable values against the
// operation's variable definitions. Missing nullable variables are omitted;
// missing non-null variables without a default are an error.
func (s *executionState) coerceVariables(op *ast.OperationDefinition, variables map[string]any) (map[string]any, error) {
	coerced := make(map[string]any)

	for _, def := range op.VariableDefinitions {
		value, provided := variables[def.Variable]

		if !provided {
			if def.DefaultValue != nil {
				value = s.valueFromAST(def.DefaultValue)
			} else if def.Type.NonNull {
				return nil, fmt.Errorf("variable $%s of required type %s was not provided", def.Variable, def.Type.String())
			} else {
				continue
			}
		}

		if value == nil && def.Type.NonNull {
			return nil, fmt.Errorf("variable $%s of type %s cannot be null", def.Variable, def.Type.String())
		}

		cv, err := s.coerceValue(value, def.Type)
		if err != nil {
			return nil, fmt.Errorf("variable $%s: %w", def.Variable, err)
		}
		coerced[def.Variable] = cv
	}

	return coerced, nil
}

// coerceArguments coerces a field's argument values. The bool result is
// false when a required argument is missing or malformed; errors are already
// recorded on the state.
func (s *executionState) coerceArguments(fieldDef *ast.FieldDefinition, arguments ast.ArgumentList, path ast.Path) (map[string]any, bool) {
	coerced := make(map[string]any)
	ok := true

	for _, arg := range arguments {
		argDef := fieldDef.Arguments.ForName(arg.Name)
		if argDef == nil {
			// Unknown arguments are ignored.
			continue
		}
		value := s.valueFromAST(arg.Value)
		cv, err := s.coerceValue(value, argDef.Type)
		if err != nil {
			s.addError(fmt.Sprintf("argument %q: %v", arg.Name, err), path)
			ok = false
			continue
		}
		if cv == nil {
			continue
		}
		coerced[arg.Name] = cv
	}

	for _, argDef := range fieldDef.Arguments {
		if _, set := coerced[argDef.Name]; set {
			continue
		}
		if argDef.DefaultValue != nil {
			coerced[argDef.Name] = s.valueFromAST(argDef.DefaultValue)
		} else if argDef.Type.NonNull {
			s.addError(fmt.Sprintf("argument %q of required type %s was not provided", argDef.Name, argDef.Type.String()), path)
			ok = false
		}
	}

	return coerced, ok
}

// valueFromAST converts an AST value to a Go value, substituting variables.
func (s *executionState) valueFromAST(value *ast.Value) any {
	if value == nil {
		return nil
	}

	switch value.Kind {
	case ast.Variable:
		return s.variables[value.Raw]
	case ast.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case ast.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case ast.StringValue, ast.BlockValue, ast.EnumValue:
		return value.Raw
	case ast.BooleanValue:
		return value.Raw == "true"
	case ast.NullValue:
		return nil
	case ast.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = s.valueFromAST(c.Value)
		}
		return out
	case ast.ObjectValue:
		m := make(map[string]any)
		for _, f := range value.Children {
			m[f.Name] = s.valueFromAST(f.Value)
		}
		return m
	default:
		return nil
	}
}

// coerceValue coerces a Go value to a GraphQL input type. Built-in scalars
// are converted; enum and custom scalar inputs must be strings and are
// validated by the runtime's resolvers, which own the value vocabulary.
func (s *executionState) coerceValue(value any, typ *ast.Type) (any, error) {
	if typ.NonNull {
		if value == nil {
			return nil, fmt.Errorf("cannot be null")
		}
		return s.coerceValue(value, nullableOf(typ))
	}

	if value == nil {
		return nil, nil
	}

	if typ.Elem != nil {
		items, ok := asSlice(value)
		if !ok {
			// A single value is treated as a list of one.
			items = []any{value}
		}
		out := make([]any, len(items))
		for i, item := range items {
			cv, err := s.coerceValue(item, typ.Elem)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	}

	switch typ.NamedType {
	case "Int":
		return coerceInt(value)
	case "Float":
		return coerceFloat(value)
	case "String", "ID":
		return coerceString(value)
	case "Boolean":
		return coerceBoolean(value)
	}

	def := s.schema.Types[typ.NamedType]
	if def != nil && def.Kind == ast.Enum {
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("cannot coerce %T to enum %s", value, typ.NamedType)
		}
		return str, nil
	}

	return value, nil
}

func coerceInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return nil, fmt.Errorf("cannot coerce %v to Int", v)
		}
		return int(v), nil
	case json.Number:
		iv, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("cannot coerce %q to Int", v)
		}
		return int(iv), nil
	}
	return nil, fmt.Errorf("cannot coerce %T to Int", value)
}

func coerceFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		fv, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot coerce %q to Float", v)
		}
		return fv, nil
	}
	return nil, fmt.Errorf("cannot coerce %T to Float", value)
}

func coerceString(value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %T to String", value)
}

func coerceBoolean(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %T to Boolean", value)
}
