package hcltmpl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/Ampersand-S/dfpy/pyre/item"
)

// goValue lowers a literal cty value to the Go shape the builder's argument
// converter accepts: strings stay strings (including "^" back-references),
// numbers become float64.
func goValue(v cty.Value) (any, error) {
	switch {
	case v.IsNull():
		return nil, fmt.Errorf("null value is not a valid argument")
	case v.Type() == cty.String:
		return v.AsString(), nil
	case v.Type() == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported argument type %s", v.Type().FriendlyName())
	}
}

// evalArgs evaluates an optional `args` attribute into a builder argument
// list. Absent attribute means no arguments.
func evalArgs(attrs hcl.Attributes) ([]any, error) {
	attr, ok := attrs["args"]
	if !ok {
		return nil, nil
	}
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if !v.Type().IsTupleType() && !v.Type().IsListType() {
		return nil, fmt.Errorf("%s: args must be a list", attr.Range)
	}
	var out []any
	for i, elem := range v.AsValueSlice() {
		converted, err := goValue(elem)
		if err != nil {
			return nil, fmt.Errorf("%s: args[%d]: %w", attr.Range, i, err)
		}
		out = append(out, converted)
	}
	return out, nil
}

// evalString evaluates an optional string attribute, returning fallback
// when absent.
func evalString(attrs hcl.Attributes, name, fallback string) (string, error) {
	attr, ok := attrs[name]
	if !ok {
		return fallback, nil
	}
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if v.IsNull() || v.Type() != cty.String {
		return "", fmt.Errorf("%s: %s must be a string", attr.Range, name)
	}
	return v.AsString(), nil
}

// evalScope evaluates an optional `scope` attribute into a variable scope.
func evalScope(attrs hcl.Attributes) (item.Scope, error) {
	raw, err := evalString(attrs, "scope", string(item.ScopeUnsaved))
	if err != nil {
		return "", err
	}
	switch scope := item.Scope(raw); scope {
	case item.ScopeUnsaved, item.ScopeSaved, item.ScopeLocal, item.ScopeLine:
		return scope, nil
	default:
		return "", fmt.Errorf("invalid variable scope %q", raw)
	}
}
