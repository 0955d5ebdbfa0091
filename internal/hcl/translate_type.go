// This file contains the logic for translating type expressions (e.g.
// `string`, `list(number)`) to and from their cty.Type equivalents.

package hcl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// TypeFromExpr converts an HCL type expression into its cty.Type
// equivalent. A nil expression defaults to `any`.
func TypeFromExpr(expr hcl.Expression) (cty.Type, error) {
	if expr == nil {
		return cty.DynamicPseudoType, nil
	}

	// Using a type switch is the correct way to handle the various concrete
	// expression types that implement the hcl.Expression interface.
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		if v.Name == "object" {
			if len(v.Args) != 1 {
				return cty.DynamicPseudoType, fmt.Errorf("the object() type constructor requires exactly one argument (the object definition), got %d", len(v.Args))
			}

			objExpr, ok := v.Args[0].(*hclsyntax.ObjectConsExpr)
			if !ok {
				return cty.DynamicPseudoType, fmt.Errorf("the argument to object() must be an object literal like { key = type, ... }, got %T", v.Args[0])
			}

			attrTypes := make(map[string]cty.Type)
			for _, item := range objExpr.Items {
				key, err := objectAttrKey(item.KeyExpr)
				if err != nil {
					return cty.DynamicPseudoType, err
				}

				valueType, err := TypeFromExpr(item.ValueExpr)
				if err != nil {
					return cty.DynamicPseudoType, fmt.Errorf("in object attribute '%s': %w", key, err)
				}
				attrTypes[key] = valueType
			}
			return cty.Object(attrTypes), nil
		}

		if len(v.Args) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("type constructors (list, map, set) require exactly one argument, got %d", len(v.Args))
		}

		elementType, err := TypeFromExpr(v.Args[0])
		if err != nil {
			return cty.DynamicPseudoType, err
		}
		if elementType == cty.DynamicPseudoType {
			return cty.DynamicPseudoType, fmt.Errorf("collection types cannot contain type 'any'")
		}

		switch v.Name {
		case "list":
			return cty.List(elementType), nil
		case "map":
			return cty.Map(elementType), nil
		case "set":
			return cty.Set(elementType), nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		// This handles primitive type identifiers like `string` or `number`.
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		switch rootName := v.Traversal.RootName(); rootName {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.DynamicPseudoType, nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", rootName)
		}

	default:
		return cty.DynamicPseudoType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

// objectAttrKey unwraps the key of one object() attribute. Keys must be
// simple identifiers or quoted strings, not complex expressions.
func objectAttrKey(expr hclsyntax.Expression) (string, error) {
	if keyExpr, ok := expr.(*hclsyntax.ObjectConsKeyExpr); ok {
		switch kexpr := keyExpr.Wrapped.(type) {
		case *hclsyntax.ScopeTraversalExpr:
			if len(kexpr.Traversal) == 1 {
				return kexpr.Traversal.RootName(), nil
			}
		case *hclsyntax.TemplateExpr:
			if len(kexpr.Parts) == 1 {
				if lit, isLit := kexpr.Parts[0].(*hclsyntax.LiteralValueExpr); isLit && lit.Val.Type().Equals(cty.String) {
					return lit.Val.AsString(), nil
				}
			}
		}
	}
	return "", fmt.Errorf("invalid key in object type definition: keys must be simple identifiers or quoted strings, not complex expressions")
}

// ParseType translates a standalone type expression string, as used in
// graph files, into a cty.Type.
func ParseType(src string) (cty.Type, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "type", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.DynamicPseudoType, fmt.Errorf("parsing type expression %q: %w", src, diags)
	}
	return TypeFromExpr(expr)
}

// TypeString renders a cty.Type back into the expression dialect ParseType
// accepts, so graph files round-trip.
func TypeString(t cty.Type) string {
	switch {
	case t == cty.NilType || t == cty.DynamicPseudoType:
		return "any"
	case t == cty.String:
		return "string"
	case t == cty.Number:
		return "number"
	case t == cty.Bool:
		return "bool"
	case t.IsListType():
		return "list(" + TypeString(t.ElementType()) + ")"
	case t.IsMapType():
		return "map(" + TypeString(t.ElementType()) + ")"
	case t.IsSetType():
		return "set(" + TypeString(t.ElementType()) + ")"
	case t.IsObjectType():
		attrs := t.AttributeTypes()
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = name + " = " + TypeString(attrs[name])
		}
		return "object({ " + strings.Join(parts, ", ") + " })"
	default:
		// No other types appear in pin declarations; fall back to the
		// friendly name so the failure is at least readable.
		return t.FriendlyName()
	}
}
