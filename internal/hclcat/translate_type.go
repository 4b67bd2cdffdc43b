package hclcat

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/kilnhq/kiln/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToCtyType converts a manifest type expression (e.g. `string`,
// `list(number)`, `map(string)`) into its cty.Type equivalent. A nil
// expression means the input is untyped.
func typeExprToCtyType(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	if expr == nil {
		ctxlog.FromContext(ctx).Debug("Input has no type expression, treating as any.")
		return cty.DynamicPseudoType, nil
	}

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("invalid type keyword: not a single identifier")
		}
		return primitiveType(v.Traversal.RootName())

	case *hclsyntax.FunctionCallExpr:
		return collectionType(ctx, v)

	default:
		return cty.DynamicPseudoType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

func primitiveType(keyword string) (cty.Type, error) {
	switch keyword {
	case "string":
		return cty.String, nil
	case "number":
		return cty.Number, nil
	case "bool":
		return cty.Bool, nil
	case "any":
		return cty.DynamicPseudoType, nil
	default:
		return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", keyword)
	}
}

func collectionType(ctx context.Context, call *hclsyntax.FunctionCallExpr) (cty.Type, error) {
	if len(call.Args) != 1 {
		return cty.DynamicPseudoType, fmt.Errorf(
			"type constructor %s requires exactly one argument, got %d", call.Name, len(call.Args))
	}

	element, err := typeExprToCtyType(ctx, call.Args[0])
	if err != nil {
		return cty.DynamicPseudoType, err
	}
	if element == cty.DynamicPseudoType {
		return cty.DynamicPseudoType, fmt.Errorf("collection types cannot contain type 'any'")
	}

	switch call.Name {
	case "list":
		return cty.List(element), nil
	case "map":
		return cty.Map(element), nil
	case "set":
		return cty.Set(element), nil
	default:
		return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor function %q", call.Name)
	}
}
