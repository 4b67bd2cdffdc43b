package hclcat

import (
	"context"
	"fmt"

	"github.com/kilnhq/kiln/internal/catalog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateClass converts a decoded class block into the agnostic model.
func translateClass(ctx context.Context, block *classBlock) (*catalog.ClassDefinition, error) {
	def := &catalog.ClassDefinition{
		Name:        block.Name,
		Description: block.Description,
		Builder:     block.Builder,
		Inputs:      make(map[string]*catalog.InputDefinition, len(block.Inputs)),
	}

	for _, in := range block.Inputs {
		inputDef, err := translateInput(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", in.Name, err)
		}
		def.Inputs[in.Name] = inputDef
	}

	return def, nil
}

func translateInput(ctx context.Context, in *inputBlock) (*catalog.InputDefinition, error) {
	ty, err := typeExprToCtyType(ctx, in.Type)
	if err != nil {
		return nil, err
	}

	var defaultVal *cty.Value
	optional := false

	// A null default is treated as no default at all.
	if in.Default != nil && !in.Default.IsNull() {
		val := *in.Default
		if !ty.Equals(cty.DynamicPseudoType) {
			converted, err := convert.Convert(val, ty)
			if err != nil {
				return nil, fmt.Errorf("default does not match declared type %s: %w",
					ty.FriendlyName(), err)
			}
			val = converted
		}
		defaultVal = &val
		optional = true
	}

	return &catalog.InputDefinition{
		Name:        in.Name,
		Description: in.Description,
		Type:        ty,
		Default:     defaultVal,
		Optional:    optional,
	}, nil
}
