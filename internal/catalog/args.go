package catalog

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ResolveArgs merges caller-supplied arguments with a class's declared
// inputs: defaults fill absent arguments, absent required inputs fail, and
// typed inputs are converted to their declared type. Arguments with no
// matching declaration pass through untouched so builders can accept
// free-form options.
func ResolveArgs(defs map[string]*InputDefinition, args map[string]any) (map[string]any, error) {
	resolved := make(map[string]any, len(args)+len(defs))
	for name, value := range args {
		resolved[name] = value
	}

	for name, def := range defs {
		value, supplied := resolved[name]
		if !supplied {
			if def.Default != nil {
				native, err := FromCtyValue(*def.Default)
				if err != nil {
					return nil, fmt.Errorf("default for input %q: %w", name, err)
				}
				resolved[name] = native
				continue
			}
			if def.Optional {
				continue
			}
			return nil, fmt.Errorf("missing required argument %q", name)
		}

		if def.Type == cty.NilType || def.Type.Equals(cty.DynamicPseudoType) {
			continue
		}
		converted, err := convertArg(value, def.Type)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		resolved[name] = converted
	}

	return resolved, nil
}

// convertArg round-trips a Go value through cty so that the declared type's
// conversion rules apply (for example "8s" string arguments satisfying a
// string input, or "42" converting to a number input).
func convertArg(value any, want cty.Type) (any, error) {
	if value == nil {
		return nil, fmt.Errorf("null value for %s input", want.FriendlyName())
	}
	implied, err := gocty.ImpliedType(value)
	if err != nil {
		return nil, fmt.Errorf("cannot infer type of %T: %w", value, err)
	}
	val, err := gocty.ToCtyValue(value, implied)
	if err != nil {
		return nil, err
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to %s: %w",
			implied.FriendlyName(), want.FriendlyName(), err)
	}
	return FromCtyValue(converted)
}

// FromCtyValue lowers a cty value into plain Go values: string, bool, int64
// or float64, []any and map[string]any.
func FromCtyValue(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()

	switch {
	case ty.Equals(cty.String):
		return val.AsString(), nil

	case ty.Equals(cty.Bool):
		return val.True(), nil

	case ty.Equals(cty.Number):
		bf := val.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := FromCtyValue(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := FromCtyValue(elem)
			if err != nil {
				return nil, err
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
