package compiler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// goType renders a pin type as Go source. Numbers are float64 throughout,
// matching the std runtime package.
func goType(t cty.Type) string {
	switch {
	case t == cty.NilType || t.Equals(cty.DynamicPseudoType):
		return "any"
	case t.Equals(cty.Number):
		return "float64"
	case t.Equals(cty.String):
		return "string"
	case t.Equals(cty.Bool):
		return "bool"
	case t.IsListType() || t.IsSetType():
		return "[]" + goType(t.ElementType())
	case t.IsMapType():
		return "map[string]" + goType(t.ElementType())
	case t.IsTupleType():
		return "[]any"
	case t.IsObjectType():
		return "map[string]any"
	default:
		return "any"
	}
}

// goZero renders the zero value of a pin type, used for optional inputs
// that resolve to nothing.
func goZero(t cty.Type) string {
	switch {
	case t.Equals(cty.Number):
		return "0"
	case t.Equals(cty.String):
		return `""`
	case t.Equals(cty.Bool):
		return "false"
	default:
		return "nil"
	}
}

// goValue renders a constant as a Go expression. Rendering is deterministic:
// map and object keys are emitted in sorted order.
func goValue(v cty.Value) string {
	if v.IsNull() {
		return "nil"
	}
	t := v.Type()
	switch {
	case t.Equals(cty.String):
		return strconv.Quote(v.AsString())
	case t.Equals(cty.Bool):
		if v.True() {
			return "true"
		}
		return "false"
	case t.Equals(cty.Number):
		return goNumber(v)
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		return goSlice(v)
	case t.IsObjectType() || t.IsMapType():
		return goMap(v)
	default:
		return "nil"
	}
}

func goNumber(v cty.Value) string {
	bf := v.AsBigFloat()
	if bf.IsInt() {
		return bf.Text('f', 0)
	}
	f, _ := bf.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// goSlice renders list, set, and tuple values. A uniform primitive element
// type produces a typed slice; anything mixed falls back to []any with
// numbers forced to float64 so the element values match wired ones.
func goSlice(v cty.Value) string {
	var elems []cty.Value
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		elems = append(elems, ev)
	}

	// An empty list or set still knows its element type; an empty tuple
	// does not and falls through to []any.
	if t := v.Type(); len(elems) == 0 && (t.IsListType() || t.IsSetType()) {
		if et := t.ElementType(); et.Equals(cty.Number) || et.Equals(cty.String) || et.Equals(cty.Bool) {
			return "[]" + goType(et) + "{}"
		}
	}

	elemType, uniform := uniformPrimitive(elems)
	rendered := make([]string, len(elems))
	for i, ev := range elems {
		if !uniform && !ev.IsNull() && ev.Type().Equals(cty.Number) {
			rendered[i] = fmt.Sprintf("float64(%s)", goNumber(ev))
			continue
		}
		rendered[i] = goValue(ev)
	}

	if uniform {
		return fmt.Sprintf("%s{%s}", "[]"+goType(elemType), strings.Join(rendered, ", "))
	}
	return fmt.Sprintf("[]any{%s}", strings.Join(rendered, ", "))
}

func goMap(v cty.Value) string {
	vals := v.AsValueMap()
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var elems []cty.Value
	for _, k := range keys {
		elems = append(elems, vals[k])
	}
	elemType, uniform := uniformPrimitive(elems)

	parts := make([]string, len(keys))
	for i, k := range keys {
		ev := vals[k]
		rendered := goValue(ev)
		if !uniform && !ev.IsNull() && ev.Type().Equals(cty.Number) {
			rendered = fmt.Sprintf("float64(%s)", goNumber(ev))
		}
		parts[i] = fmt.Sprintf("%s: %s", strconv.Quote(k), rendered)
	}

	valType := "map[string]any"
	if uniform {
		valType = "map[string]" + goType(elemType)
	}
	return fmt.Sprintf("%s{%s}", valType, strings.Join(parts, ", "))
}

// uniformPrimitive reports whether every element shares one primitive type.
func uniformPrimitive(elems []cty.Value) (cty.Type, bool) {
	if len(elems) == 0 {
		return cty.NilType, false
	}
	t := elems[0].Type()
	if !t.Equals(cty.Number) && !t.Equals(cty.String) && !t.Equals(cty.Bool) {
		return cty.NilType, false
	}
	for _, ev := range elems[1:] {
		if ev.IsNull() || !ev.Type().Equals(t) {
			return cty.NilType, false
		}
	}
	if elems[0].IsNull() {
		return cty.NilType, false
	}
	return t, true
}
