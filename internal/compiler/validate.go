package compiler

import (
	"github.com/vk/bluewire/internal/blueprint"
	"github.com/vk/bluewire/internal/diag"
	"github.com/vk/bluewire/internal/hcl"
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// validateGraph checks an expanded graph against the registry and collects
// every finding instead of stopping at the first. Checks run in a fixed
// order: nodes in insertion order, connections in declaration order, then
// the graph-level entry point rules, so the diagnostic list is reproducible.
func validateGraph(g *blueprint.Graph, reg *registry.Registry) diag.List {
	var diags diag.List

	checkedTypes := make(map[string]bool)
	for _, n := range g.Nodes() {
		if n.IsSubGraph() {
			diags = append(diags, diag.Nodef(diag.NodeNotFound, n.ID,
				"node %q is an unexpanded sub-graph instance of %q", n.ID, n.Type))
			continue
		}
		def, ok := reg.Get(n.Type)
		if !ok {
			diags = append(diags, diag.Nodef(diag.NodeNotFound, n.ID,
				"node %q has unknown type %q", n.ID, n.Type))
			continue
		}
		if !checkedTypes[n.Type] {
			checkedTypes[n.Type] = true
			diags = append(diags, checkDefinitionMetadata(def)...)
		}
		diags = append(diags, checkInputs(g, n, def)...)
	}

	writers := make(map[routeKey]bool)
	for _, c := range g.Connections {
		diags = append(diags, checkConnection(g, reg, c, writers)...)
	}

	diags = append(diags, checkEntryPoints(g, reg)...)

	_, cycleDiags := pureEvaluationOrder(g, reg)
	diags = append(diags, cycleDiags...)

	return diags
}

// checkInputs verifies that every declared input of the node can resolve to
// a value, and that property constants fit the pin's type. Connection-fed
// pins are type-checked when their connection is.
func checkInputs(g *blueprint.Graph, n *blueprint.Node, def *model.Definition) diag.List {
	var diags diag.List
	for _, p := range def.Params {
		if g.IncomingData(n.ID, p.Name) != nil {
			continue
		}
		if v, ok := n.Property(p.Name); ok {
			if !typesCompatible(v.Type(), p.Type) {
				diags = append(diags, diag.Pinf(diag.TypeMismatch, n.ID, p.Name,
					"property value of type %s does not fit input %q of type %s",
					hcl.TypeString(v.Type()), p.Name, hcl.TypeString(p.Type)))
			}
			continue
		}
		if p.Default != nil || p.Optional {
			continue
		}
		diags = append(diags, diag.Pinf(diag.MissingConnection, n.ID, p.Name,
			"required input %q of node %q (%s) has no connection or value",
			p.Name, n.ID, n.Type))
	}
	return diags
}

func checkConnection(g *blueprint.Graph, reg *registry.Registry, c *blueprint.Connection, writers map[routeKey]bool) diag.List {
	var diags diag.List

	from, okFrom := g.Node(c.FromNode)
	if !okFrom {
		diags = append(diags, diag.Nodef(diag.NodeNotFound, c.FromNode,
			"connection %q starts at missing node %q", c.ID, c.FromNode))
	}
	to, okTo := g.Node(c.ToNode)
	if !okTo {
		diags = append(diags, diag.Nodef(diag.NodeNotFound, c.ToNode,
			"connection %q ends at missing node %q", c.ID, c.ToNode))
	}
	if !okFrom || !okTo {
		return diags
	}

	// Unknown node types were already reported in the node pass.
	fromDef, ok := reg.Get(from.Type)
	if !ok {
		return diags
	}
	toDef, ok := reg.Get(to.Type)
	if !ok {
		return diags
	}

	if c.Kind == blueprint.PinExec && toDef.Kind == model.KindEvent {
		return append(diags, diag.Nodef(diag.InvalidControlFlowStructure, c.ToNode,
			"event node %q starts a chain and cannot be triggered by node %q", c.ToNode, c.FromNode))
	}

	srcKind, srcType, srcOK := outputPin(fromDef, c.FromPin)
	if !srcOK {
		diags = append(diags, diag.Pinf(diag.TypeMismatch, c.FromNode, c.FromPin,
			"node %q (%s) has no output pin %q", c.FromNode, from.Type, c.FromPin))
	}
	dstKind, dstType, dstOK := inputPin(toDef, c.ToPin)
	if !dstOK {
		diags = append(diags, diag.Pinf(diag.TypeMismatch, c.ToNode, c.ToPin,
			"node %q (%s) has no input pin %q", c.ToNode, to.Type, c.ToPin))
	}
	if !srcOK || !dstOK {
		return diags
	}

	if srcKind != c.Kind || dstKind != c.Kind {
		return append(diags, diag.Pinf(diag.TypeMismatch, c.ToNode, c.ToPin,
			"cannot wire %s pin %q of %q into %s pin %q of %q",
			srcKind, c.FromPin, c.FromNode, dstKind, c.ToPin, c.ToNode))
	}

	if c.Kind == blueprint.PinData {
		key := routeKey{node: c.ToNode, pin: c.ToPin}
		if writers[key] {
			diags = append(diags, diag.Pinf(diag.TypeMismatch, c.ToNode, c.ToPin,
				"input %q of node %q has more than one incoming data connection", c.ToPin, c.ToNode))
		}
		writers[key] = true
		if !typesCompatible(srcType, dstType) {
			diags = append(diags, diag.Pinf(diag.TypeMismatch, c.ToNode, c.ToPin,
				"output %q (%s) of node %q does not fit input %q (%s) of node %q",
				c.FromPin, hcl.TypeString(srcType), c.FromNode,
				c.ToPin, hcl.TypeString(dstType), c.ToNode))
		}
	}
	return diags
}

// checkEntryPoints requires at least one event node and at most one instance
// of each event type, since every event type becomes one named function in
// the generated program.
func checkEntryPoints(g *blueprint.Graph, reg *registry.Registry) diag.List {
	var diags diag.List
	events := 0
	firstOfType := make(map[string]string)
	for _, n := range g.Nodes() {
		def, ok := reg.Get(n.Type)
		if !ok || def.Kind != model.KindEvent {
			continue
		}
		events++
		if first, dup := firstOfType[n.Type]; dup {
			diags = append(diags, diag.Nodef(diag.InvalidControlFlowStructure, n.ID,
				"event type %q is already instantiated by node %q; each event generates one function",
				n.Type, first))
			continue
		}
		firstOfType[n.Type] = n.ID
	}
	if events == 0 {
		diags = append(diags, diag.New(diag.InvalidControlFlowStructure,
			"graph has no event node, so the generated program would have no entry point"))
	}
	return diags
}

func outputPin(def *model.Definition, name string) (blueprint.PinKind, cty.Type, bool) {
	if o, ok := def.Output(name); ok {
		return blueprint.PinData, o.Type, true
	}
	if def.HasExecOutput(name) {
		return blueprint.PinExec, cty.NilType, true
	}
	return "", cty.NilType, false
}

func inputPin(def *model.Definition, name string) (blueprint.PinKind, cty.Type, bool) {
	if p, ok := def.Param(name); ok {
		return blueprint.PinData, p.Type, true
	}
	for _, e := range def.ExecInputs {
		if e.Name == name {
			return blueprint.PinExec, cty.NilType, true
		}
	}
	return "", cty.NilType, false
}

// typesCompatible is the data connection rule: exact type equality, with
// "any" on either side acting as a wildcard. Collections are compared
// element-wise through cty's safe conversion rules, so a JSON tuple constant
// like [1, 2] satisfies a list(number) input while [1, "x"] does not.
// NilType only appears on pins built from incomplete editor data and is
// treated as unconstrained.
func typesCompatible(a, b cty.Type) bool {
	if a == cty.NilType || b == cty.NilType {
		return true
	}
	if a == cty.DynamicPseudoType || b == cty.DynamicPseudoType {
		return true
	}
	if a.Equals(b) {
		return true
	}
	if isCollection(a) && isCollection(b) {
		return convert.GetConversion(a, b) != nil
	}
	return false
}

func isCollection(t cty.Type) bool {
	return t.IsListType() || t.IsSetType() || t.IsMapType() ||
		t.IsTupleType() || t.IsObjectType()
}
