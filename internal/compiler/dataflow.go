package compiler

import (
	"strings"

	"github.com/vk/bluewire/internal/blueprint"
	"github.com/vk/bluewire/internal/dag"
	"github.com/vk/bluewire/internal/diag"
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/nodeid"
	"github.com/vk/bluewire/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// valueSource is the resolved origin of one data input: the Go expression
// the generator substitutes for the pin, plus the producer endpoint when the
// value arrives over a connection.
type valueSource struct {
	expr     string
	fromNode string
	fromPin  string
}

// dataflow is the resolver's output: every data input mapped to a source,
// the evaluation order for pure nodes, and the set of producers whose result
// some other node actually reads.
type dataflow struct {
	sources   map[routeKey]valueSource
	pureOrder []string
	consumed  map[string]bool
}

func (f *dataflow) source(node, pin string) (valueSource, bool) {
	s, ok := f.sources[routeKey{node: node, pin: pin}]
	return s, ok
}

// resolveDataFlow binds every declared data input of every node to a source
// expression. Resolution precedence per pin: incoming connection, then the
// node's property constant, then the definition default, then the zero value
// for optional pins. A required pin with none of these is reported as
// missing.
//
// It also orders the pure nodes: producers before consumers, ties broken by
// node insertion order, so regenerating the same graph always evaluates them
// identically.
func resolveDataFlow(g *blueprint.Graph, reg *registry.Registry) (*dataflow, diag.List) {
	var diags diag.List
	flow := &dataflow{
		sources:  make(map[routeKey]valueSource),
		consumed: make(map[string]bool),
	}

	for _, n := range g.Nodes() {
		def, ok := reg.Get(n.Type)
		if !ok {
			continue
		}
		for _, p := range def.Params {
			src, d := resolveInput(g, reg, n, p)
			if d != nil {
				diags = append(diags, d)
				continue
			}
			if src.fromNode != "" {
				flow.consumed[src.fromNode] = true
			}
			flow.sources[routeKey{node: n.ID, pin: p.Name}] = src
		}
	}

	order, cycleDiags := pureEvaluationOrder(g, reg)
	diags = append(diags, cycleDiags...)
	flow.pureOrder = order

	if len(diags) > 0 {
		return nil, diags
	}
	return flow, nil
}

func resolveInput(g *blueprint.Graph, reg *registry.Registry, n *blueprint.Node, p model.Param) (valueSource, *diag.Diagnostic) {
	if conn := g.IncomingData(n.ID, p.Name); conn != nil {
		return valueSource{
			expr:     producerExpr(g, reg, conn),
			fromNode: conn.FromNode,
			fromPin:  conn.FromPin,
		}, nil
	}
	if v, ok := n.Property(p.Name); ok {
		return valueSource{expr: goValue(constantForPin(v, p.Type))}, nil
	}
	if p.Default != nil {
		return valueSource{expr: goValue(constantForPin(*p.Default, p.Type))}, nil
	}
	if p.Optional {
		return valueSource{expr: goZero(p.Type)}, nil
	}
	return valueSource{}, diag.Pinf(diag.MissingConnection, n.ID, p.Name,
		"input %q of node %q (%s) has no connection, property value, or default",
		p.Name, n.ID, n.Type)
}

// constantForPin reshapes a constant to the declared pin type when the two
// differ, so a JSON tuple feeding a list(number) input renders as []float64
// rather than []any. Values the validator already rejected pass through
// unchanged.
func constantForPin(v cty.Value, want cty.Type) cty.Value {
	if want == cty.NilType || want == cty.DynamicPseudoType || v.Type().Equals(want) {
		return v
	}
	if converted, err := convert.Convert(v, want); err == nil {
		return converted
	}
	return v
}

// producerExpr renders the expression that reads a connection's source.
// Event outputs are in scope as generated function parameters and are read
// by name; everything else reads the producer's result variable.
func producerExpr(g *blueprint.Graph, reg *registry.Registry, conn *blueprint.Connection) string {
	if producer, ok := g.Node(conn.FromNode); ok {
		if def, ok := reg.Get(producer.Type); ok && def.Kind == model.KindEvent {
			return nodeid.Sanitize(conn.FromPin)
		}
	}
	return nodeid.ResultVar(conn.FromNode)
}

// pureEvaluationOrder topologically sorts the pure nodes along their data
// connections. Nodes enter the dependency graph in insertion order, which is
// the tie-break the sort preserves.
func pureEvaluationOrder(g *blueprint.Graph, reg *registry.Registry) ([]string, diag.List) {
	isPure := func(id string) bool {
		n, ok := g.Node(id)
		if !ok {
			return false
		}
		def, ok := reg.Get(n.Type)
		return ok && def.Kind == model.KindPure
	}

	d := dag.New()
	for _, n := range g.Nodes() {
		if isPure(n.ID) {
			d.AddNode(n.ID)
		}
	}

	var diags diag.List
	for _, c := range g.Connections {
		if c.Kind != blueprint.PinData || !isPure(c.FromNode) || !isPure(c.ToNode) {
			continue
		}
		if c.FromNode == c.ToNode {
			diags = append(diags, diag.Cyclef(diag.CyclicDependency, []string{c.FromNode},
				"pure node %q feeds its own input %q", c.ToNode, c.ToPin))
			continue
		}
		// AddEdge only fails on unknown nodes or self-edges, both excluded
		// above.
		_ = d.AddEdge(c.FromNode, c.ToNode)
	}

	if cycle := d.FindCycle(); len(cycle) > 0 {
		diags = append(diags, diag.Cyclef(diag.CyclicDependency, cycle,
			"cyclic dependency among pure nodes: %s", strings.Join(cycle, " -> ")))
	}
	if len(diags) > 0 {
		return nil, diags
	}

	order, err := d.TopoSort()
	if err != nil {
		// Unreachable: FindCycle already covered the only failure mode.
		return nil, diag.List{diag.New(diag.CyclicDependency, "%s", err.Error())}
	}
	return order, nil
}
