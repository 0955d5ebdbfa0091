package compiler

import (
	"strings"

	"github.com/vk/bluewire/internal/blueprint"
	"github.com/vk/bluewire/internal/dag"
	"github.com/vk/bluewire/internal/diag"
	"github.com/vk/bluewire/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// maxExpansionDepth bounds the expansion loop. The library-wide cycle check
// makes runaway nesting impossible in practice; the bound is a backstop so a
// bug can never spin the compiler forever.
const maxExpansionDepth = 100

// expandSubGraphs replaces every sub-graph instance with a renamed copy of
// its definition's internal graph, repeating until no instance remains, so
// nested macros unfold from the outside in. The input graph is not modified.
//
// Expanding a graph that contains no instances returns an identical copy,
// which is what makes the pass idempotent.
func expandSubGraphs(g *blueprint.Graph, lib *blueprint.Library) (*blueprint.Graph, diag.List) {
	if lib != nil {
		if diags := checkMacroCycles(lib); len(diags) > 0 {
			return nil, diags
		}
	}

	out := g.Clone()
	for depth := 0; ; depth++ {
		if depth >= maxExpansionDepth {
			return nil, diag.List{diag.New(diag.CircularSubgraphReference,
				"sub-graph expansion did not terminate after %d rounds", maxExpansionDepth)}
		}
		inst := firstInstance(out)
		if inst == nil {
			return out, nil
		}
		if diags := expandInstance(out, inst, lib); len(diags) > 0 {
			return nil, diags
		}
	}
}

func firstInstance(g *blueprint.Graph) *blueprint.Node {
	for _, n := range g.Nodes() {
		if n.IsSubGraph() {
			return n
		}
	}
	return nil
}

// checkMacroCycles walks the reference edges between sub-graph definitions
// before any expansion starts, so a cyclic library is rejected even when the
// compiled graph only touches part of the cycle.
func checkMacroCycles(lib *blueprint.Library) diag.List {
	var diags diag.List
	d := dag.New()
	for _, s := range lib.SubGraphs {
		d.AddNode(s.ID)
	}
	for _, s := range lib.SubGraphs {
		for _, ref := range s.Instantiated() {
			if ref == s.ID {
				diags = append(diags, diag.Cyclef(diag.CircularSubgraphReference, []string{s.ID},
					"sub-graph %q instantiates itself", s.ID))
				continue
			}
			// References to IDs outside the library surface as NodeNotFound
			// if expansion ever reaches them.
			if !d.HasNode(ref) {
				continue
			}
			_ = d.AddEdge(s.ID, ref)
		}
	}
	if len(diags) > 0 {
		return diags
	}
	if cycle := d.FindCycle(); len(cycle) > 0 {
		diags = append(diags, diag.Cyclef(diag.CircularSubgraphReference, cycle,
			"sub-graph definitions form a reference cycle: %s", strings.Join(cycle, " -> ")))
	}
	return diags
}

// expandInstance splices one instance out of the graph. Cloned internal
// nodes take the ID <instance>__<internal> and inherit the instance's canvas
// offset. Connections crossing the instance boundary are joined through the
// definition's synthesized graph_input/graph_output nodes; the joined block
// replaces the instance's wiring at the position of its first outer
// connection, keeping execution fan-out order stable.
func expandInstance(g *blueprint.Graph, inst *blueprint.Node, lib *blueprint.Library) diag.List {
	sgID, _ := inst.SubGraphID()
	sg, ok := lib.Get(sgID)
	if !ok {
		return diag.List{diag.Nodef(diag.NodeNotFound, inst.ID,
			"node %q references unknown sub-graph %q", inst.ID, sgID)}
	}
	entry, okEntry := sg.EntryNode()
	exit, okExit := sg.ExitNode()
	if !okEntry || !okExit {
		return diag.List{diag.Nodef(diag.NodeNotFound, inst.ID,
			"sub-graph %q is missing its synthesized interface nodes", sgID)}
	}

	rename := func(id string) string { return nodeid.Expand(inst.ID, id) }

	for _, n := range sg.Graph.Nodes() {
		if n.ID == entry.ID || n.ID == exit.ID {
			continue
		}
		clone := n.Clone()
		clone.ID = rename(n.ID)
		clone.Position.X += inst.Position.X
		clone.Position.Y += inst.Position.Y
		if err := g.AddNode(clone); err != nil {
			return diag.List{diag.Nodef(diag.InvalidControlFlowStructure, inst.ID,
				"expanding sub-graph instance %q: %v", inst.ID, err)}
		}
	}

	// Classify the definition's internal connections by how they touch the
	// interface nodes.
	var passThrough []*blueprint.Connection
	var innerOnly []*blueprint.Connection
	entryTargets := make(map[string][]*blueprint.Connection)
	exitSources := make(map[string][]*blueprint.Connection)
	for _, ic := range sg.Graph.Connections {
		fromEntry := ic.FromNode == entry.ID
		toExit := ic.ToNode == exit.ID
		switch {
		case fromEntry && toExit:
			passThrough = append(passThrough, ic)
		case fromEntry:
			entryTargets[ic.FromPin] = append(entryTargets[ic.FromPin], ic)
		case toExit:
			exitSources[ic.ToPin] = append(exitSources[ic.ToPin], ic)
		case ic.ToNode == entry.ID || ic.FromNode == exit.ID:
			// Backwards wiring into the interface nodes has no outer meaning.
		default:
			innerOnly = append(innerOnly, ic)
		}
	}

	// Partition the outer connection list: everything touching the instance
	// is lifted out and replaced by the joined block.
	var kept []*blueprint.Connection
	var intoInst, fromInst, selfConns []*blueprint.Connection
	firstTouch := -1
	for _, oc := range g.Connections {
		if oc.ToNode != inst.ID && oc.FromNode != inst.ID {
			kept = append(kept, oc)
			continue
		}
		if firstTouch < 0 {
			firstTouch = len(kept)
		}
		switch {
		case oc.ToNode == inst.ID && oc.FromNode == inst.ID:
			selfConns = append(selfConns, oc)
		case oc.ToNode == inst.ID:
			intoInst = append(intoInst, oc)
		default:
			fromInst = append(fromInst, oc)
		}
	}
	if firstTouch < 0 {
		firstTouch = len(kept)
	}

	var block []*blueprint.Connection
	join := func(id, fromNode, fromPin, toNode, toPin string, kind blueprint.PinKind) {
		block = append(block, &blueprint.Connection{
			ID:       id,
			FromNode: fromNode,
			FromPin:  fromPin,
			ToNode:   toNode,
			ToPin:    toPin,
			Kind:     kind,
		})
	}

	// Outer producers fan out to the inner consumers of the matching entry
	// output.
	for _, oc := range intoInst {
		for _, ic := range entryTargets[oc.ToPin] {
			join(oc.ID+"+"+ic.ID, oc.FromNode, oc.FromPin, rename(ic.ToNode), ic.ToPin, oc.Kind)
		}
	}

	// Wires running straight from entry to exit connect outer producers to
	// outer consumers directly. An unconnected input falls back to the
	// instance's property constant.
	for _, pt := range passThrough {
		ins := intoInst
		var matched bool
		for _, oc := range ins {
			if oc.ToPin != pt.FromPin {
				continue
			}
			matched = true
			for _, out := range fromInst {
				if out.FromPin == pt.ToPin {
					join(oc.ID+"+"+out.ID, oc.FromNode, oc.FromPin, out.ToNode, out.ToPin, pt.Kind)
				}
			}
		}
		if !matched && pt.Kind == blueprint.PinData {
			if v, ok := inst.Property(pt.FromPin); ok {
				for _, out := range fromInst {
					if out.FromPin == pt.ToPin && out.Kind == blueprint.PinData {
						setProperty(g, out.ToNode, out.ToPin, v)
					}
				}
			}
		}
	}

	for _, ic := range innerOnly {
		cc := *ic
		cc.ID = rename(ic.ID)
		cc.FromNode = rename(ic.FromNode)
		cc.ToNode = rename(ic.ToNode)
		block = append(block, &cc)
	}

	// Inner producers of each exit input feed the outer consumers of the
	// matching instance output.
	for _, oc := range fromInst {
		for _, ic := range exitSources[oc.FromPin] {
			join(ic.ID+"+"+oc.ID, rename(ic.FromNode), ic.FromPin, oc.ToNode, oc.ToPin, oc.Kind)
		}
	}

	// An instance output wired back into one of its own inputs closes a loop
	// entirely inside the expansion.
	for _, oc := range selfConns {
		for _, src := range exitSources[oc.FromPin] {
			for _, tgt := range entryTargets[oc.ToPin] {
				join(src.ID+"+"+oc.ID+"+"+tgt.ID,
					rename(src.FromNode), src.FromPin, rename(tgt.ToNode), tgt.ToPin, oc.Kind)
			}
		}
	}

	// Interface inputs nothing outer ever connected still carry the
	// instance's property constants down to the inner consumers.
	for _, p := range entry.Outputs {
		if p.Kind != blueprint.PinData || hasPin(intoInst, p.Name) {
			continue
		}
		v, ok := inst.Property(p.Name)
		if !ok {
			continue
		}
		for _, ic := range entryTargets[p.Name] {
			setProperty(g, rename(ic.ToNode), ic.ToPin, v)
		}
	}

	rebuilt := make([]*blueprint.Connection, 0, len(kept)+len(block))
	rebuilt = append(rebuilt, kept[:firstTouch]...)
	rebuilt = append(rebuilt, block...)
	rebuilt = append(rebuilt, kept[firstTouch:]...)
	g.Connections = rebuilt

	g.RemoveNode(inst.ID)
	return nil
}

func hasPin(conns []*blueprint.Connection, toPin string) bool {
	for _, c := range conns {
		if c.ToPin == toPin {
			return true
		}
	}
	return false
}

func setProperty(g *blueprint.Graph, nodeID, pin string, v cty.Value) {
	n, ok := g.Node(nodeID)
	if !ok {
		return
	}
	if n.Properties == nil {
		n.Properties = make(map[string]cty.Value)
	}
	n.Properties[pin] = v
}
