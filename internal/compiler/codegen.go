package compiler

import (
	"fmt"
	"strings"

	"github.com/vk/bluewire/internal/blueprint"
	"github.com/vk/bluewire/internal/diag"
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/nodeid"
	"github.com/vk/bluewire/internal/registry"
)

// entryEventType is the event node type generating func main. It sorts
// first in the emitted file; other events follow in insertion order.
const entryEventType = "main"

// generator turns a validated, resolved graph into Go source. One generated
// function per event node; chains walk the routing table; pure results are
// assigned up front in dependency order.
type generator struct {
	graph  *blueprint.Graph
	reg    *registry.Registry
	flow   *dataflow
	routes routingTable

	needsStd bool
	emitting map[string]bool
	diags    diag.List
}

func generate(g *blueprint.Graph, reg *registry.Registry, flow *dataflow, routes routingTable) (string, diag.List) {
	gen := &generator{
		graph:    g,
		reg:      reg,
		flow:     flow,
		routes:   routes,
		emitting: make(map[string]bool),
	}

	var funcs [][]string
	for _, ev := range gen.orderedEvents() {
		funcs = append(funcs, gen.eventFunc(ev))
	}
	if len(gen.diags) > 0 {
		return "", gen.diags
	}
	return gen.assemble(funcs), nil
}

func (gen *generator) orderedEvents() []*blueprint.Node {
	var mains, rest []*blueprint.Node
	for _, n := range gen.graph.Nodes() {
		def, ok := gen.reg.Get(n.Type)
		if !ok || def.Kind != model.KindEvent {
			continue
		}
		if n.Type == entryEventType {
			mains = append(mains, n)
		} else {
			rest = append(rest, n)
		}
	}
	return append(mains, rest...)
}

// eventFunc renders one event node as a complete function. Declared event
// outputs become parameters, so chain nodes read them by name.
func (gen *generator) eventFunc(ev *blueprint.Node) []string {
	def, _ := gen.reg.Get(ev.Type)

	params := make([]string, len(def.Outputs))
	for i, o := range def.Outputs {
		params[i] = nodeid.Sanitize(o.Name) + " " + goType(o.Type)
	}

	var body []string
	if pures := gen.reachablePure(gen.chainNodes(ev, def)); len(pures) > 0 {
		body = append(body, "// Pure node evaluations")
		for _, id := range pures {
			body = append(body, gen.pureLine(id))
		}
	}

	tmpl, err := def.Template()
	if err != nil {
		gen.diags = append(gen.diags, diag.Nodef(diag.InvalidControlFlowStructure, ev.ID,
			"event %q body template: %v", ev.Type, err))
		return nil
	}
	blocks := make(map[string][]string, len(def.ExecOutputs))
	for _, ep := range def.ExecOutputs {
		blocks[ep.Name] = gen.chainLines(ev.ID, ep.Name)
	}
	chain := tmpl.Render(nil, blocks)
	if len(body) > 0 && len(chain) > 0 {
		body = append(body, "")
	}
	body = append(body, chain...)

	lines := []string{fmt.Sprintf("func %s(%s) {", nodeid.Sanitize(ev.Type), strings.Join(params, ", "))}
	lines = append(lines, indentLines(body)...)
	return append(lines, "}")
}

// chainNodes walks every node an event's execution can reach. The visited
// set makes the walk terminate even on cyclic wiring; the cycle itself is
// reported during emission.
func (gen *generator) chainNodes(ev *blueprint.Node, def *model.Definition) []string {
	visited := make(map[string]bool)
	var queue []string
	for _, ep := range def.ExecOutputs {
		queue = append(queue, gen.routes.targets(ev.ID, ep.Name)...)
	}

	var order []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, id)

		n, ok := gen.graph.Node(id)
		if !ok {
			continue
		}
		ndef, ok := gen.reg.Get(n.Type)
		if !ok {
			continue
		}
		switch ndef.Kind {
		case model.KindFunction:
			queue = append(queue, gen.routes.targets(id, model.ImplicitExecPin)...)
		case model.KindControlFlow:
			for _, ep := range ndef.ExecOutputs {
				queue = append(queue, gen.routes.targets(id, ep.Name)...)
			}
		}
	}
	return order
}

// reachablePure selects the pure nodes the chain actually reads, directly or
// through other pure nodes, and returns them in evaluation order.
func (gen *generator) reachablePure(chain []string) []string {
	needed := make(map[string]bool)
	var visit func(id string)
	visit = func(id string) {
		if needed[id] {
			return
		}
		n, ok := gen.graph.Node(id)
		if !ok {
			return
		}
		def, ok := gen.reg.Get(n.Type)
		if !ok || def.Kind != model.KindPure {
			return
		}
		needed[id] = true
		for _, p := range def.Params {
			if src, ok := gen.flow.source(id, p.Name); ok && src.fromNode != "" {
				visit(src.fromNode)
			}
		}
	}

	for _, id := range chain {
		n, ok := gen.graph.Node(id)
		if !ok {
			continue
		}
		def, ok := gen.reg.Get(n.Type)
		if !ok {
			continue
		}
		for _, p := range def.Params {
			if src, ok := gen.flow.source(id, p.Name); ok && src.fromNode != "" {
				visit(src.fromNode)
			}
		}
	}

	var out []string
	for _, id := range gen.flow.pureOrder {
		if needed[id] {
			out = append(out, id)
		}
	}
	return out
}

func (gen *generator) pureLine(id string) string {
	n, _ := gen.graph.Node(id)
	def, _ := gen.reg.Get(n.Type)
	gen.needsStd = true
	return fmt.Sprintf("%s := %s(%s)",
		nodeid.ResultVar(id), def.Target, strings.Join(gen.args(n, def), ", "))
}

// chainLines renders everything triggered by one exec output pin. Fan-out
// targets run sequentially in connection declaration order.
func (gen *generator) chainLines(nodeID, pin string) []string {
	var lines []string
	for _, tgt := range gen.routes.targets(nodeID, pin) {
		lines = append(lines, gen.nodeLines(tgt)...)
	}
	return lines
}

func (gen *generator) nodeLines(id string) []string {
	if gen.emitting[id] {
		gen.diags = append(gen.diags, diag.Nodef(diag.InvalidControlFlowStructure, id,
			"execution wiring loops back through node %q; use a loop node instead", id))
		return nil
	}
	n, ok := gen.graph.Node(id)
	if !ok {
		return nil
	}
	def, ok := gen.reg.Get(n.Type)
	if !ok {
		return nil
	}

	gen.emitting[id] = true
	defer delete(gen.emitting, id)

	switch def.Kind {
	case model.KindFunction:
		gen.needsStd = true
		call := fmt.Sprintf("%s(%s)", def.Target, strings.Join(gen.args(n, def), ", "))
		line := call
		if _, hasResult := def.Return(); hasResult && gen.flow.consumed[id] {
			line = nodeid.ResultVar(id) + " := " + call
		}
		lines := []string{line}
		return append(lines, gen.chainLines(id, model.ImplicitExecPin)...)

	case model.KindControlFlow:
		tmpl, err := def.Template()
		if err != nil {
			gen.diags = append(gen.diags, diag.Nodef(diag.InvalidControlFlowStructure, id,
				"node %q (%s) body template: %v", id, n.Type, err))
			return nil
		}
		params := make(map[string]string, len(def.Params))
		for _, p := range def.Params {
			src, _ := gen.flow.source(id, p.Name)
			params[p.Name] = wrapExpr(src.expr)
		}
		blocks := make(map[string][]string, len(def.ExecOutputs))
		for _, ep := range def.ExecOutputs {
			blocks[ep.Name] = gen.chainLines(id, ep.Name)
		}
		return tmpl.Render(params, blocks)

	case model.KindEvent:
		gen.diags = append(gen.diags, diag.Nodef(diag.InvalidControlFlowStructure, id,
			"event node %q cannot run inside another chain", id))
		return nil

	default:
		// Pure nodes carry no exec pins; the validator reports any wiring
		// that would route execution here.
		return nil
	}
}

func (gen *generator) args(n *blueprint.Node, def *model.Definition) []string {
	out := make([]string, len(def.Params))
	for i, p := range def.Params {
		src, _ := gen.flow.source(n.ID, p.Name)
		out[i] = src.expr
	}
	return out
}

func (gen *generator) assemble(funcs [][]string) string {
	name := gen.graph.Metadata.Name
	if name == "" {
		name = "untitled"
	}

	var b strings.Builder
	b.WriteString("// Code generated by bluewire. DO NOT EDIT.\n//\n")
	fmt.Fprintf(&b, "// Graph: %s (%d nodes, %d connections)\n\n",
		name, gen.graph.Len(), len(gen.graph.Connections))
	b.WriteString("package main\n\n")
	if gen.needsStd {
		b.WriteString("import std \"github.com/vk/bluewire/std\"\n\n")
	}
	for i, fn := range funcs {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, line := range fn {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// wrapExpr parenthesizes composite expressions before template substitution
// so the surrounding template syntax cannot rebind their precedence.
func wrapExpr(expr string) string {
	if isSimpleExpr(expr) {
		return expr
	}
	return "(" + expr + ")"
}

// isSimpleExpr reports whether the expression is a single token: an
// identifier, selector, bare number, or one string literal.
func isSimpleExpr(expr string) bool {
	if expr == "" {
		return false
	}
	if expr[0] == '"' && expr[len(expr)-1] == '"' && len(expr) >= 2 {
		return true
	}
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '_' || c == '.':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func indentLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if l == "" {
			continue
		}
		out[i] = "    " + l
	}
	return out
}
