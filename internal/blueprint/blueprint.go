package blueprint

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// SubGraphPrefix marks a node type that instantiates a sub-graph definition
// rather than a registry definition, e.g. "subgraph:clamp".
const SubGraphPrefix = "subgraph:"

// Reserved node types for the synthesized interface nodes inside a
// sub-graph's internal graph. They exist only there; expansion splices them
// out before any other compiler stage can see them.
const (
	GraphInputType  = "graph_input"
	GraphOutputType = "graph_output"
)

// PinKind distinguishes control-flow pins from value-carrying pins.
type PinKind string

const (
	// PinExec is a pin carrying control-flow continuation, not a value.
	PinExec PinKind = "exec"
	// PinData is a pin carrying a typed value.
	PinData PinKind = "data"
)

// Pin is one input or output port on a node. Type is meaningful for data
// pins only; exec pins carry cty.NilType.
type Pin struct {
	ID   string
	Name string
	Kind PinKind
	Type cty.Type
}

// Connection joins an output pin on one node to an input pin on another.
// Exec connections carry control flow; data connections carry values.
type Connection struct {
	ID       string
	FromNode string
	FromPin  string
	ToNode   string
	ToPin    string
	Kind     PinKind
}

// Position is a node's editor coordinate. The compiler only uses it to
// offset cloned nodes during sub-graph expansion so round-tripped graphs
// stay readable.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Comment is free-form annotation attached to the canvas, carried through
// untouched.
type Comment struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Position Position `json:"position"`
}

// Metadata describes the graph itself.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// Node is one placed instance in a graph. Type names a registry definition,
// or a sub-graph via the "subgraph:" prefix. Properties hold the constant
// values assigned to input pins that have no incoming data connection.
type Node struct {
	ID         string
	Type       string
	Position   Position
	Properties map[string]cty.Value
	Inputs     []*Pin
	Outputs    []*Pin
}

// IsSubGraph reports whether the node instantiates a sub-graph definition.
func (n *Node) IsSubGraph() bool {
	return strings.HasPrefix(n.Type, SubGraphPrefix)
}

// SubGraphID returns the referenced sub-graph definition ID, when the node
// is a macro instance.
func (n *Node) SubGraphID() (string, bool) {
	if !n.IsSubGraph() {
		return "", false
	}
	return strings.TrimPrefix(n.Type, SubGraphPrefix), true
}

// Input finds an input pin by name.
func (n *Node) Input(name string) (*Pin, bool) {
	for _, p := range n.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Output finds an output pin by name.
func (n *Node) Output(name string) (*Pin, bool) {
	for _, p := range n.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Property returns the constant assigned to the named input pin.
func (n *Node) Property(pin string) (cty.Value, bool) {
	v, ok := n.Properties[pin]
	return v, ok
}

// Clone returns a deep copy of the node. Pin and property values are copied;
// cty values are immutable and shared.
func (n *Node) Clone() *Node {
	c := &Node{
		ID:       n.ID,
		Type:     n.Type,
		Position: n.Position,
	}
	if n.Properties != nil {
		c.Properties = make(map[string]cty.Value, len(n.Properties))
		for k, v := range n.Properties {
			c.Properties[k] = v
		}
	}
	c.Inputs = clonePins(n.Inputs)
	c.Outputs = clonePins(n.Outputs)
	return c
}

func clonePins(pins []*Pin) []*Pin {
	if pins == nil {
		return nil
	}
	out := make([]*Pin, len(pins))
	for i, p := range pins {
		cp := *p
		out[i] = &cp
	}
	return out
}

// Graph is a complete blueprint: nodes keyed by ID with insertion order
// retained, plus the ordered connection list.
type Graph struct {
	Metadata    Metadata
	Connections []*Connection
	Comments    []Comment

	nodes map[string]*Node
	order []string
}

// NewGraph creates an empty graph.
func NewGraph(meta Metadata) *Graph {
	return &Graph{
		Metadata: meta,
		nodes:    make(map[string]*Node),
	}
}

// AddNode inserts a node, preserving insertion order. Duplicate IDs are
// rejected; every later stage depends on node IDs being unique.
func (g *Graph) AddNode(n *Node) error {
	if n.ID == "" {
		return fmt.Errorf("node has empty id")
	}
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("duplicate node id %q", n.ID)
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return nil
}

// Node looks a node up by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// RemoveNode deletes a node. Connections touching it are left in place; the
// caller decides how to rewire them.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeIDs returns the node IDs in insertion order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// AddConnection appends a connection, preserving declaration order.
func (g *Graph) AddConnection(c *Connection) {
	g.Connections = append(g.Connections, c)
}

// FilterConnections keeps only connections the predicate accepts, in place.
func (g *Graph) FilterConnections(keep func(*Connection) bool) {
	kept := g.Connections[:0]
	for _, c := range g.Connections {
		if keep(c) {
			kept = append(kept, c)
		}
	}
	g.Connections = kept
}

// ConnectionsTo returns the connections targeting the given node, in
// declaration order.
func (g *Graph) ConnectionsTo(nodeID string) []*Connection {
	var out []*Connection
	for _, c := range g.Connections {
		if c.ToNode == nodeID {
			out = append(out, c)
		}
	}
	return out
}

// ConnectionsFrom returns the connections originating at the given node, in
// declaration order.
func (g *Graph) ConnectionsFrom(nodeID string) []*Connection {
	var out []*Connection
	for _, c := range g.Connections {
		if c.FromNode == nodeID {
			out = append(out, c)
		}
	}
	return out
}

// IncomingData returns the single data connection feeding the named input
// pin, or nil. The one-writer-per-input invariant is enforced by the
// validator; this helper returns the first match.
func (g *Graph) IncomingData(nodeID, pin string) *Connection {
	for _, c := range g.Connections {
		if c.Kind == PinData && c.ToNode == nodeID && c.ToPin == pin {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := NewGraph(g.Metadata)
	for _, id := range g.order {
		// AddNode cannot fail here: IDs were unique in the source graph.
		_ = c.AddNode(g.nodes[id].Clone())
	}
	c.Connections = make([]*Connection, len(g.Connections))
	for i, conn := range g.Connections {
		cc := *conn
		c.Connections[i] = &cc
	}
	c.Comments = append([]Comment(nil), g.Comments...)
	return c
}

// Equal reports structural equality: same nodes in the same insertion
// order, same pins, properties, and connections. Used by tests and the
// expansion idempotence guarantee.
func (g *Graph) Equal(other *Graph) bool {
	if g.Len() != other.Len() || len(g.Connections) != len(other.Connections) {
		return false
	}
	for i, id := range g.order {
		if other.order[i] != id {
			return false
		}
		if !nodeEqual(g.nodes[id], other.nodes[id]) {
			return false
		}
	}
	for i, c := range g.Connections {
		if *c != *other.Connections[i] {
			return false
		}
	}
	return true
}

func nodeEqual(a, b *Node) bool {
	if a.ID != b.ID || a.Type != b.Type || a.Position != b.Position {
		return false
	}
	if len(a.Properties) != len(b.Properties) ||
		len(a.Inputs) != len(b.Inputs) || len(a.Outputs) != len(b.Outputs) {
		return false
	}
	for k, av := range a.Properties {
		bv, ok := b.Properties[k]
		if !ok || !av.RawEquals(bv) {
			return false
		}
	}
	for i := range a.Inputs {
		if !pinEqual(a.Inputs[i], b.Inputs[i]) {
			return false
		}
	}
	for i := range a.Outputs {
		if !pinEqual(a.Outputs[i], b.Outputs[i]) {
			return false
		}
	}
	return true
}

func pinEqual(a, b *Pin) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Kind != b.Kind {
		return false
	}
	if a.Type == cty.NilType || b.Type == cty.NilType {
		return a.Type == b.Type
	}
	return a.Type.Equals(b.Type)
}
