package compiler

import "github.com/vk/bluewire/internal/blueprint"

// routeKey identifies one exec output pin on one node.
type routeKey struct {
	node string
	pin  string
}

// routingTable maps every exec output pin to the nodes it triggers, in
// connection declaration order. Fan-out is allowed; the targets run
// sequentially in that order.
type routingTable map[routeKey][]string

// buildRoutingTable scans the graph's exec connections once. Pure nodes
// contribute nothing: they have no exec pins.
func buildRoutingTable(g *blueprint.Graph) routingTable {
	t := make(routingTable)
	for _, conn := range g.Connections {
		if conn.Kind != blueprint.PinExec {
			continue
		}
		k := routeKey{node: conn.FromNode, pin: conn.FromPin}
		t[k] = append(t[k], conn.ToNode)
	}
	return t
}

// targets returns the nodes wired to the given exec output, in declaration
// order, or nil when the pin is unconnected.
func (t routingTable) targets(node, pin string) []string {
	return t[routeKey{node: node, pin: pin}]
}
