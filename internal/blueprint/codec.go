package blueprint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	bwhcl "github.com/vk/bluewire/internal/hcl"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Wire representations. Graph files are plain JSON documents; nodes are an
// object whose key order is the author's insertion order, so decoding walks
// the token stream instead of letting a Go map scramble it.

type jsonGraph struct {
	Metadata    Metadata          `json:"metadata"`
	Nodes       json.RawMessage   `json:"nodes"`
	Connections []*jsonConnection `json:"connections"`
	Comments    []Comment         `json:"comments,omitempty"`
}

type jsonNode struct {
	ID         string                     `json:"id,omitempty"`
	NodeType   string                     `json:"node_type"`
	Position   Position                   `json:"position"`
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
	Inputs     []*jsonPin                 `json:"inputs,omitempty"`
	Outputs    []*jsonPin                 `json:"outputs,omitempty"`
}

type jsonPin struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	Type string `json:"type,omitempty"`
}

type jsonConnection struct {
	ID       string `json:"id,omitempty"`
	FromNode string `json:"from_node"`
	FromPin  string `json:"from_pin"`
	ToNode   string `json:"to_node"`
	ToPin    string `json:"to_pin"`
	Kind     string `json:"kind"`
}

// ParseGraph decodes a graph document.
func ParseGraph(src []byte) (*Graph, error) {
	var wire jsonGraph
	if err := json.Unmarshal(src, &wire); err != nil {
		return nil, fmt.Errorf("parsing graph document: %w", err)
	}

	g := NewGraph(wire.Metadata)
	g.Comments = wire.Comments

	if len(wire.Nodes) > 0 {
		if err := decodeNodes(wire.Nodes, g); err != nil {
			return nil, err
		}
	}

	for i, jc := range wire.Connections {
		kind, err := parsePinKind(jc.Kind)
		if err != nil {
			return nil, fmt.Errorf("connection %d: %w", i, err)
		}
		g.AddConnection(&Connection{
			ID:       jc.ID,
			FromNode: jc.FromNode,
			FromPin:  jc.FromPin,
			ToNode:   jc.ToNode,
			ToPin:    jc.ToPin,
			Kind:     kind,
		})
	}

	return g, nil
}

// decodeNodes walks the `nodes` object token by token so insertion order
// survives the round trip.
func decodeNodes(raw json.RawMessage, g *Graph) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parsing nodes: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("parsing nodes: expected an object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parsing nodes: %w", err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("parsing nodes: non-string key %v", keyTok)
		}

		var jn jsonNode
		if err := dec.Decode(&jn); err != nil {
			return fmt.Errorf("parsing node %q: %w", id, err)
		}
		if jn.ID != "" && jn.ID != id {
			return fmt.Errorf("node keyed %q declares conflicting id %q", id, jn.ID)
		}

		node, err := decodeNode(id, &jn)
		if err != nil {
			return err
		}
		if err := g.AddNode(node); err != nil {
			return fmt.Errorf("parsing nodes: %w", err)
		}
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("parsing nodes: %w", err)
	}
	return nil
}

func decodeNode(id string, jn *jsonNode) (*Node, error) {
	n := &Node{
		ID:       id,
		Type:     jn.NodeType,
		Position: jn.Position,
	}

	var err error
	if n.Inputs, err = decodePins(jn.Inputs); err != nil {
		return nil, fmt.Errorf("node %q inputs: %w", id, err)
	}
	if n.Outputs, err = decodePins(jn.Outputs); err != nil {
		return nil, fmt.Errorf("node %q outputs: %w", id, err)
	}

	if len(jn.Properties) > 0 {
		n.Properties = make(map[string]cty.Value, len(jn.Properties))
		for pin, raw := range jn.Properties {
			val, err := decodeValue(raw)
			if err != nil {
				return nil, fmt.Errorf("node %q property %q: %w", id, pin, err)
			}
			n.Properties[pin] = val
		}
	}

	return n, nil
}

func decodePins(pins []*jsonPin) ([]*Pin, error) {
	if pins == nil {
		return nil, nil
	}
	out := make([]*Pin, 0, len(pins))
	for _, jp := range pins {
		kind, err := parsePinKind(jp.Kind)
		if err != nil {
			return nil, fmt.Errorf("pin %q: %w", jp.Name, err)
		}
		p := &Pin{ID: jp.ID, Name: jp.Name, Kind: kind}
		if kind == PinData {
			t := cty.DynamicPseudoType
			if jp.Type != "" {
				if t, err = bwhcl.ParseType(jp.Type); err != nil {
					return nil, fmt.Errorf("pin %q: %w", jp.Name, err)
				}
			}
			p.Type = t
		}
		out = append(out, p)
	}
	return out, nil
}

// decodeValue turns one JSON property literal into a cty value, inferring
// the type from the JSON shape.
func decodeValue(raw json.RawMessage) (cty.Value, error) {
	t, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, err
	}
	return ctyjson.Unmarshal(raw, t)
}

func parsePinKind(s string) (PinKind, error) {
	switch PinKind(s) {
	case PinExec, PinData:
		return PinKind(s), nil
	default:
		return "", fmt.Errorf("unknown pin kind %q (want %q or %q)", s, PinExec, PinData)
	}
}

// EncodeGraph renders a graph back into its document form, nodes in
// insertion order.
func EncodeGraph(g *Graph) ([]byte, error) {
	rawNodes, err := encodeNodes(g)
	if err != nil {
		return nil, err
	}

	wire := jsonGraph{
		Metadata: g.Metadata,
		Nodes:    rawNodes,
		Comments: g.Comments,
	}
	for _, c := range g.Connections {
		wire.Connections = append(wire.Connections, &jsonConnection{
			ID:       c.ID,
			FromNode: c.FromNode,
			FromPin:  c.FromPin,
			ToNode:   c.ToNode,
			ToPin:    c.ToPin,
			Kind:     string(c.Kind),
		})
	}

	return json.MarshalIndent(&wire, "", "  ")
}

func encodeNodes(g *Graph) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range g.NodeIDs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		n, _ := g.Node(id)
		encoded, err := encodeNode(n)
		if err != nil {
			return nil, fmt.Errorf("encoding node %q: %w", id, err)
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeNode(n *Node) ([]byte, error) {
	jn := jsonNode{
		ID:       n.ID,
		NodeType: n.Type,
		Position: n.Position,
		Inputs:   encodePins(n.Inputs),
		Outputs:  encodePins(n.Outputs),
	}

	if len(n.Properties) > 0 {
		jn.Properties = make(map[string]json.RawMessage, len(n.Properties))
		for pin, val := range n.Properties {
			raw, err := ctyjson.Marshal(val, val.Type())
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", pin, err)
			}
			jn.Properties[pin] = raw
		}
	}

	return json.Marshal(&jn)
}

func encodePins(pins []*Pin) []*jsonPin {
	if pins == nil {
		return nil
	}
	out := make([]*jsonPin, len(pins))
	for i, p := range pins {
		jp := &jsonPin{ID: p.ID, Name: p.Name, Kind: string(p.Kind)}
		if p.Kind == PinData {
			jp.Type = bwhcl.TypeString(p.Type)
		}
		out[i] = jp
	}
	return out
}

// LoadGraph reads and parses a graph file.
func LoadGraph(path string) (*Graph, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	g, err := ParseGraph(src)
	if err != nil {
		return nil, fmt.Errorf("graph file %s: %w", path, err)
	}
	return g, nil
}
