package blueprint

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// PinSpec declares one pin of a sub-graph's public interface.
type PinSpec struct {
	Name string
	Kind PinKind
	Type cty.Type
}

// SubGraph is a reusable macro: a named internal graph with a custom pin
// interface. The internal graph contains exactly one synthesized entry node
// (type "graph_input", outputs mirroring Inputs) and one synthesized exit
// node (type "graph_output", inputs mirroring Outputs); the editor
// regenerates the pair whenever the interface changes and never lets graph
// edits delete them.
type SubGraph struct {
	ID       string
	Name     string
	Category string
	Inputs   []PinSpec
	Outputs  []PinSpec
	Graph    *Graph
}

// EntryNode returns the synthesized graph-input node.
func (s *SubGraph) EntryNode() (*Node, bool) {
	return s.findByType(GraphInputType)
}

// ExitNode returns the synthesized graph-output node.
func (s *SubGraph) ExitNode() (*Node, bool) {
	return s.findByType(GraphOutputType)
}

func (s *SubGraph) findByType(nodeType string) (*Node, bool) {
	for _, n := range s.Graph.Nodes() {
		if n.Type == nodeType {
			return n, true
		}
	}
	return nil, false
}

// Instantiated lists the sub-graph IDs this definition's internal graph
// references, in node insertion order, with duplicates removed. This is the
// edge set of the macro dependency graph the expander's cycle pre-pass
// walks.
func (s *SubGraph) Instantiated() []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range s.Graph.Nodes() {
		if id, ok := n.SubGraphID(); ok && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Validate checks the structural invariants a definition must satisfy
// before it can be expanded.
func (s *SubGraph) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("sub-graph has empty id")
	}
	if s.Graph == nil {
		return fmt.Errorf("sub-graph %q has no internal graph", s.ID)
	}
	if _, ok := s.EntryNode(); !ok {
		return fmt.Errorf("sub-graph %q is missing its synthesized %s node", s.ID, GraphInputType)
	}
	if _, ok := s.ExitNode(); !ok {
		return fmt.Errorf("sub-graph %q is missing its synthesized %s node", s.ID, GraphOutputType)
	}
	return nil
}

// Library is an ordered collection of sub-graph definitions, loaded from
// external storage and merged by the application before compilation.
type Library struct {
	ID        string
	Name      string
	Category  string
	SubGraphs []*SubGraph

	index map[string]*SubGraph
}

// NewLibrary creates an empty library.
func NewLibrary(id, name string) *Library {
	return &Library{ID: id, Name: name, index: make(map[string]*SubGraph)}
}

// Add appends a definition. Later definitions with a duplicate ID are
// rejected so merged libraries cannot silently shadow each other.
func (l *Library) Add(s *SubGraph) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if l.index == nil {
		l.index = make(map[string]*SubGraph)
	}
	if _, ok := l.index[s.ID]; ok {
		return fmt.Errorf("duplicate sub-graph id %q", s.ID)
	}
	l.index[s.ID] = s
	l.SubGraphs = append(l.SubGraphs, s)
	return nil
}

// Get looks a definition up by ID. Safe on a nil library.
func (l *Library) Get(id string) (*SubGraph, bool) {
	if l == nil || l.index == nil {
		return nil, false
	}
	s, ok := l.index[id]
	return s, ok
}

// Merge folds another library's definitions into this one.
func (l *Library) Merge(other *Library) error {
	if other == nil {
		return nil
	}
	for _, s := range other.SubGraphs {
		if err := l.Add(s); err != nil {
			return fmt.Errorf("merging library %q: %w", other.ID, err)
		}
	}
	return nil
}
