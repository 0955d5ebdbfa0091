package blueprint

import (
	"encoding/json"
	"fmt"
	"os"

	bwhcl "github.com/vk/bluewire/internal/hcl"
	"github.com/zclconf/go-cty/cty"
)

type jsonLibrary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	SubGraphs []*jsonSubGraph `json:"subgraphs"`
}

type jsonSubGraph struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Inputs   []*jsonPin      `json:"inputs,omitempty"`
	Outputs  []*jsonPin      `json:"outputs,omitempty"`
	Graph    json.RawMessage `json:"graph"`
}

// ParseLibrary decodes a sub-graph library document.
func ParseLibrary(src []byte) (*Library, error) {
	var wire jsonLibrary
	if err := json.Unmarshal(src, &wire); err != nil {
		return nil, fmt.Errorf("parsing library document: %w", err)
	}

	lib := NewLibrary(wire.ID, wire.Name)
	lib.Category = wire.Category

	for _, js := range wire.SubGraphs {
		sub, err := decodeSubGraph(js)
		if err != nil {
			return nil, err
		}
		if err := lib.Add(sub); err != nil {
			return nil, fmt.Errorf("library %q: %w", wire.ID, err)
		}
	}

	return lib, nil
}

func decodeSubGraph(js *jsonSubGraph) (*SubGraph, error) {
	inputs, err := decodePinSpecs(js.Inputs)
	if err != nil {
		return nil, fmt.Errorf("sub-graph %q inputs: %w", js.ID, err)
	}
	outputs, err := decodePinSpecs(js.Outputs)
	if err != nil {
		return nil, fmt.Errorf("sub-graph %q outputs: %w", js.ID, err)
	}

	if len(js.Graph) == 0 {
		return nil, fmt.Errorf("sub-graph %q has no internal graph", js.ID)
	}
	g, err := ParseGraph(js.Graph)
	if err != nil {
		return nil, fmt.Errorf("sub-graph %q: %w", js.ID, err)
	}

	return &SubGraph{
		ID:       js.ID,
		Name:     js.Name,
		Category: js.Category,
		Inputs:   inputs,
		Outputs:  outputs,
		Graph:    g,
	}, nil
}

func decodePinSpecs(pins []*jsonPin) ([]PinSpec, error) {
	if pins == nil {
		return nil, nil
	}
	out := make([]PinSpec, 0, len(pins))
	for _, jp := range pins {
		kind, err := parsePinKind(jp.Kind)
		if err != nil {
			return nil, fmt.Errorf("pin %q: %w", jp.Name, err)
		}
		spec := PinSpec{Name: jp.Name, Kind: kind}
		if kind == PinData {
			t := cty.DynamicPseudoType
			if jp.Type != "" {
				if t, err = bwhcl.ParseType(jp.Type); err != nil {
					return nil, fmt.Errorf("pin %q: %w", jp.Name, err)
				}
			}
			spec.Type = t
		}
		out = append(out, spec)
	}
	return out, nil
}

// LoadLibrary reads and parses a library file.
func LoadLibrary(path string) (*Library, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading library file: %w", err)
	}
	lib, err := ParseLibrary(src)
	if err != nil {
		return nil, fmt.Errorf("library file %s: %w", path, err)
	}
	return lib, nil
}
