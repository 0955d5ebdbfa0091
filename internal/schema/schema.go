package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// InputBlock defines a single data input pin of a node manifest.
type InputBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
	Optional    bool           `hcl:"optional,optional"`
}

// OutputBlock defines a single data output pin of a node manifest.
type OutputBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}

// ExecBlock defines a named execution pin of a node manifest.
type ExecBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

// NodeManifest represents one `node` block from a definition manifest file.
type NodeManifest struct {
	Type        string `hcl:"type,label"`
	Kind        string `hcl:"kind"`
	Category    string `hcl:"category,optional"`
	Description string `hcl:"description,optional"`

	// Target is the qualified symbol generated calls use; required for
	// pure and function kinds.
	Target string `hcl:"target,optional"`

	// Body is the literal source template; required for control_flow and
	// event kinds.
	Body string `hcl:"body,optional"`

	Inputs   []*InputBlock  `hcl:"input,block"`
	Outputs  []*OutputBlock `hcl:"output,block"`
	ExecIns  []*ExecBlock   `hcl:"exec_in,block"`
	ExecOuts []*ExecBlock   `hcl:"exec_out,block"`
}

// DefinitionConfig represents the top-level structure of a node manifest
// file: any number of `node` blocks.
type DefinitionConfig struct {
	Nodes []*NodeManifest `hcl:"node,block"`
	Body  hcl.Body        `hcl:",remain"`
}
