package hcl

import (
	"fmt"

	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/schema"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateNodeManifest converts a decoded `node` block into the
// format-agnostic definition model. Shape rules that depend on the whole
// registry (target presence, template/exec-pin parity) are enforced later
// by registry validation; this stage only translates and type-checks the
// block itself.
func translateNodeManifest(m *schema.NodeManifest) (*model.Definition, error) {
	kind, err := model.ParseKind(m.Kind)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", m.Type, err)
	}

	def := &model.Definition{
		Type:        m.Type,
		Kind:        kind,
		Category:    m.Category,
		Description: m.Description,
		Target:      m.Target,
		Body:        m.Body,
	}

	for _, in := range m.Inputs {
		p, err := translateInput(in)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", m.Type, err)
		}
		def.Params = append(def.Params, p)
	}

	for _, out := range m.Outputs {
		t, err := TypeFromExpr(out.Type)
		if err != nil {
			return nil, fmt.Errorf("node %q, output %q: %w", m.Type, out.Name, err)
		}
		def.Outputs = append(def.Outputs, model.Output{
			Name:        out.Name,
			Type:        t,
			Description: out.Description,
		})
	}

	for _, e := range m.ExecIns {
		def.ExecInputs = append(def.ExecInputs, model.ExecPin{Name: e.Name, Description: e.Description})
	}
	for _, e := range m.ExecOuts {
		def.ExecOutputs = append(def.ExecOutputs, model.ExecPin{Name: e.Name, Description: e.Description})
	}

	// Function and event kinds carry their implicit exec pins even when the
	// manifest leaves them out, so manifest authors only write what differs
	// from the convention.
	switch kind {
	case model.KindFunction:
		if len(def.ExecInputs) == 0 {
			def.ExecInputs = append(def.ExecInputs, model.ExecPin{Name: model.ImplicitExecPin})
		}
		if len(def.ExecOutputs) == 0 {
			def.ExecOutputs = append(def.ExecOutputs, model.ExecPin{Name: model.ImplicitExecPin})
		}
	case model.KindControlFlow:
		if len(def.ExecInputs) == 0 {
			def.ExecInputs = append(def.ExecInputs, model.ExecPin{Name: model.ImplicitExecPin})
		}
	}

	return def, nil
}

// translateInput converts one input block, checking that any declared
// default actually fits the declared type.
func translateInput(in *schema.InputBlock) (model.Param, error) {
	t, err := TypeFromExpr(in.Type)
	if err != nil {
		return model.Param{}, fmt.Errorf("input %q: %w", in.Name, err)
	}

	p := model.Param{
		Name:        in.Name,
		Type:        t,
		Description: in.Description,
		Optional:    in.Optional,
	}

	if in.Default != nil {
		converted, err := convert.Convert(*in.Default, t)
		if err != nil {
			return model.Param{}, fmt.Errorf("input %q: default value %s does not fit declared type %s: %w",
				in.Name, in.Default.GoString(), t.FriendlyName(), err)
		}
		p.Default = &converted
	}

	// A default implies the input may be omitted.
	if p.Default != nil {
		p.Optional = true
	}

	return p, nil
}
