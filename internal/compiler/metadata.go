package compiler

import (
	"strings"

	"github.com/vk/bluewire/internal/diag"
	"github.com/vk/bluewire/internal/model"
)

// checkDefinitionMetadata verifies the compile-relevant template shape of
// one definition. The parse itself is memoized on the definition, so
// repeated compilations against the same registry do the work once.
//
// Side-effect-free kinds must not contain exec slots; inlined kinds must
// carry a template whose slot labels match the declared exec outputs, in
// order. Registry startup validation enforces the same rules, but the
// compiler cannot assume its registry was validated.
func checkDefinitionMetadata(def *model.Definition) diag.List {
	switch def.Kind {
	case model.KindPure, model.KindFunction:
		if strings.TrimSpace(def.Body) == "" {
			return nil
		}
		tmpl, err := def.Template()
		if err != nil {
			return diag.List{diag.New(diag.InvalidControlFlowStructure,
				"definition %q: body template does not parse: %v", def.Type, err)}
		}
		if tmpl.HasSlots() {
			return diag.List{diag.New(diag.InvalidControlFlowStructure,
				"definition %q: %s kind must not contain exec_output slots", def.Type, def.Kind)}
		}
		return nil

	case model.KindControlFlow, model.KindEvent:
		if strings.TrimSpace(def.Body) == "" {
			return diag.List{diag.New(diag.InvalidControlFlowStructure,
				"definition %q: %s kind requires a body template", def.Type, def.Kind)}
		}
		tmpl, err := def.Template()
		if err != nil {
			return diag.List{diag.New(diag.InvalidControlFlowStructure,
				"definition %q: body template does not parse: %v", def.Type, err)}
		}
		labels := tmpl.Labels()
		declared := def.ExecOutputNames()
		if !slicesEqual(labels, declared) {
			return diag.List{diag.New(diag.InvalidControlFlowStructure,
				"definition %q: template slots [%s] do not match declared exec outputs [%s]",
				def.Type, strings.Join(labels, ", "), strings.Join(declared, ", "))}
		}
		return nil
	}

	return diag.List{diag.New(diag.InvalidControlFlowStructure,
		"definition %q: unknown kind %q", def.Type, def.Kind)}
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
