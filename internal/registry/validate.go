package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/bluewire/internal/blueprint"
	"github.com/vk/bluewire/internal/ctxlog"
	"github.com/vk/bluewire/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// ValidateRegistry performs a strict shape check on every definition: each
// kind has exact rules for targets, bodies, and exec pins, and a body
// template's exec_output labels must match the declared exec output pins
// one for one, in order. All violations are collected before reporting.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, def := range r.All() {
		errs = append(errs, validateNames(def)...)

		for _, p := range def.Params {
			if p.Type.Equals(cty.DynamicPseudoType) {
				logger.Warn("Definition input uses 'type = any', which disables static type checking. Consider a specific type like 'string', 'number', or 'bool'.", "node", def.Type, "input", p.Name)
			}
		}

		switch def.Kind {
		case model.KindPure:
			errs = append(errs, validatePure(def)...)
		case model.KindFunction:
			errs = append(errs, validateFunction(def)...)
		case model.KindControlFlow:
			errs = append(errs, validateControlFlow(def)...)
		case model.KindEvent:
			errs = append(errs, validateEvent(def)...)
		default:
			errs = append(errs, fmt.Sprintf("node '%s': unknown kind '%s'", def.Type, def.Kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

// validateNames rejects reserved node types and duplicated pin names.
func validateNames(def *model.Definition) []string {
	var errs []string

	if strings.HasPrefix(def.Type, blueprint.SubGraphPrefix) {
		errs = append(errs, fmt.Sprintf("node '%s': the '%s' type prefix is reserved for sub-graph instances", def.Type, blueprint.SubGraphPrefix))
	}
	if def.Type == blueprint.GraphInputType || def.Type == blueprint.GraphOutputType {
		errs = append(errs, fmt.Sprintf("node '%s': this type name is reserved for sub-graph interface nodes", def.Type))
	}

	seen := make(map[string]bool)
	for _, p := range def.Params {
		if seen[p.Name] {
			errs = append(errs, fmt.Sprintf("node '%s': duplicate input '%s'", def.Type, p.Name))
		}
		seen[p.Name] = true
	}
	seen = make(map[string]bool)
	for _, o := range def.Outputs {
		if seen[o.Name] {
			errs = append(errs, fmt.Sprintf("node '%s': duplicate output '%s'", def.Type, o.Name))
		}
		seen[o.Name] = true
	}
	seen = make(map[string]bool)
	for _, e := range def.ExecInputs {
		if seen[e.Name] {
			errs = append(errs, fmt.Sprintf("node '%s': duplicate exec input '%s'", def.Type, e.Name))
		}
		seen[e.Name] = true
	}
	seen = make(map[string]bool)
	for _, e := range def.ExecOutputs {
		if seen[e.Name] {
			errs = append(errs, fmt.Sprintf("node '%s': duplicate exec output '%s'", def.Type, e.Name))
		}
		seen[e.Name] = true
	}

	return errs
}

// validateTarget checks the qualified symbol a call-emitting kind names.
// Generated programs import only the std runtime package, so every target
// must live there.
func validateTarget(def *model.Definition) []string {
	if def.Target == "" || strings.HasPrefix(def.Target, "std.") {
		return nil
	}
	return []string{fmt.Sprintf("node '%s': target '%s' must be a std-qualified symbol like 'std.Add'", def.Type, def.Target)}
}

func validatePure(def *model.Definition) []string {
	var errs []string
	if def.Target == "" {
		errs = append(errs, fmt.Sprintf("node '%s': pure kind requires a target symbol", def.Type))
	}
	errs = append(errs, validateTarget(def)...)
	if def.Body != "" {
		errs = append(errs, fmt.Sprintf("node '%s': pure kind does not take a body template", def.Type))
	}
	if len(def.ExecInputs) > 0 || len(def.ExecOutputs) > 0 {
		errs = append(errs, fmt.Sprintf("node '%s': pure kind must not declare exec pins", def.Type))
	}
	if len(def.Outputs) != 1 {
		errs = append(errs, fmt.Sprintf("node '%s': pure kind requires exactly one output, got %d", def.Type, len(def.Outputs)))
	}
	return errs
}

func validateFunction(def *model.Definition) []string {
	var errs []string
	if def.Target == "" {
		errs = append(errs, fmt.Sprintf("node '%s': function kind requires a target symbol", def.Type))
	}
	errs = append(errs, validateTarget(def)...)
	if def.Body != "" {
		errs = append(errs, fmt.Sprintf("node '%s': function kind does not take a body template", def.Type))
	}
	if len(def.ExecInputs) != 1 || def.ExecInputs[0].Name != model.ImplicitExecPin {
		errs = append(errs, fmt.Sprintf("node '%s': function kind requires the single implicit '%s' exec input", def.Type, model.ImplicitExecPin))
	}
	if len(def.ExecOutputs) != 1 || def.ExecOutputs[0].Name != model.ImplicitExecPin {
		errs = append(errs, fmt.Sprintf("node '%s': function kind requires the single implicit '%s' exec output", def.Type, model.ImplicitExecPin))
	}
	if len(def.Outputs) > 1 {
		errs = append(errs, fmt.Sprintf("node '%s': function kind takes at most one output, got %d", def.Type, len(def.Outputs)))
	}
	return errs
}

func validateControlFlow(def *model.Definition) []string {
	var errs []string
	if def.Target != "" {
		errs = append(errs, fmt.Sprintf("node '%s': control_flow kind is inlined and must not name a target symbol", def.Type))
	}
	if len(def.ExecInputs) != 1 || def.ExecInputs[0].Name != model.ImplicitExecPin {
		errs = append(errs, fmt.Sprintf("node '%s': control_flow kind requires the single implicit '%s' exec input", def.Type, model.ImplicitExecPin))
	}
	if len(def.ExecOutputs) == 0 {
		errs = append(errs, fmt.Sprintf("node '%s': control_flow kind requires at least one exec output", def.Type))
	}
	if len(def.Outputs) > 0 {
		errs = append(errs, fmt.Sprintf("node '%s': control_flow kind must not declare data outputs", def.Type))
	}
	errs = append(errs, validateBody(def)...)
	return errs
}

func validateEvent(def *model.Definition) []string {
	var errs []string
	if def.Target != "" {
		errs = append(errs, fmt.Sprintf("node '%s': event kind is generated and must not name a target symbol", def.Type))
	}
	if len(def.ExecInputs) > 0 {
		errs = append(errs, fmt.Sprintf("node '%s': event kind must not declare exec inputs", def.Type))
	}
	if len(def.ExecOutputs) == 0 {
		errs = append(errs, fmt.Sprintf("node '%s': event kind requires at least one exec output", def.Type))
	}
	if len(def.Params) > 0 {
		errs = append(errs, fmt.Sprintf("node '%s': event kind must not declare data inputs", def.Type))
	}
	errs = append(errs, validateBody(def)...)
	return errs
}

// validateBody parses the template of an inlined kind and checks that its
// slot labels match the declared exec outputs exactly, including order.
func validateBody(def *model.Definition) []string {
	if strings.TrimSpace(def.Body) == "" {
		return []string{fmt.Sprintf("node '%s': %s kind requires a body template", def.Type, def.Kind)}
	}

	tmpl, err := def.Template()
	if err != nil {
		return []string{fmt.Sprintf("node '%s': body template does not parse: %v", def.Type, err)}
	}

	labels := tmpl.Labels()
	declared := def.ExecOutputNames()
	if !equalStrings(labels, declared) {
		return []string{fmt.Sprintf("node '%s': body template slots [%s] do not match declared exec outputs [%s]",
			def.Type, strings.Join(labels, ", "), strings.Join(declared, ", "))}
	}
	return nil
}

func equalStrings(a, b []string) bool {
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
