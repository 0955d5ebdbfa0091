package template

import (
	"sort"
	"strings"
)

// Template is a parsed body ready for substitution. It is immutable and
// safe for concurrent renders, which lets definition metadata cache one
// parse per node type.
type Template struct {
	src    string
	slots  []slot
	idents []identRef
}

// Labels returns the slot labels in first-appearance order, deduplicated.
// The order is what definition validation checks against the declared
// execution output pins.
func (t *Template) Labels() []string {
	var labels []string
	seen := make(map[string]bool, len(t.slots))
	for _, s := range t.slots {
		if seen[s.label] {
			continue
		}
		seen[s.label] = true
		labels = append(labels, s.label)
	}
	return labels
}

// HasSlots reports whether the body contains any execution slot.
func (t *Template) HasSlots() bool {
	return len(t.slots) > 0
}

// Source returns the original body text.
func (t *Template) Source() string {
	return t.src
}

type edit struct {
	start, end int
	text       string
}

// Render substitutes parameters and slot blocks and returns the resulting
// lines. params maps a parameter name to the expression text that replaces
// each bare reference. blocks maps a slot label to the already generated
// statement lines for that branch; a label with no entry renders as an
// empty block, and every injected line inherits the slot's indentation.
func (t *Template) Render(params map[string]string, blocks map[string][]string) []string {
	edits := make([]edit, 0, len(t.idents)+len(t.slots))
	for _, ref := range t.idents {
		if expr, ok := params[ref.name]; ok {
			edits = append(edits, edit{ref.start, ref.end, expr})
		}
	}
	for _, s := range t.slots {
		edits = append(edits, edit{s.lineStart, s.lineEnd, indentBlock(blocks[s.label], s.indent)})
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })

	out := t.src
	for _, e := range edits {
		out = out[:e.start] + e.text + out[e.end:]
	}
	return splitLines(out)
}

func indentBlock(lines []string, indent string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// splitLines splits rendered text into lines without a trailing empty
// element, trimming whitespace-only lines down to empty ones so generated
// code carries no stray indentation.
func splitLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		}
	}
	return lines
}
