package template

import (
	"fmt"
	"strconv"
	"strings"
)

// slotMarker is the invocation that marks an execution slot inside a body.
const slotMarker = "exec_output"

// slot is one exec_output("Label") statement. The recorded span covers the
// statement's entire line, including the trailing newline, so rendering can
// drop the line wholesale when nothing is wired to the label.
type slot struct {
	label     string
	lineStart int
	lineEnd   int
	indent    string
}

// identRef is a bare identifier that may name a parameter. Whether it does
// is only known at render time, when the caller supplies the parameter set.
type identRef struct {
	name       string
	start, end int
}

// Parse tokenizes and structurally checks a body template. It verifies that
// brackets balance, that every exec_output invocation is well formed and
// alone on its line, and indexes the spans substitution will rewrite.
func Parse(src string) (*Template, error) {
	tokens, err := scan(src)
	if err != nil {
		return nil, err
	}
	if err := checkBalance(tokens); err != nil {
		return nil, err
	}

	t := &Template{src: src}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.kind != tokenIdent {
			continue
		}
		if i > 0 && tokens[i-1].kind == tokenPunct && tokens[i-1].text == "." {
			continue
		}
		if tok.text != slotMarker {
			t.idents = append(t.idents, identRef{tok.text, tok.start, tok.end})
			continue
		}
		s, next, err := parseSlot(src, tokens, i)
		if err != nil {
			return nil, err
		}
		t.slots = append(t.slots, s)
		i = next - 1
	}
	return t, nil
}

// parseSlot consumes exec_output "(" <string> ")" [";"] starting at index i
// and returns the slot plus the index of the first unconsumed token.
func parseSlot(src string, tokens []token, i int) (slot, int, error) {
	tok := tokens[i]
	if i > 0 && !tok.newlineBefore {
		return slot{}, 0, fmt.Errorf("%s at offset %d must start its own line", slotMarker, tok.start)
	}
	next := i + 1
	if next >= len(tokens) || tokens[next].text != "(" {
		return slot{}, 0, fmt.Errorf("%s at offset %d is not followed by (", slotMarker, tok.start)
	}
	next++
	if next >= len(tokens) || tokens[next].kind != tokenString {
		return slot{}, 0, fmt.Errorf("%s at offset %d needs a string literal label", slotMarker, tok.start)
	}
	label, err := strconv.Unquote(tokens[next].text)
	if err != nil {
		return slot{}, 0, fmt.Errorf("%s at offset %d has a malformed label: %w", slotMarker, tok.start, err)
	}
	if label == "" {
		return slot{}, 0, fmt.Errorf("%s at offset %d has an empty label", slotMarker, tok.start)
	}
	next++
	if next >= len(tokens) || tokens[next].text != ")" {
		return slot{}, 0, fmt.Errorf("%s at offset %d is missing the closing )", slotMarker, tok.start)
	}
	next++
	if next < len(tokens) && tokens[next].text == ";" && !tokens[next].newlineBefore {
		next++
	}
	if next < len(tokens) && !tokens[next].newlineBefore {
		return slot{}, 0, fmt.Errorf("%s at offset %d must be the only statement on its line", slotMarker, tok.start)
	}

	lineStart, lineEnd := lineBounds(src, tok.start)
	return slot{
		label:     label,
		lineStart: lineStart,
		lineEnd:   lineEnd,
		indent:    leadingIndent(src[lineStart:tok.start]),
	}, next, nil
}

// lineBounds returns the byte span of the line containing offset. The end
// includes the trailing newline when one exists.
func lineBounds(src string, offset int) (int, int) {
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := strings.IndexByte(src[offset:], '\n')
	if end < 0 {
		return start, len(src)
	}
	return start, offset + end + 1
}

func leadingIndent(prefix string) string {
	for i, r := range prefix {
		if r != ' ' && r != '\t' {
			return prefix[:i]
		}
	}
	return prefix
}

// checkBalance rejects templates with mismatched brackets. An unbalanced
// body would otherwise corrupt every statement generated after the splice.
func checkBalance(tokens []token) error {
	pairs := map[string]string{")": "(", "]": "[", "}": "{"}
	var stack []token
	for _, tok := range tokens {
		if tok.kind != tokenPunct {
			continue
		}
		switch tok.text {
		case "(", "[", "{":
			stack = append(stack, tok)
		case ")", "]", "}":
			if len(stack) == 0 {
				return fmt.Errorf("unmatched %q at offset %d", tok.text, tok.start)
			}
			top := stack[len(stack)-1]
			if top.text != pairs[tok.text] {
				return fmt.Errorf("mismatched %q at offset %d closes %q opened at offset %d", tok.text, tok.start, top.text, top.start)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return fmt.Errorf("unclosed %q at offset %d", top.text, top.start)
	}
	return nil
}
