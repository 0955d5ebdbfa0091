package template

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenNumber
	tokenString
	tokenRune
	tokenPunct
)

// token is one lexical unit of a body template. Comments and whitespace are
// skipped during scanning; the newlineBefore flag preserves what statement
// recognition needs from them.
type token struct {
	kind          tokenKind
	text          string
	start, end    int
	newlineBefore bool
}

// scan tokenizes src. The scanner is intentionally loose about the host
// language: it only needs to be exact about identifiers, string and rune
// literals, and comments, because those are where naive substitution would
// corrupt the snippet.
func scan(src string) ([]token, error) {
	var (
		tokens  []token
		pos     int
		newline bool
	)
	for pos < len(src) {
		r, size := utf8.DecodeRuneInString(src[pos:])
		switch {
		case r == '\n':
			newline = true
			pos += size
		case unicode.IsSpace(r):
			pos += size
		case r == '/' && strings.HasPrefix(src[pos:], "//"):
			end := strings.IndexByte(src[pos:], '\n')
			if end < 0 {
				pos = len(src)
			} else {
				pos += end
			}
		case r == '/' && strings.HasPrefix(src[pos:], "/*"):
			end := strings.Index(src[pos+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("unterminated block comment at offset %d", pos)
			}
			if strings.Contains(src[pos:pos+2+end], "\n") {
				newline = true
			}
			pos += 2 + end + 2
		case r == '"' || r == '`':
			end, err := scanString(src, pos, byte(r))
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{tokenString, src[pos:end], pos, end, newline})
			newline = false
			pos = end
		case r == '\'':
			end, err := scanString(src, pos, '\'')
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{tokenRune, src[pos:end], pos, end, newline})
			newline = false
			pos = end
		case isIdentStart(r):
			end := pos + size
			for end < len(src) {
				r2, s2 := utf8.DecodeRuneInString(src[end:])
				if !isIdentPart(r2) {
					break
				}
				end += s2
			}
			tokens = append(tokens, token{tokenIdent, src[pos:end], pos, end, newline})
			newline = false
			pos = end
		case unicode.IsDigit(r):
			end := pos + size
			for end < len(src) {
				r2, s2 := utf8.DecodeRuneInString(src[end:])
				if !unicode.IsDigit(r2) && !isIdentPart(r2) && r2 != '.' {
					break
				}
				end += s2
			}
			tokens = append(tokens, token{tokenNumber, src[pos:end], pos, end, newline})
			newline = false
			pos = end
		default:
			tokens = append(tokens, token{tokenPunct, src[pos : pos+size], pos, pos + size, newline})
			newline = false
			pos += size
		}
	}
	return tokens, nil
}

// scanString returns the offset just past the closing quote. Backslash
// escapes are honored for " and ' delimiters; backquoted strings are raw.
func scanString(src string, start int, quote byte) (int, error) {
	pos := start + 1
	for pos < len(src) {
		c := src[pos]
		if c == '\\' && quote != '`' {
			pos += 2
			continue
		}
		if c == quote {
			return pos + 1, nil
		}
		if c == '\n' && quote != '`' {
			break
		}
		pos++
	}
	return 0, fmt.Errorf("unterminated %c-quoted literal at offset %d", quote, start)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
