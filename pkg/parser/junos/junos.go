// Package junos reads flat "set"-command (Junos-style) switch
// configurations, as produced by "show configuration | display set".
package junos

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/newtron-network/mistconv/pkg/configdata"
)

// ConfigMarker is the first statement of every set-dialect export.
const ConfigMarker = "set version"

var errUnterminatedString = errors.New("unterminated string")

// Parser feeds set-dialect files into a ConfigData.
type Parser struct {
	data *configdata.ConfigData
}

// New returns a parser writing into data.
func New(data *configdata.ConfigData) *Parser {
	return &Parser{data: data}
}

// IsConfig reports whether line marks a set-dialect configuration.
func IsConfig(line string) bool {
	return strings.HasPrefix(line, ConfigMarker)
}

// statement is one "set" line split into words, without the leading "set".
type statement struct {
	raw   string
	words []string
}

// has reports whether the statement starts with prefix.
func (s statement) has(prefix ...string) bool {
	if len(s.words) < len(prefix) {
		return false
	}
	for i, w := range prefix {
		if s.words[i] != w {
			return false
		}
	}
	return true
}

// arg returns word i, or "" past the end.
func (s statement) arg(i int) string {
	if i < len(s.words) {
		return s.words[i]
	}
	return ""
}

// statements tokenizes the "set" lines of a file. Lines that cannot be
// tokenized are logged and skipped.
func (p *Parser) statements(file string, lines []string) []statement {
	var out []statement
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if !strings.HasPrefix(line, "set ") {
			continue
		}
		words, err := Tokenize(line)
		if err != nil {
			p.data.Log(file).WithError(err).Warnf("Unable to parse %s", line)
			continue
		}
		out = append(out, statement{raw: line, words: words[1:]})
	}
	return out
}

// Tokenize splits a set statement into words. Double-quoted strings form a
// single word with \" \\ and \n unescaped; brackets are words of their own
// only when separated by spaces, so "ge-0/0/[0-10]" stays whole.
func Tokenize(line string) ([]string, error) {
	var (
		words []string
		b     strings.Builder
		inTok bool
	)
	flush := func() {
		if inTok {
			words = append(words, b.String())
			b.Reset()
			inTok = false
		}
	}

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			inTok = true
			closed := false
			for i++; i < len(line); i++ {
				c := line[i]
				if c == '\\' && i+1 < len(line) {
					i++
					switch line[i] {
					case '"':
						b.WriteByte('"')
					case '\\':
						b.WriteByte('\\')
					case 'n':
						b.WriteByte('\n')
					default:
						b.WriteByte('\\')
						b.WriteByte(line[i])
					}
					continue
				}
				if c == '"' {
					closed = true
					break
				}
				b.WriteByte(c)
			}
			if !closed {
				return nil, errUnterminatedString
			}
		case ch == ' ' || ch == '\t':
			flush()
		default:
			inTok = true
			b.WriteByte(ch)
		}
	}
	flush()
	return words, nil
}

func defaultHostname(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
