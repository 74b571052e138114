// Package keypath parses the textual key-path syntax accepted by the
// CLI and script resolver context ("a.b.c", "a.b[2].c") into a
// stratum.KeyPath. The tokenizer is a dot/bracket scanner in the style
// of a tree-cursor path syntax, generalized to classify bracketed segments
// as integer keys rather than treating every segment as a string.
package keypath

import (
	"bytes"
	"strconv"

	"github.com/gobbles/stratum/pkg/stratum"
)

// SyntaxError reports a malformed key path string.
type SyntaxError struct {
	Problem  string
	Position int
}

func (e SyntaxError) Error() string {
	return e.Problem
}

// Parse tokenizes s into a stratum.KeyPath. Dot-separated segments
// become string keys; bracketed segments that parse as a base-10
// integer become integer keys, otherwise they too become string keys
// (non-numeric map keys, e.g. `tags[some-tag]`; the text between the
// brackets is taken verbatim, quotes included).
func Parse(s string) (stratum.KeyPath, error) {
	var kp stratum.KeyPath
	seg := bytes.NewBuffer(nil)
	bracketed := false

	push := func() {
		if seg.Len() == 0 {
			return
		}
		text := seg.String()
		seg.Reset()
		if bracketed {
			if n, err := strconv.ParseInt(text, 10, 64); err == nil {
				kp = append(kp, stratum.IntKey(n))
				return
			}
		}
		kp = append(kp, stratum.StringKey(text))
	}

	for pos, c := range s {
		switch c {
		case '.':
			if bracketed {
				seg.WriteRune(c)
			} else {
				push()
			}
		case '[':
			if bracketed {
				return nil, SyntaxError{Problem: "unexpected '['", Position: pos}
			}
			push()
			bracketed = true
		case ']':
			if !bracketed {
				return nil, SyntaxError{Problem: "unexpected ']'", Position: pos}
			}
			push()
			bracketed = false
		default:
			seg.WriteRune(c)
		}
	}
	if bracketed {
		return nil, SyntaxError{Problem: "unterminated '['", Position: len(s)}
	}
	push()

	return kp, nil
}

// String renders kp back to its dotted/bracketed textual form.
func String(kp stratum.KeyPath) string {
	out := bytes.NewBuffer(nil)
	for i, k := range kp {
		if k.Kind() == stratum.KeyKindInt {
			out.WriteByte('[')
			out.WriteString(k.String())
			out.WriteByte(']')
			continue
		}
		if i > 0 {
			out.WriteByte('.')
		}
		out.WriteString(k.String())
	}
	return out.String()
}
