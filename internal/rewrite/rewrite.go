package rewrite

import (
	"strings"

	"ckpecfg/internal/parser"
	"ckpecfg/pkg/ini"
)

// Render produces a new raw document with the edited values written into
// their recorded lines. Every line not addressed by an edit is carried
// over byte for byte; the input document is never mutated, so a save can
// be retried with different edits without re-parsing.
//
// Edits addressing a (section, key) pair the document does not contain
// are ignored. When the pair occurs more than once, every occurrence
// receives the value.
func Render(raw ini.RawDocument, edits ini.Edits, doc *ini.Document) (ini.RawDocument, error) {
	out := raw.Clone()
	for _, sec := range doc.Sections {
		for _, e := range sec.Entries {
			value, ok := edits[ini.Key{Section: sec.Name, Name: e.Name}]
			if !ok {
				continue
			}
			if e.Line < 0 || e.Line >= len(out) {
				// The model does not belong to this raw document. Fail
				// before touching any line.
				return nil, &ini.MismatchError{Section: sec.Name, Name: e.Name, Line: e.Line, Lines: len(out)}
			}
			out[e.Line] = leadingWhitespace(out[e.Line]) + e.Format(value) + lineTerminator(out[e.Line])
		}
	}
	return out, nil
}

// Apply is the one-call form used by scripted updates: parse text,
// render the edits into it, return the new text.
func Apply(text string, edits ini.Edits) (string, error) {
	doc, raw := parser.Parse(text)
	out, err := Render(raw, edits, doc)
	if err != nil {
		return "", err
	}
	return out.Text(), nil
}

// lineTerminator returns the line's own ending so a rewrite keeps it,
// or "\n" when the line had none.
func lineTerminator(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// leadingWhitespace returns the exact run of spaces and tabs at the
// start of line.
func leadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}
