package parser

import (
	"slices"
	"strings"

	"ckpecfg/pkg/ini"
)

// Parse scans text into a document model plus the raw lines it was read
// from. The scan is a single forward pass; lines are classified on their
// whitespace-trimmed content only, while the raw lines are returned
// untouched so the rewriter can address them by index later.
func Parse(text string) (*ini.Document, ini.RawDocument) {
	raw := ini.SplitLines(text)
	doc := &ini.Document{}

	var current *ini.Section
	for i, line := range raw {
		s := strings.TrimSpace(line)

		// Blank and comment lines never become entries. They are picked
		// up by the backward scan of whatever follows them.
		if s == "" || strings.HasPrefix(s, ";") {
			continue
		}

		if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
			current = &ini.Section{
				Name:    s[1 : len(s)-1],
				Comment: LeadingComments(raw, i),
				Line:    i,
			}
			doc.Sections = append(doc.Sections, current)
			continue
		}

		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 {
			continue
		}
		if current == nil {
			// A key before the first section header has nowhere to go.
			continue
		}

		// Only the first ; in the value part starts the inline comment,
		// so a value may not contain a literal ;.
		value := parts[1]
		inline := ""
		if vparts := strings.SplitN(value, ";", 2); len(vparts) == 2 {
			value = vparts[0]
			inline = strings.TrimSpace(vparts[1])
		}

		entry := &ini.Entry{
			Name:          strings.TrimSpace(parts[0]),
			Value:         strings.TrimSpace(value),
			InlineComment: inline,
			Line:          i,
		}
		entry.Comment = joinComments(LeadingComments(raw, i), inline)
		current.Entries = append(current.Entries, entry)
	}

	return doc, raw
}

// LeadingComments collects the comment block directly above line i.
// The scan walks backward over comment and blank lines and stops at the
// first line that is neither; blank lines are skipped but do not stop
// the scan. Collected lines are returned top to bottom, marker
// stripped, newline-joined.
func LeadingComments(lines ini.RawDocument, i int) string {
	var parts []string
	for j := i - 1; j >= 0; j-- {
		s := strings.TrimSpace(lines[j])
		if s == "" {
			continue
		}
		if !strings.HasPrefix(s, ";") {
			break
		}
		parts = append(parts, stripMarker(s))
	}
	slices.Reverse(parts)
	return strings.Join(parts, "\n")
}

// stripMarker drops the comment marker and at most one whitespace
// character directly after it. Any further indentation inside the
// comment text is kept.
func stripMarker(s string) string {
	s = strings.TrimPrefix(s, ";")
	if s != "" && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	return s
}

// joinComments merges an entry's leading comment block with its inline
// comment into the single text shown to the user.
func joinComments(block, inline string) string {
	switch {
	case block != "" && inline != "":
		return block + "\n" + inline
	case block != "":
		return block
	default:
		return inline
	}
}
