package ini

import "strings"

// RawDocument holds the lines of an INI file. Every line keeps its
// original terminator, so joining the lines reproduces the file
// byte for byte.
type RawDocument []string

// SplitLines splits text into raw lines, keeping line terminators.
// A trailing newline does not produce an empty final line.
func SplitLines(text string) RawDocument {
	if text == "" {
		return RawDocument{}
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return RawDocument(lines)
}

// Text joins the raw lines back into the full file contents.
func (r RawDocument) Text() string {
	return strings.Join(r, "")
}

// Clone returns an independent copy of the raw lines.
func (r RawDocument) Clone() RawDocument {
	out := make(RawDocument, len(r))
	copy(out, r)
	return out
}

// Key identifies an entry by its section and name.
type Key struct {
	Section string
	Name    string
}

// String returns the key in section-qualified form.
func (k Key) String() string {
	return "[" + k.Section + "] " + k.Name
}

// Edits maps entry keys to replacement values.
type Edits map[Key]string

// Entry represents a single Name=Value line parsed from the file.
type Entry struct {
	Name          string // Key name, surrounding whitespace trimmed
	Value         string // Value, surrounding whitespace trimmed
	Comment       string // Comment block collected from the lines above
	InlineComment string // Trailing comment on the same line, marker stripped
	Line          int    // Zero-based index of the line in the raw document
}

// Format returns the serialized form of the entry with value in place
// of the current one. The inline comment, when present, is kept after
// a tab gap.
func (e *Entry) Format(value string) string {
	if e.InlineComment == "" {
		return e.Name + "=" + value
	}
	return e.Name + "=" + value + "\t\t\t; " + e.InlineComment
}

// String returns the serialized form of the entry with its current value.
func (e *Entry) String() string {
	return e.Format(e.Value)
}

// Section represents a [Name] section header and the entries declared
// under it. Repeated headers with the same name stay separate sections.
type Section struct {
	Name    string   // Section name without the brackets
	Comment string   // Comment block collected from the lines above
	Line    int      // Zero-based index of the header line
	Entries []*Entry // Entries in declaration order
}

// Document is the parsed representation of an INI file. It is only
// meaningful together with the RawDocument it was parsed from, since
// every line index refers into that document.
type Document struct {
	Sections []*Section
}

// Section returns the first section with the given name, or nil.
func (d *Document) Section(name string) *Section {
	for _, s := range d.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Get returns the entry for the given section and name. When the pair
// occurs more than once the last occurrence wins.
func (d *Document) Get(section, name string) (*Entry, bool) {
	var found *Entry
	for _, s := range d.Sections {
		if s.Name != section {
			continue
		}
		for _, e := range s.Entries {
			if e.Name == name {
				found = e
			}
		}
	}
	return found, found != nil
}

// Entries returns every entry of the document in declaration order.
func (d *Document) Entries() []*Entry {
	var out []*Entry
	for _, s := range d.Sections {
		out = append(out, s.Entries...)
	}
	return out
}

// Len returns the total number of entries across all sections.
func (d *Document) Len() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Entries)
	}
	return n
}
