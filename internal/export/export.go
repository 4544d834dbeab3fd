package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"ckpecfg/pkg/ini"
)

// Markdown renders the parsed document as reference documentation.
// Every section becomes a heading followed by its comment block, every
// entry a table row with its value and comments. The output depends
// only on the document, so repeated exports diff cleanly.
func Markdown(title string, doc *ini.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", title)
	for _, sec := range doc.Sections {
		fmt.Fprintf(&b, "\n## [%s]\n", sec.Name)
		if sec.Comment != "" {
			b.WriteString("\n")
			for _, line := range strings.Split(sec.Comment, "\n") {
				fmt.Fprintf(&b, "> %s\n", line)
			}
		}
		if len(sec.Entries) == 0 {
			continue
		}
		b.WriteString("\n| Key | Value | Comment |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, e := range sec.Entries {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(e.Name), cell(e.Value), cell(e.Comment))
		}
	}
	return b.String()
}

// HTML converts the markdown rendering to a standalone HTML fragment.
func HTML(title string, doc *ini.Document) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(title, doc)), &buf); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}

// cell makes text safe inside a one-line table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", "<br>")
}
