package ini

import "fmt"

// MismatchError reports an entry whose recorded line index does not
// exist in the raw document it is being written back to. It means the
// model is paired with the wrong raw document.
type MismatchError struct {
	Section string // Section the entry belongs to
	Name    string // Entry name
	Line    int    // Recorded zero-based line index
	Lines   int    // Number of lines in the raw document
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("entry [%s] %s: line %d outside document of %d lines", e.Section, e.Name, e.Line, e.Lines)
}
