// Package editor opens a marker file in the user's editor.
package editor

import (
	"fmt"
	"os"
	"strings"
)

// DefaultEditor is used when $EDITOR is unset.
const DefaultEditor = "vim"

// Launcher opens path in editor. The real implementation does not return on
// success where the platform can replace the running process.
type Launcher func(editor, path string) error

// Find returns $EDITOR, falling back to DefaultEditor.
func Find() string {
	if e := strings.TrimSpace(os.Getenv("EDITOR")); e != "" {
		return e
	}
	return DefaultEditor
}

// Argv splits editor into words and appends path, so values like
// "code --wait" work.
func Argv(editor, path string) []string {
	argv := strings.Fields(editor)
	if len(argv) == 0 {
		argv = []string{DefaultEditor}
	}
	return append(argv, path)
}

// ExitError carries a non-zero editor exit status on platforms where the
// editor runs as a child process.
type ExitError struct {
	Editor string
	Code   int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Editor, e.Code)
}
