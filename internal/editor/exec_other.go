//go:build !unix

package editor

import (
	"errors"
	"os"
	"os/exec"

	"github.com/go-ports/mmr/internal/marker"
)

// Exec runs the editor on path and waits for it. A non-zero exit status comes
// back as *ExitError so the caller can propagate it.
func Exec(editor, path string) error {
	argv := Argv(editor, path)
	cmd := exec.Command(argv[0], argv[1:]...) // #nosec G204 -- the editor is chosen by the user via $EDITOR
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Editor: argv[0], Code: exitErr.ExitCode()}
	}
	if err != nil {
		return marker.NewError(marker.KindExec, "exec", path, err)
	}
	return nil
}
