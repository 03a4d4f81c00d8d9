//go:build unix

package editor

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/go-ports/mmr/internal/marker"
)

// Exec replaces the current process with the editor opened on path.
// It only returns on failure.
func Exec(editor, path string) error {
	argv := Argv(editor, path)
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return marker.NewError(marker.KindExec, "exec", path, err)
	}
	// #nosec G204 -- the editor is chosen by the user via $EDITOR
	if err := syscall.Exec(bin, argv, os.Environ()); err != nil {
		return marker.NewError(marker.KindExec, "exec", path, err)
	}
	return nil
}
