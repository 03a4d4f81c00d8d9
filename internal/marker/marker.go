// Package marker locates, reads and writes the per-directory .mmr reminder file.
package marker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the marker file looked up in each directory.
const FileName = ".mmr"

// DefaultMinAge is how old a marker must be before remind prints it.
const DefaultMinAge = 2700 * time.Second

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

// Resolve returns the marker path for startDir.
//
// With recursive false it is always startDir/.mmr. Otherwise the nearest
// directory at or above startDir holding a regular .mmr file wins, the
// filesystem root included. When no ancestor has one, startDir/.mmr is
// returned so callers can create it there.
func Resolve(startDir string, recursive bool) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", ioError("resolve", startDir, err)
	}
	start := filepath.Join(abs, FileName)
	if !recursive {
		return start, nil
	}
	for dir := abs; ; {
		candidate := filepath.Join(dir, FileName)
		if isFile(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

// ResolveCwd is Resolve starting from the process working directory.
func ResolveCwd(recursive bool) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", ioError("getwd", "", err)
	}
	return Resolve(cwd, recursive)
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// ---------------------------------------------------------------------------
// Age gate
// ---------------------------------------------------------------------------

// ShouldPrint reports whether the marker at path is older than minAge.
// A missing path, or one that is not a regular file, yields false and no error.
// Equal age does not count as older.
func ShouldPrint(path string, minAge time.Duration, now time.Time) (bool, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, ioError("stat", path, err)
	}
	if !fi.Mode().IsRegular() {
		return false, nil
	}
	age, err := Age(path, fi.ModTime(), now)
	if err != nil {
		return false, err
	}
	return age > minAge, nil
}

// Age returns now - modTime. A modification time after now is a clock error.
func Age(path string, modTime, now time.Time) (time.Duration, error) {
	if modTime.After(now) {
		return 0, NewError(KindClock, "age", path,
			fmt.Errorf("modification time %s is %s in the future",
				modTime.Format(time.RFC3339), modTime.Sub(now)))
	}
	return now.Sub(modTime), nil
}

// ---------------------------------------------------------------------------
// Print / Touch / Append
// ---------------------------------------------------------------------------

// Print copies the marker at path to w. With subjectOnly set only the bytes up
// to and including the first newline are written.
func Print(w io.Writer, path string, subjectOnly bool) error {
	f, err := os.Open(path)
	if err != nil {
		return ioError("print", path, err)
	}
	defer f.Close()

	var buf []byte
	if subjectOnly {
		buf, err = ReadSubject(f)
	} else {
		buf, err = io.ReadAll(f)
	}
	if err != nil {
		return ioError("print", path, err)
	}
	if _, err := w.Write(buf); err != nil {
		return ioError("print", path, err)
	}
	return nil
}

// ReadSubject reads r up to and including the first '\n'.
// Content without a newline is returned whole.
func ReadSubject(r io.Reader) ([]byte, error) {
	buf, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf, nil
}

// Subject returns the first line of the marker at path without its newline.
func Subject(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", ioError("subject", path, err)
	}
	defer f.Close()
	buf, err := ReadSubject(f)
	if err != nil {
		return "", ioError("subject", path, err)
	}
	return strings.TrimRight(string(buf), "\r\n"), nil
}

// Touch sets the marker's access and modification times to now, re-arming the
// age gate.
func Touch(path string, now time.Time) error {
	if err := os.Chtimes(path, now, now); err != nil {
		return ioError("touch", path, err)
	}
	return nil
}

// Append joins words with single spaces and writes them as a new line,
// creating the marker if needed.
func Append(path string, words []string) error {
	if len(words) == 0 {
		return errors.New("marker.Append: nothing to add")
	}
	return AppendLine(path, strings.Join(words, " "))
}

// AppendLine writes line plus a trailing newline to the end of the marker.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G302 -- reminder notes are plain user text
	if err != nil {
		return ioError("append", path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return ioError("append", path, err)
	}
	if err := f.Close(); err != nil {
		return ioError("append", path, err)
	}
	return nil
}
