// Package service wires configuration, marker resolution, redaction and the
// marker index into the operations the CLI and MCP server expose.
package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ports/mmr/internal/config"
	"github.com/go-ports/mmr/internal/editor"
	"github.com/go-ports/mmr/internal/index"
	"github.com/go-ports/mmr/internal/marker"
	"github.com/go-ports/mmr/internal/redaction"
)

// Options customises a Service. Zero values select the real clock and editor.
type Options struct {
	Now    func() time.Time
	Launch editor.Launcher
}

// Service orchestrates all reminder operations.
type Service struct {
	Home   string
	Config *config.Config

	now    func() time.Time
	launch editor.Launcher

	// Opened on first use so commands that touch no marker leave home alone.
	idx    *index.Index
	idxErr error
	scrub  *redaction.Scrubber
}

// New initialises a Service rooted at home.
// If home is empty it is resolved via config.GetHome. Only the config is read
// here; the index and the ignore file are opened when first needed.
func New(home string, opts Options) (*Service, error) {
	if home == "" {
		home = config.GetHome()
	}

	cfg, err := config.Load(filepath.Join(home, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}

	s := &Service{
		Home:   home,
		Config: cfg,
		now:    opts.Now,
		launch: opts.Launch,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.launch == nil {
		s.launch = editor.Exec
	}
	if !cfg.Index {
		s.idxErr = index.ErrDisabled
	}
	return s, nil
}

// index opens index.db on first call and memoizes the outcome.
func (s *Service) index() (*index.Index, error) {
	if s.idx != nil || s.idxErr != nil {
		return s.idx, s.idxErr
	}
	if err := os.MkdirAll(s.Home, 0o755); err != nil {
		s.idxErr = fmt.Errorf("service.index: create home: %w", err)
		return nil, s.idxErr
	}
	ix, err := index.Open(filepath.Join(s.Home, index.FileName))
	if err != nil {
		s.idxErr = fmt.Errorf("service.index: %w", err)
		return nil, s.idxErr
	}
	s.idx = ix
	return ix, nil
}

// scrubber loads .mmrignore on first call. A broken ignore file is logged and
// only the built-in token shapes apply.
func (s *Service) scrubber() *redaction.Scrubber {
	if s.scrub != nil {
		return s.scrub
	}
	sc, err := redaction.Load(filepath.Join(s.Home, redaction.IgnoreFileName))
	if err != nil {
		slog.Warn("failed to load .mmrignore", "err", err)
		sc = redaction.NewScrubber()
	}
	s.scrub = sc
	return sc
}

// Close releases all resources held by the service.
func (s *Service) Close() error {
	if s.idx == nil {
		return nil
	}
	err := s.idx.Close()
	s.idx, s.idxErr = nil, index.ErrDisabled
	return err
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

// Resolve returns the marker path for dir, or for the working directory when
// dir is empty.
func (s *Service) Resolve(dir string, recursive bool) (string, error) {
	if dir == "" {
		return marker.ResolveCwd(recursive)
	}
	return marker.Resolve(dir, recursive)
}

// ---------------------------------------------------------------------------
// Print / Remind
// ---------------------------------------------------------------------------

// PrintOptions controls Print.
type PrintOptions struct {
	Subject bool // first line only
	Touch   bool // reset the marker's mtime afterwards
}

// Print writes the marker at path to w unconditionally.
func (s *Service) Print(w io.Writer, path string, opts PrintOptions) error {
	if err := marker.Print(w, path, opts.Subject); err != nil {
		return err
	}
	now := s.now()
	if opts.Touch {
		if err := marker.Touch(path, now); err != nil {
			return err
		}
	}
	s.recordShown(path, now)
	return nil
}

// RemindOptions controls Remind.
type RemindOptions struct {
	MinAge  time.Duration
	Subject bool
	Touch   bool
}

// Remind prints the marker at path only when it is older than opts.MinAge.
// A missing marker is not an error. The bool reports whether anything was
// printed.
func (s *Service) Remind(w io.Writer, path string, opts RemindOptions) (bool, error) {
	due, err := marker.ShouldPrint(path, opts.MinAge, s.now())
	if err != nil || !due {
		return false, err
	}
	if err := s.Print(w, path, PrintOptions{Subject: opts.Subject, Touch: opts.Touch}); err != nil {
		return false, err
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Add / Edit
// ---------------------------------------------------------------------------

// Add appends words as one line to the marker at path and returns the line
// written. With redact set, token shapes and .mmrignore matches are masked.
func (s *Service) Add(path string, words []string, redact bool) (string, error) {
	if len(words) == 0 {
		return "", errors.New("add: nothing to add")
	}
	line := strings.Join(words, " ")
	if redact {
		line, _ = s.scrubber().Scrub(line)
	}
	if err := marker.AppendLine(path, line); err != nil {
		return "", err
	}
	s.recordSeen(path)
	return line, nil
}

// Edit opens path in the user's editor. With the real launcher this does not
// return on success.
func (s *Service) Edit(path string) error {
	// Recorded up front and the index closed: a successful exec never comes
	// back to run deferred calls.
	s.recordSeen(path)
	_ = s.Close()
	return s.launch(editor.Find(), path)
}

// ---------------------------------------------------------------------------
// Index views
// ---------------------------------------------------------------------------

// Entry is an indexed marker joined with its current state on disk.
type Entry struct {
	index.Entry
	Exists  bool
	ModTime time.Time
	Age     time.Duration
	Subject string
}

// List returns indexed markers with their on-disk state.
func (s *Service) List() ([]Entry, error) {
	ix, err := s.index()
	if err != nil {
		return nil, err
	}
	rows, err := ix.List()
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		e := Entry{Entry: r}
		fi, err := os.Stat(r.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// reported as missing; Prune drops it
		case err != nil:
			slog.Warn("list: stat marker", "path", r.Path, "err", err)
		case fi.Mode().IsRegular():
			e.Exists = true
			e.ModTime = fi.ModTime()
			if age, err := marker.Age(r.Path, e.ModTime, now); err == nil {
				e.Age = age
			}
			if subj, err := marker.Subject(r.Path); err == nil {
				e.Subject = subj
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// Prune drops index entries whose marker file no longer exists.
func (s *Service) Prune() (int, error) {
	ix, err := s.index()
	if err != nil {
		return 0, err
	}
	return ix.Prune(func(path string) bool {
		fi, err := os.Stat(path)
		return err == nil && fi.Mode().IsRegular()
	})
}

// ---------------------------------------------------------------------------
// Index bookkeeping (never fatal)
// ---------------------------------------------------------------------------

func (s *Service) recordSeen(path string) {
	ix, err := s.index()
	if errors.Is(err, index.ErrDisabled) {
		return
	}
	if err == nil {
		err = ix.Touch(path, s.now())
	}
	if err != nil {
		slog.Warn("index: record marker", "path", path, "err", err)
	}
}

func (s *Service) recordShown(path string, at time.Time) {
	ix, err := s.index()
	if errors.Is(err, index.ErrDisabled) {
		return
	}
	if err == nil {
		err = ix.MarkShown(path, at)
	}
	if err != nil {
		slog.Warn("index: record shown", "path", path, "err", err)
	}
}
