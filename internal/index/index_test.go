package index_test

import (
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/mmr/internal/index"
)

// openTestIndex opens a fresh index in a temp directory and registers
// t.Cleanup to close it.
func openTestIndex(t *testing.T) *index.Index {
	t.Helper()
	ix, err := index.Open(filepath.Join(t.TempDir(), index.FileName))
	if err != nil {
		t.Fatalf("openTestIndex: %v", err)
	}
	t.Cleanup(func() { _ = ix.Close() })
	return ix
}

var t0 = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// Open
// ---------------------------------------------------------------------------

func TestOpen_HappyPath(t *testing.T) {
	c := qt.New(t)
	ix := openTestIndex(t)
	c.Assert(filepath.Base(ix.Path()), qt.Equals, index.FileName)

	entries, err := ix.List()
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 0)
}

func TestOpen_Reopen(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), index.FileName)

	ix, err := index.Open(path)
	c.Assert(err, qt.IsNil)
	c.Assert(ix.Touch("/a/.mmr", t0), qt.IsNil)
	c.Assert(ix.Close(), qt.IsNil)

	ix, err = index.Open(path)
	c.Assert(err, qt.IsNil)
	defer ix.Close()
	entries, err := ix.List()
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 1)
}

// ---------------------------------------------------------------------------
// Touch / MarkShown
// ---------------------------------------------------------------------------

func TestTouch_HappyPath(t *testing.T) {
	c := qt.New(t)
	ix := openTestIndex(t)

	c.Assert(ix.Touch("/a/.mmr", t0), qt.IsNil)
	c.Assert(ix.Touch("/a/.mmr", t0.Add(time.Hour)), qt.IsNil)

	e, ok, err := ix.Get("/a/.mmr")
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
	c.Assert(e.FirstSeen.Equal(t0), qt.IsTrue)
	c.Assert(e.LastSeen.Equal(t0.Add(time.Hour)), qt.IsTrue)
	c.Assert(e.LastShown, qt.IsNil)
}

func TestMarkShown_HappyPath(t *testing.T) {
	c := qt.New(t)
	ix := openTestIndex(t)

	c.Run("unknown path is inserted", func(c *qt.C) {
		c.Assert(ix.MarkShown("/b/.mmr", t0), qt.IsNil)
		e, ok, err := ix.Get("/b/.mmr")
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsTrue)
		c.Assert(e.LastShown, qt.IsNotNil)
		c.Assert(e.LastShown.Equal(t0), qt.IsTrue)
	})

	c.Run("known path keeps first_seen", func(c *qt.C) {
		c.Assert(ix.Touch("/c/.mmr", t0), qt.IsNil)
		c.Assert(ix.MarkShown("/c/.mmr", t0.Add(time.Minute)), qt.IsNil)
		e, _, err := ix.Get("/c/.mmr")
		c.Assert(err, qt.IsNil)
		c.Assert(e.FirstSeen.Equal(t0), qt.IsTrue)
		c.Assert(e.LastShown.Equal(t0.Add(time.Minute)), qt.IsTrue)
	})
}

// ---------------------------------------------------------------------------
// List / Get / Remove / Prune
// ---------------------------------------------------------------------------

func TestList_Order(t *testing.T) {
	c := qt.New(t)
	ix := openTestIndex(t)

	c.Assert(ix.Touch("/old/.mmr", t0), qt.IsNil)
	c.Assert(ix.Touch("/new/.mmr", t0.Add(2*time.Hour)), qt.IsNil)
	c.Assert(ix.Touch("/mid/.mmr", t0.Add(time.Hour)), qt.IsNil)

	entries, err := ix.List()
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 3)
	c.Assert(entries[0].Path, qt.Equals, "/new/.mmr")
	c.Assert(entries[1].Path, qt.Equals, "/mid/.mmr")
	c.Assert(entries[2].Path, qt.Equals, "/old/.mmr")
}

func TestGet_Missing(t *testing.T) {
	c := qt.New(t)
	ix := openTestIndex(t)
	_, ok, err := ix.Get("/nowhere/.mmr")
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}

func TestRemove(t *testing.T) {
	c := qt.New(t)
	ix := openTestIndex(t)
	c.Assert(ix.Touch("/a/.mmr", t0), qt.IsNil)

	ok, err := ix.Remove("/a/.mmr")
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)

	ok, err = ix.Remove("/a/.mmr")
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}

func TestPrune(t *testing.T) {
	c := qt.New(t)
	ix := openTestIndex(t)
	for _, p := range []string{"/keep/.mmr", "/gone/.mmr", "/also-gone/.mmr"} {
		c.Assert(ix.Touch(p, t0), qt.IsNil)
	}

	n, err := ix.Prune(func(path string) bool { return path == "/keep/.mmr" })
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 2)

	entries, err := ix.List()
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 1)
	c.Assert(entries[0].Path, qt.Equals, "/keep/.mmr")
}
