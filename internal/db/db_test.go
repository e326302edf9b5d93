package db_test

import (
	"context"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gomate/internal/db"
)

// openTestDB opens a fresh SQLite database in a temp directory and registers
// t.Cleanup to close it.
func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("openTestDB: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// ---------------------------------------------------------------------------
// Open
// ---------------------------------------------------------------------------

func TestOpen_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("fresh database opens", func(c *qt.C) {
		d := openTestDB(t)
		c.Assert(d, qt.IsNotNil)
	})

	c.Run("values survive reopen", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "reopen.db")
		d, err := db.Open(path)
		c.Assert(err, qt.IsNil)
		c.Assert(d.Set(context.Background(), db.KeyTheme, "dark"), qt.IsNil)
		c.Assert(d.Close(), qt.IsNil)

		d, err = db.Open(path)
		c.Assert(err, qt.IsNil)
		defer d.Close()
		val, found, err := d.Get(context.Background(), db.KeyTheme)
		c.Assert(err, qt.IsNil)
		c.Assert(found, qt.IsTrue)
		c.Assert(val, qt.Equals, "dark")
	})
}

// ---------------------------------------------------------------------------
// Get / Set / Remove / MultiRemove
// ---------------------------------------------------------------------------

func TestKV_HappyPath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("get missing key returns not-found", func(c *qt.C) {
		d := openTestDB(t)
		_, found, err := d.Get(ctx, "absent")
		c.Assert(err, qt.IsNil)
		c.Assert(found, qt.IsFalse)
	})

	c.Run("set overwrites existing value", func(c *qt.C) {
		d := openTestDB(t)
		c.Assert(d.Set(ctx, "k", "v1"), qt.IsNil)
		c.Assert(d.Set(ctx, "k", "v2"), qt.IsNil)

		val, _, err := d.Get(ctx, "k")
		c.Assert(err, qt.IsNil)
		c.Assert(val, qt.Equals, "v2")
	})

	c.Run("remove deletes key and tolerates absent keys", func(c *qt.C) {
		d := openTestDB(t)
		c.Assert(d.Set(ctx, "k", "v"), qt.IsNil)
		c.Assert(d.Remove(ctx, "k"), qt.IsNil)
		c.Assert(d.Remove(ctx, "k"), qt.IsNil)

		_, found, err := d.Get(ctx, "k")
		c.Assert(err, qt.IsNil)
		c.Assert(found, qt.IsFalse)
	})

	c.Run("multi remove deletes only the named keys", func(c *qt.C) {
		d := openTestDB(t)
		for _, k := range []string{"a", "b", "c"} {
			c.Assert(d.Set(ctx, k, k), qt.IsNil)
		}
		c.Assert(d.MultiRemove(ctx, "a", "c", "missing"), qt.IsNil)

		keys, err := d.Keys(ctx)
		c.Assert(err, qt.IsNil)
		c.Assert(keys, qt.DeepEquals, []string{"b"})
	})

	c.Run("multi remove with no keys is a no-op", func(c *qt.C) {
		d := openTestDB(t)
		c.Assert(d.MultiRemove(ctx), qt.IsNil)
	})
}

// ---------------------------------------------------------------------------
// GetJSON / SetJSON
// ---------------------------------------------------------------------------

func TestJSON_HappyPath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("round trip a string slice", func(c *qt.C) {
		d := openTestDB(t)
		c.Assert(db.SetJSON(ctx, d, db.KeyFavorites, []string{"1", "3"}), qt.IsNil)

		var got []string
		found, err := db.GetJSON(ctx, d, db.KeyFavorites, &got)
		c.Assert(err, qt.IsNil)
		c.Assert(found, qt.IsTrue)
		c.Assert(got, qt.DeepEquals, []string{"1", "3"})
	})

	c.Run("absent key leaves target untouched", func(c *qt.C) {
		d := openTestDB(t)
		got := []string{"keep"}
		found, err := db.GetJSON(ctx, d, db.KeyFavorites, &got)
		c.Assert(err, qt.IsNil)
		c.Assert(found, qt.IsFalse)
		c.Assert(got, qt.DeepEquals, []string{"keep"})
	})
}

func TestJSON_FailurePath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("corrupt value is reported as error", func(c *qt.C) {
		d := openTestDB(t)
		c.Assert(d.Set(ctx, db.KeyFavorites, "{not json"), qt.IsNil)

		var got []string
		found, err := db.GetJSON(ctx, d, db.KeyFavorites, &got)
		c.Assert(err, qt.IsNotNil)
		c.Assert(found, qt.IsFalse)
	})

	c.Run("unencodable value is reported as error", func(c *qt.C) {
		d := openTestDB(t)
		err := db.SetJSON(ctx, d, "bad", map[string]any{"ch": make(chan int)})
		c.Assert(err, qt.IsNotNil)
	})
}

func TestFailure_ReturnsGenericError(t *testing.T) {
	c := qt.New(t)
	err := db.Failure("Toggle", db.KeyFavorites, context.DeadlineExceeded)
	c.Assert(err, qt.ErrorIs, db.ErrStorage)
	c.Assert(err.Error(), qt.Not(qt.Contains), "deadline")
}

// ---------------------------------------------------------------------------
// Vectors
// ---------------------------------------------------------------------------

func TestVectors_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("no dim stored returns not-found", func(c *qt.C) {
		d := openTestDB(t)
		_, found, err := d.GetEmbeddingDim()
		c.Assert(err, qt.IsNil)
		c.Assert(found, qt.IsFalse)
	})

	c.Run("EnsureVecTable creates table on first call", func(c *qt.C) {
		d := openTestDB(t)
		c.Assert(d.EnsureVecTable(4), qt.IsNil)

		ok, err := d.HasVecTable()
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsTrue)
	})

	c.Run("EnsureVecTable returns ErrDimensionMismatch on mismatch", func(c *qt.C) {
		d := openTestDB(t)
		c.Assert(d.EnsureVecTable(4), qt.IsNil)
		c.Assert(d.EnsureVecTable(8), qt.ErrorIs, db.ErrDimensionMismatch)
	})

	c.Run("nearest neighbour comes first", func(c *qt.C) {
		d := openTestDB(t)
		c.Assert(d.EnsureVecTable(4), qt.IsNil)
		c.Assert(d.InsertVector(1, []float32{1, 0, 0, 0}), qt.IsNil)
		c.Assert(d.InsertVector(2, []float32{0, 1, 0, 0}), qt.IsNil)
		c.Assert(d.InsertVector(3, []float32{0.9, 0.1, 0, 0}), qt.IsNil)

		n, err := d.CountVectors()
		c.Assert(err, qt.IsNil)
		c.Assert(n, qt.Equals, 3)

		hits, err := d.VectorSearch([]float32{1, 0, 0, 0}, 2)
		c.Assert(err, qt.IsNil)
		c.Assert(hits, qt.HasLen, 2)
		c.Assert(hits[0].RowID, qt.Equals, int64(1))
		c.Assert(hits[1].RowID, qt.Equals, int64(3))
	})

	c.Run("search without table returns nothing", func(c *qt.C) {
		d := openTestDB(t)
		hits, err := d.VectorSearch([]float32{1, 0}, 3)
		c.Assert(err, qt.IsNil)
		c.Assert(hits, qt.HasLen, 0)
	})

	c.Run("drop removes the table", func(c *qt.C) {
		d := openTestDB(t)
		c.Assert(d.EnsureVecTable(4), qt.IsNil)
		c.Assert(d.DropVecTable(), qt.IsNil)
		ok, err := d.HasVecTable()
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsFalse)
	})
}
