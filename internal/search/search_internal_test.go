package search

// White-box tests for the score normalization and id helpers, whose
// intermediate values are hidden behind MergeResults and Related.

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gomate/internal/models"
)

func res(id string, score float64) Result {
	return Result{Destination: models.Destination{ID: id}, Score: score}
}

func TestNormalizeScores(t *testing.T) {
	c := qt.New(t)

	c.Run("empty slice is a no-op", func(c *qt.C) {
		c.Assert(normalizeScores(nil), qt.HasLen, 0)
	})

	c.Run("divided by max without touching the input", func(c *qt.C) {
		in := []Result{res("1", 10), res("2", 5)}
		out := normalizeScores(in)
		c.Assert(out[0].Score, qt.Equals, 1.0)
		c.Assert(out[1].Score, qt.Equals, 0.5)
		c.Assert(in[0].Score, qt.Equals, 10.0)
	})

	c.Run("all-zero scores stay zero", func(c *qt.C) {
		out := normalizeScores([]Result{res("1", 0), res("2", 0)})
		c.Assert(out[0].Score, qt.Equals, 0.0)
		c.Assert(out[1].Score, qt.Equals, 0.0)
	})
}

func TestRowID(t *testing.T) {
	c := qt.New(t)

	n, err := rowID("8")
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, int64(8))

	_, err = rowID("sigiriya")
	c.Assert(err, qt.ErrorMatches, `destination id "sigiriya" is not numeric`)
}

func TestClamp(t *testing.T) {
	c := qt.New(t)
	cases := []struct{ limit, n, want int }{
		{0, 5, 5},
		{-1, 5, 5},
		{3, 5, 3},
		{10, 5, 5},
	}
	for _, tc := range cases {
		c.Assert(clamp(tc.limit, tc.n), qt.Equals, tc.want)
	}
}
