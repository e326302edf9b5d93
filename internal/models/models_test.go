package models_test

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gomate/internal/models"
)

func TestIDSource_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("id is the millisecond timestamp", func(c *qt.C) {
		at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		src := models.NewIDSource(func() time.Time { return at })
		id, ts := src.Next()
		c.Assert(id, qt.Equals, strconv.FormatInt(at.UnixMilli(), 10))
		c.Assert(ts.Equal(at), qt.IsTrue)
	})

	c.Run("ids within one millisecond stay strictly increasing", func(c *qt.C) {
		at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		src := models.NewIDSource(func() time.Time { return at })
		var prev int64
		for i := 0; i < 5; i++ {
			id, _ := src.Next()
			n, err := strconv.ParseInt(id, 10, 64)
			c.Assert(err, qt.IsNil)
			c.Assert(n > prev, qt.IsTrue)
			prev = n
		}
	})

	c.Run("nil clock falls back to wall time", func(c *qt.C) {
		src := models.NewIDSource(nil)
		id, ts := src.Next()
		c.Assert(id, qt.Not(qt.Equals), "")
		c.Assert(ts.IsZero(), qt.IsFalse)
	})
}

func TestUserJSON_OmitsEmptyOptionalFields(t *testing.T) {
	c := qt.New(t)

	b, err := json.Marshal(models.User{ID: "1", Name: "Jane", Email: "jane@example.com"})
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, `{"id":"1","name":"Jane","email":"jane@example.com"}`)
}
