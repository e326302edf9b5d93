package notifications_test

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-ports/gomate/internal/db"
	"github.com/go-ports/gomate/internal/db/dbtest"
	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/notifications"
)

var fixedNow = func() time.Time { return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC) }

func newLog(c *qt.C, kv db.KV, persist bool) *notifications.Log {
	l := notifications.New(kv, notifications.Options{Persist: persist, Now: fixedNow})
	c.Assert(l.Load(context.Background()), qt.IsNil)
	return l
}

func add(c *qt.C, l *notifications.Log, title string) models.Notification {
	n, err := l.Add(context.Background(), models.NotificationInput{
		Type:    models.NotificationFavoriteAdded,
		Title:   title,
		Message: title + " message",
		Data:    map[string]string{"destinationId": "1"},
	})
	c.Assert(err, qt.IsNil)
	return n
}

// ---------------------------------------------------------------------------
// Add / List
// ---------------------------------------------------------------------------

func TestAdd_HappyPath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("new entries are unread and newest first", func(c *qt.C) {
		l := newLog(c, dbtest.Open(t), false)
		first := add(c, l, "first")
		second := add(c, l, "second")

		c.Assert(first.Read, qt.IsFalse)
		c.Assert(first.Timestamp.Equal(fixedNow()), qt.IsTrue)
		c.Assert(second.ID > first.ID, qt.IsTrue)

		list := l.List()
		c.Assert(list, qt.HasLen, 2)
		c.Assert(list[0].Title, qt.Equals, "second")
		c.Assert(list[1].Title, qt.Equals, "first")
		c.Assert(l.UnreadCount(), qt.Equals, 2)
	})

	c.Run("list returns copies", func(c *qt.C) {
		l := newLog(c, dbtest.Open(t), false)
		add(c, l, "only")
		list := l.List()
		list[0].Data["destinationId"] = "changed"
		c.Assert(l.List()[0].Data["destinationId"], qt.Equals, "1")
	})

	c.Run("persisted log survives reload", func(c *qt.C) {
		kv := dbtest.Open(t)
		l := newLog(c, kv, true)
		add(c, l, "a")
		add(c, l, "b")
		c.Assert(l.MarkAsRead(ctx, l.List()[1].ID), qt.IsNil)

		reloaded := newLog(c, kv, true)
		c.Assert(reloaded.List(), qt.CmpEquals(cmpopts.EquateEmpty()), l.List())
		c.Assert(reloaded.UnreadCount(), qt.Equals, 1)
	})

	c.Run("ephemeral log never touches storage", func(c *qt.C) {
		kv := dbtest.Open(t)
		l := newLog(c, kv, false)
		add(c, l, "a")

		_, found, err := kv.Get(ctx, db.KeyNotifications)
		c.Assert(err, qt.IsNil)
		c.Assert(found, qt.IsFalse)
		c.Assert(newLog(c, kv, false).List(), qt.HasLen, 0)
	})
}

func TestAdd_FailurePath(t *testing.T) {
	c := qt.New(t)

	c.Run("storage failure keeps entry in memory and returns generic error", func(c *qt.C) {
		kv := dbtest.NewFlaky(dbtest.Open(t))
		l := newLog(c, kv, true)
		kv.Fail(true)

		_, err := l.Add(context.Background(), models.NotificationInput{Title: "x"})
		c.Assert(err, qt.ErrorIs, db.ErrStorage)
		c.Assert(l.List(), qt.HasLen, 1)
	})

	c.Run("load failure leaves log empty", func(c *qt.C) {
		kv := dbtest.NewFlaky(dbtest.Open(t))
		kv.FailGet = true
		l := notifications.New(kv, notifications.Options{Persist: true})
		c.Assert(l.Load(context.Background()), qt.ErrorIs, db.ErrStorage)
		c.Assert(l.List(), qt.HasLen, 0)
	})
}

// ---------------------------------------------------------------------------
// MarkAsRead / MarkAllAsRead / Clear
// ---------------------------------------------------------------------------

func TestReadState(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("mark as read is idempotent", func(c *qt.C) {
		l := newLog(c, dbtest.Open(t), true)
		n := add(c, l, "a")
		add(c, l, "b")

		c.Assert(l.MarkAsRead(ctx, n.ID), qt.IsNil)
		c.Assert(l.MarkAsRead(ctx, n.ID), qt.IsNil)
		c.Assert(l.UnreadCount(), qt.Equals, 1)
	})

	c.Run("unknown id is a no-op", func(c *qt.C) {
		l := newLog(c, dbtest.Open(t), true)
		add(c, l, "a")
		c.Assert(l.MarkAsRead(ctx, "nope"), qt.IsNil)
		c.Assert(l.Clear(ctx, "nope"), qt.IsNil)
		c.Assert(l.List(), qt.HasLen, 1)
		c.Assert(l.UnreadCount(), qt.Equals, 1)
	})

	c.Run("mark all as read yields zero unread for any list", func(c *qt.C) {
		for _, count := range []int{0, 1, 5} {
			l := newLog(c, dbtest.Open(t), true)
			for i := 0; i < count; i++ {
				add(c, l, "n")
			}
			c.Assert(l.MarkAllAsRead(ctx), qt.IsNil)
			c.Assert(l.UnreadCount(), qt.Equals, 0)
		}
	})

	c.Run("clear removes a single entry", func(c *qt.C) {
		l := newLog(c, dbtest.Open(t), true)
		a := add(c, l, "a")
		add(c, l, "b")
		c.Assert(l.Clear(ctx, a.ID), qt.IsNil)

		list := l.List()
		c.Assert(list, qt.HasLen, 1)
		c.Assert(list[0].Title, qt.Equals, "b")
	})

	c.Run("clear all empties the log", func(c *qt.C) {
		kv := dbtest.Open(t)
		l := newLog(c, kv, true)
		add(c, l, "a")
		c.Assert(l.ClearAll(ctx), qt.IsNil)
		c.Assert(l.List(), qt.HasLen, 0)
		c.Assert(newLog(c, kv, true).List(), qt.HasLen, 0)
	})

	c.Run("reset clears memory but not storage", func(c *qt.C) {
		kv := dbtest.Open(t)
		l := newLog(c, kv, true)
		add(c, l, "a")
		l.Reset()
		c.Assert(l.List(), qt.HasLen, 0)
		c.Assert(newLog(c, kv, true).List(), qt.HasLen, 1)
	})
}
