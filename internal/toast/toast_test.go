package toast

import (
	"context"
	"testing"
	"time"
)

func TestQueue_ShowDrain(t *testing.T) {
	q := NewQueue(5, time.Minute)
	ctx := WithClient(context.Background(), "c1")

	q.Show(ctx, Toast{Title: "Settings saved", Description: "Your notification preferences have been updated."})
	q.Show(WithClient(context.Background(), "c2"), Toast{Title: "other"})

	got := q.Drain("c1")
	if len(got) != 1 || got[0].Title != "Settings saved" {
		t.Fatalf("Drain = %+v", got)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if len(q.Drain("c1")) != 0 {
		t.Error("second drain should be empty")
	}
	if len(q.Drain("c2")) != 1 {
		t.Error("toasts leaked between clients")
	}
}

func TestQueue_NoClientDropped(t *testing.T) {
	q := NewQueue(5, time.Minute)
	if err := q.Show(context.Background(), Toast{Title: "x"}); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if len(q.Drain("")) != 0 {
		t.Error("toast without client should be dropped")
	}
}

func TestQueue_Max(t *testing.T) {
	q := NewQueue(2, time.Minute)
	ctx := WithClient(context.Background(), "c1")
	for _, title := range []string{"a", "b", "c"} {
		q.Show(ctx, Toast{Title: title})
	}
	got := q.Drain("c1")
	if len(got) != 2 || got[0].Title != "b" || got[1].Title != "c" {
		t.Errorf("Drain = %+v, want [b c]", got)
	}
}

func TestQueue_Expired(t *testing.T) {
	q := NewQueue(5, time.Minute)
	ctx := WithClient(context.Background(), "c1")
	q.Show(ctx, Toast{Title: "old", CreatedAt: time.Now().Add(-2 * time.Minute)})
	if len(q.Drain("c1")) != 0 {
		t.Error("expired toast returned")
	}
}

func TestLogged_ForwardsToNext(t *testing.T) {
	q := NewQueue(5, time.Minute)
	l := Logged{Next: q}
	l.Show(WithClient(context.Background(), "c1"), Toast{Title: "hi"})
	if len(q.Drain("c1")) != 1 {
		t.Error("Logged did not forward")
	}
}

func TestQueue_Cleanup(t *testing.T) {
	q := NewQueue(5, time.Minute)
	stale := WithClient(context.Background(), "gone")
	fresh := WithClient(context.Background(), "active")

	q.Show(stale, Toast{Title: "old", CreatedAt: time.Now().Add(-2 * time.Minute)})
	q.Show(fresh, Toast{Title: "old", CreatedAt: time.Now().Add(-2 * time.Minute)})
	q.Show(fresh, Toast{Title: "new"})

	q.Cleanup()

	if q.Len() != 1 {
		t.Fatalf("clients after cleanup = %d, want 1", q.Len())
	}
	got := q.Drain("active")
	if len(got) != 1 || got[0].Title != "new" {
		t.Errorf("Drain = %+v, want only the fresh toast", got)
	}
}
