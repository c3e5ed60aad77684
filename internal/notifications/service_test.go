package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ovisslabs/oviss-backend/pkg/clock"
	"github.com/ovisslabs/oviss-backend/pkg/enums"
	pkgerrors "github.com/ovisslabs/oviss-backend/pkg/errors"
	"github.com/ovisslabs/oviss-backend/pkg/ident"
	"github.com/ovisslabs/oviss-backend/pkg/kv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *kv.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := kv.New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate kv: %v", err)
	}
	return store
}

func newTestService(t *testing.T, store *kv.Store) Service {
	t.Helper()
	svc, err := NewService(context.Background(), ServiceParams{
		Store: store,
		Clock: clock.Fixed{Instant: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)},
		IDs:   &ident.Sequence{Prefix: "n"},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestEmitPrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestStore(t))

	svc.Emit(ctx, "u1", enums.NotificationTypeBooked, "first", "msg")
	svc.Emit(ctx, "u1", enums.NotificationTypeAssigned, "second", "msg")

	items := svc.List(ctx)
	if len(items) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(items))
	}
	if items[0].Title != "second" || items[1].Title != "first" {
		t.Fatalf("expected newest first, got %s then %s", items[0].Title, items[1].Title)
	}
	if items[0].Read {
		t.Fatal("fresh notification must start unread")
	}
}

func TestListMarksEverythingRead(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestStore(t))

	svc.Emit(ctx, "u1", enums.NotificationTypeBooked, "a", "msg")
	svc.Emit(ctx, "u1", enums.NotificationTypeCancelled, "b", "msg")

	if got := svc.UnreadCount(ctx); got != 2 {
		t.Fatalf("expected 2 unread, got %d", got)
	}

	// The returned snapshot still shows the pre-view read state.
	items := svc.List(ctx)
	if items[0].Read || items[1].Read {
		t.Fatal("snapshot must reflect state before the view")
	}

	if got := svc.UnreadCount(ctx); got != 0 {
		t.Fatalf("expected 0 unread after viewing, got %d", got)
	}
}

func TestMarkReadSingleEntry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestStore(t))

	first := svc.Emit(ctx, "u1", enums.NotificationTypeBooked, "a", "msg")
	svc.Emit(ctx, "u1", enums.NotificationTypeAssigned, "b", "msg")

	if err := svc.MarkRead(ctx, first.ID); err != nil {
		t.Fatalf("unexpected mark read error: %v", err)
	}
	if got := svc.UnreadCount(ctx); got != 1 {
		t.Fatalf("expected 1 unread, got %d", got)
	}
}

func TestMarkReadUnknownID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestStore(t))

	err := svc.MarkRead(ctx, "missing")
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestLogSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	svc := newTestService(t, store)
	svc.Emit(ctx, "u1", enums.NotificationTypeBooked, "persisted", "msg")

	reopened := newTestService(t, store)
	items := reopened.List(ctx)
	if len(items) != 1 || items[0].Title != "persisted" {
		t.Fatalf("expected restored log, got %+v", items)
	}
}
