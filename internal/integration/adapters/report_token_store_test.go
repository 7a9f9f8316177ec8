package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/veresiye/backend/internal/domain/error"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestReportTokenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("issued token resolves to the counterparty", func(t *testing.T) {
		_, client := newTestStore(t)
		store := NewReportTokenStore(client)
		counterpartyID := uuid.New()

		token, err := store.Issue(ctx, counterpartyID, time.Hour)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}
		if token == "" {
			t.Fatal("expected non-empty token")
		}

		resolved, err := store.Resolve(ctx, token)
		if err != nil {
			t.Fatalf("failed to resolve token: %v", err)
		}
		if resolved != counterpartyID {
			t.Errorf("expected %s, got %s", counterpartyID, resolved)
		}
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		_, client := newTestStore(t)
		store := NewReportTokenStore(client)

		_, err := store.Resolve(ctx, "no-such-token")
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token is invalid", func(t *testing.T) {
		mr, client := newTestStore(t)
		store := NewReportTokenStore(client)

		token, err := store.Issue(ctx, uuid.New(), time.Minute)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}

		mr.FastForward(2 * time.Minute)

		_, err = store.Resolve(ctx, token)
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken after expiry, got %v", err)
		}
	})

	t.Run("two issues produce distinct tokens", func(t *testing.T) {
		_, client := newTestStore(t)
		store := NewReportTokenStore(client)
		counterpartyID := uuid.New()

		first, err := store.Issue(ctx, counterpartyID, time.Hour)
		if err != nil {
			t.Fatalf("failed to issue first token: %v", err)
		}
		second, err := store.Issue(ctx, counterpartyID, time.Hour)
		if err != nil {
			t.Fatalf("failed to issue second token: %v", err)
		}
		if first == second {
			t.Error("expected distinct tokens for separate issues")
		}
	})
}
