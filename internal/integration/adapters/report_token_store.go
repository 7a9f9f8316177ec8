package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/veresiye/backend/internal/application/adapter"
	domainerror "github.com/veresiye/backend/internal/domain/error"
)

// reportTokenKeyPrefix namespaces share tokens in Redis.
const reportTokenKeyPrefix = "report:share:"

// reportTokenStore implements adapter.ReportTokenStore on Redis. Expiry is
// delegated to Redis TTLs; there is no sweep and no delete path.
type reportTokenStore struct {
	client *redis.Client
}

// NewReportTokenStore creates a new report token store instance.
func NewReportTokenStore(client *redis.Client) adapter.ReportTokenStore {
	return &reportTokenStore{
		client: client,
	}
}

// Issue stores a fresh opaque token mapping to the counterparty ID.
func (s *reportTokenStore) Issue(ctx context.Context, counterpartyID uuid.UUID, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	key := reportTokenKeyPrefix + token

	if err := s.client.Set(ctx, key, counterpartyID.String(), ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the counterparty ID a token was issued for. Unknown and
// expired tokens are indistinguishable; both surface as ErrInvalidToken.
func (s *reportTokenStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := s.client.Get(ctx, reportTokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, domainerror.ErrInvalidToken
		}
		return uuid.Nil, err
	}

	counterpartyID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domainerror.ErrInvalidToken
	}
	return counterpartyID, nil
}
