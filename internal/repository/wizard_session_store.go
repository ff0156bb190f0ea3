package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cicloharmony/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const wizardKeyPrefix = "wizard:session:"

// ErrSessionNotFound is returned for unknown or expired wizard sessions.
var ErrSessionNotFound = errors.New("wizard session not found")

// WizardSessionStore persists in-progress wizard sessions in Redis with a
// TTL. Each save refreshes the TTL, so the clock only runs against
// abandoned sessions.
type WizardSessionStore interface {
	New(ctx context.Context, tier model.Tier) (*model.WizardSession, error)
	Get(ctx context.Context, id string) (*model.WizardSession, error)
	Save(ctx context.Context, s *model.WizardSession) error
}

type wizardSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewWizardSessionStore(rdb *redis.Client, ttl time.Duration) WizardSessionStore {
	return &wizardSessionStore{rdb: rdb, ttl: ttl}
}

func (st *wizardSessionStore) New(ctx context.Context, tier model.Tier) (*model.WizardSession, error) {
	s := &model.WizardSession{
		ID:        uuid.NewString(),
		Tier:      tier,
		Step:      model.StepPersonalInfo,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (st *wizardSessionStore) Get(ctx context.Context, id string) (*model.WizardSession, error) {
	raw, err := st.rdb.Get(ctx, wizardKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s model.WizardSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *wizardSessionStore) Save(ctx context.Context, s *model.WizardSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return st.rdb.Set(ctx, wizardKeyPrefix+s.ID, raw, st.ttl).Err()
}
