package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Ihido/inside-bot/internal/domain/model"
)

const draftPrefix = "drafts:"

// DraftRepo keeps one wizard draft per user as a JSON value. The TTL is
// refreshed on every write, so only abandoned flows expire.
type DraftRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewDraftRepo(client *goredis.Client, ttl time.Duration) *DraftRepo {
	return &DraftRepo{client: client, ttl: ttl}
}

func (r *DraftRepo) Get(ctx context.Context, telegramID int64) (model.Draft, bool, error) {
	if r.client == nil {
		return model.Draft{}, false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, draftKey(telegramID)).Result()
	if errors.Is(err, goredis.Nil) {
		return model.Draft{}, false, nil
	}
	if err != nil {
		return model.Draft{}, false, fmt.Errorf("get draft: %w", err)
	}

	var draft model.Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return model.Draft{}, false, fmt.Errorf("decode draft: %w", err)
	}
	return draft, true, nil
}

func (r *DraftRepo) Set(ctx context.Context, telegramID int64, draft model.Draft) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	if err := r.client.Set(ctx, draftKey(telegramID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

func (r *DraftRepo) Clear(ctx context.Context, telegramID int64) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, draftKey(telegramID)).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

func draftKey(telegramID int64) string {
	return draftPrefix + strconv.FormatInt(telegramID, 10)
}
