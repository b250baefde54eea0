package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/pantrymatch/backend/internal/model"
)

const draftTTL = 24 * time.Hour

// RecipeDraft is a generated or adapted recipe waiting to be published
type RecipeDraft struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	SourceRecipeID string          `json:"source_recipe_id,omitempty"`
	Recipe         GeneratedRecipe `json:"recipe"`
	Substitutions  []Substitution  `json:"substitutions,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// KeyValueStore is the slice of the redis client drafts need
type KeyValueStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RecipeCreator persists recipes
type RecipeCreator interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
}

// DraftStore keeps drafts in redis for a day
type DraftStore struct {
	kv KeyValueStore
}

func NewDraftStore(kv KeyValueStore) *DraftStore {
	return &DraftStore{kv: kv}
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s", id)
}

// SaveDraft stores the draft, assigning an ID if it has none
func (s *DraftStore) SaveDraft(ctx context.Context, draft *RecipeDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.kv.Set(ctx, draftKey(draft.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// GetDraft loads a draft owned by userID. Drafts owned by someone else are
// reported as missing.
func (s *DraftStore) GetDraft(ctx context.Context, id, userID string) (*RecipeDraft, error) {
	data, err := s.kv.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	if draft.UserID != userID {
		return nil, ErrDraftNotFound
	}
	return &draft, nil
}

// DeleteDraft removes a draft owned by userID
func (s *DraftStore) DeleteDraft(ctx context.Context, id, userID string) error {
	if _, err := s.GetDraft(ctx, id, userID); err != nil {
		return err
	}
	if err := s.kv.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// PublishDraft stores the draft as a recipe authored by the user and drops
// the draft.
func (s *DraftStore) PublishDraft(ctx context.Context, id string, userID uuid.UUID, recipes RecipeCreator) (*model.Recipe, error) {
	draft, err := s.GetDraft(ctx, id, userID.String())
	if err != nil {
		return nil, err
	}

	recipe, err := recipes.CreateRecipe(ctx, draft.Recipe.ToModel(&userID))
	if err != nil {
		return nil, err
	}

	// The recipe exists now; a stale draft expires on its own.
	_ = s.kv.Del(ctx, draftKey(id)).Err()
	return recipe, nil
}
