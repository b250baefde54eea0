package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/model"
)

func newTestEngine(t *testing.T) *matching.Engine {
	t.Helper()
	e, err := matching.NewEngine(matching.DefaultConfig(), matching.DefaultTables(), nil)
	require.NoError(t, err)
	return e
}

func ingredients(names ...string) model.IngredientList {
	out := make(model.IngredientList, len(names))
	for i, n := range names {
		out[i] = matching.Ingredient{Name: n}
	}
	return out
}

// memoryKV stands in for redis in draft tests.
type memoryKV struct {
	data map[string]string
	ttl  map[string]time.Duration
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (m *memoryKV) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryKV) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type recordingCreator struct {
	created []*model.Recipe
	err     error
}

func (r *recordingCreator) CreateRecipe(_ context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if r.err != nil {
		return nil, r.err
	}
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	r.created = append(r.created, recipe)
	return recipe, nil
}
