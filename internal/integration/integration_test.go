package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/config"
	"github.com/pageza/pantrymatch/backend/internal/api"
	"github.com/pageza/pantrymatch/backend/internal/database"
	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/middleware"
	"github.com/pageza/pantrymatch/backend/internal/model"
	"github.com/pageza/pantrymatch/backend/internal/server"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/testhelpers"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stackOptions struct {
	redis  *redis.Client
	llmURL string
}

// newStack wires the real services behind the real router
func newStack(t *testing.T, db *gorm.DB, opts stackOptions) *gin.Engine {
	t.Helper()
	log := zap.NewNop()

	engine, err := matching.NewEngine(matching.DefaultConfig(), matching.DefaultTables(), nil)
	require.NoError(t, err)

	recipes := service.NewRecipeService(db, engine, log)
	pantry := service.NewPantryService(db)
	llm := service.NewLLMService(service.LLMConfig{
		APIKey:  "test-key",
		BaseURL: opts.llmURL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}, log)

	deps := api.Deps{
		Auth:    service.NewAuthService(db, "integration-secret"),
		Recipes: recipes,
		Pantry:  pantry,
		Search:  service.NewSearchService(engine, recipes, pantry, nil, nil, log),
		Ready:   func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
		Log:     log,
	}
	if opts.redis != nil && opts.llmURL != "" {
		drafts := service.NewDraftStore(opts.redis)
		deps.Search = service.NewSearchService(engine, recipes, pantry, llm, drafts, log)
		deps.LLM = llm
		deps.Drafts = drafts
		deps.GenerationLimiter = middleware.NewGenerationRateLimiter(middleware.NewRedisCounter(opts.redis), log)
	}

	return server.New(&config.Config{ServerHost: "127.0.0.1", ServerPort: "0"}, deps).Router()
}

func do(t *testing.T, router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func register(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	w := do(t, router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Test Cook",
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp types.AuthResponse
	decode(t, w, &resp)
	return resp.Token
}

func createRecipe(t *testing.T, router http.Handler, token, title, difficulty string, ingredients ...string) model.Recipe {
	t.Helper()
	w := do(t, router, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
		"title":             title,
		"difficulty":        difficulty,
		"ingredients":       ingredients,
		"instructions":      []string{"Cook it"},
		"prep_time_minutes": 10,
		"cook_time_minutes": 20,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var recipe model.Recipe
	decode(t, w, &recipe)
	return recipe
}

func titles(resp types.SearchResponse) []string {
	out := make([]string, len(resp.Recipes))
	for i, r := range resp.Recipes {
		out[i] = r.Recipe.Title
	}
	return out
}

func TestSearchFlow(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	router := newStack(t, db, stackOptions{})

	token := register(t, router, "cook@example.com")
	createRecipe(t, router, token, "Garlic chicken", "easy", "1 lb chicken", "3 cloves garlic", "salt")
	createRecipe(t, router, token, "Chicken pasta", "easy", "chicken", "8 oz pasta", "1 onion, diced")
	stew := createRecipe(t, router, token, "Beef stew", "hard", "2 lb beef", "potato", "carrot", "onion")

	t.Run("should rank an anonymous search", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/api/v1/recipes/search", map[string]interface{}{
			"ingredients": []string{"chicken", "garlic"},
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp types.SearchResponse
		decode(t, w, &resp)
		assert.Equal(t, []string{"Garlic chicken", "Chicken pasta"}, titles(resp))
		assert.Equal(t, 100.0, resp.Recipes[0].Score)
		assert.Equal(t, 40.0, resp.Recipes[1].Score)
		assert.Equal(t, 2, resp.Recipes[1].MissingCount)
		assert.Equal(t, 3, resp.Considered)
		assert.Equal(t, 2, resp.Qualified)
		assert.False(t, resp.MinimumMet)
	})

	t.Run("should restrict a beginner to easy recipes", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/api/v1/recipes/search", map[string]interface{}{
			"ingredients": []string{"beef", "potato", "carrot", "onion"},
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp types.SearchResponse
		decode(t, w, &resp)
		assert.Empty(t, resp.Recipes)
		assert.Equal(t, 2, resp.Considered)
	})

	t.Run("should count the saved pantry", func(t *testing.T) {
		w := do(t, router, http.MethodPut, "/api/v1/pantry", map[string]interface{}{
			"items": []string{"Pasta", "pasta", "olive oil"},
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var pantry types.PantryResponse
		decode(t, w, &pantry)
		assert.Len(t, pantry.Items, 2)

		w = do(t, router, http.MethodPost, "/api/v1/recipes/search", map[string]interface{}{
			"ingredients": []string{"chicken", "garlic"},
			"min_results": 2,
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp types.SearchResponse
		decode(t, w, &resp)
		assert.Equal(t, []string{"Garlic chicken", "Chicken pasta"}, titles(resp))
		assert.Equal(t, 90.0, resp.Recipes[1].Score)
		assert.True(t, resp.MinimumMet)
	})

	t.Run("should score a recipe that would be filtered out", func(t *testing.T) {
		w := do(t, router, http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/score", stew.ID), map[string]interface{}{
			"ingredients": []string{"potato"},
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var match types.RecipeMatch
		decode(t, w, &match)
		assert.Equal(t, 3, match.MissingCount)
		assert.Less(t, match.Score, 40.0)
		require.NotEmpty(t, match.MatchDetails.Missing)
		assert.Equal(t, "beef", match.MatchDetails.Missing[0].Name)
	})

	t.Run("should answer 503 when the recipe store is down", func(t *testing.T) {
		require.NoError(t, database.Close(db))

		w := do(t, router, http.MethodPost, "/api/v1/recipes/search", map[string]interface{}{
			"ingredients": []string{"chicken"},
		}, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp types.SearchResponse
		decode(t, w, &resp)
		assert.Empty(t, resp.Recipes)
		assert.True(t, resp.Unavailable)
		assert.Equal(t, types.CodeSearchUnavailable, resp.Code)

		w = do(t, router, http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
