package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/metrics"
	"github.com/pageza/pantrymatch/backend/internal/model"
)

const (
	defaultGenerateCount = 3
	maxGenerateCount     = 5
)

// GeneratedRecipe is a recipe in the structured shape the generator returns
type GeneratedRecipe struct {
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Ingredients     []matching.Ingredient `json:"ingredients"`
	Instructions    []string              `json:"instructions"`
	Difficulty      string                `json:"difficulty"`
	PrepTimeMinutes int                   `json:"prep_time_minutes"`
	CookTimeMinutes int                   `json:"cook_time_minutes"`
	Calories        float64               `json:"calories"`
	Tags            []string              `json:"tags"`
}

// ToModel converts the generated recipe into an unsaved stored recipe
func (g GeneratedRecipe) ToModel(authorID *uuid.UUID) *model.Recipe {
	return &model.Recipe{
		Title:           g.Title,
		Description:     g.Description,
		Ingredients:     model.IngredientList(g.Ingredients),
		Instructions:    model.JSONBStringArray(g.Instructions),
		Difficulty:      g.Difficulty,
		PrepTimeMinutes: g.PrepTimeMinutes,
		CookTimeMinutes: g.CookTimeMinutes,
		Calories:        g.Calories,
		Tags:            model.JSONBStringArray(g.Tags),
		AuthorID:        authorID,
	}
}

// GenerateRequest asks the generator for recipes built around ingredients
type GenerateRequest struct {
	Ingredients  []string
	MaxTotalTime int
	MealType     string
	SkillLevel   string
	Dietary      []string
	Count        int
}

// Substitution records one ingredient the generator swapped out
type Substitution struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

// AdaptedRecipe is a stored recipe rewritten around what the user has
type AdaptedRecipe struct {
	Recipe        GeneratedRecipe `json:"recipe"`
	Substitutions []Substitution  `json:"substitutions"`
}

// LLMConfig configures the chat completions client
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService generates and adapts recipes through an OpenAI-compatible chat
// completions API
type LLMService struct {
	client  *resty.Client
	model   string
	breaker *gobreaker.CircuitBreaker[string]
	log     *zap.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewLLMService returns a generator. Without an API key every call fails
// with ErrGeneratorUnavailable.
func NewLLMService(cfg LLMConfig, log *zap.Logger) *LLMService {
	log = log.Named("llm")
	s := &LLMService{model: cfg.Model, log: log}
	if cfg.APIKey == "" {
		log.Warn("no LLM API key configured, recipe generation disabled")
		return s
	}

	s.client = resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	s.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return s
}

// Enabled reports whether generation is configured
func (s *LLMService) Enabled() bool {
	return s != nil && s.client != nil
}

// GenerateRecipes asks for up to req.Count recipes using the given ingredients
func (s *LLMService) GenerateRecipes(ctx context.Context, req GenerateRequest) ([]GeneratedRecipe, error) {
	count := req.Count
	if count <= 0 {
		count = defaultGenerateCount
	}
	if count > maxGenerateCount {
		count = maxGenerateCount
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Create %d different recipes that use as many of these ingredients as possible: %s.",
		count, strings.Join(req.Ingredients, ", "))
	if req.MaxTotalTime > 0 {
		fmt.Fprintf(&prompt, " Each recipe must take at most %d minutes in total.", req.MaxTotalTime)
	}
	if req.MealType != "" {
		fmt.Fprintf(&prompt, " They should be suitable for %s.", req.MealType)
	}
	if req.SkillLevel != "" {
		fmt.Fprintf(&prompt, " The cook is at %s level.", req.SkillLevel)
	}
	if len(req.Dietary) > 0 {
		fmt.Fprintf(&prompt, " Respect these dietary requirements: %s.", strings.Join(req.Dietary, ", "))
	}

	content, err := s.complete(ctx, "generate", generateSystemPrompt, prompt.String())
	if err != nil {
		return nil, err
	}

	var out struct {
		Recipes []GeneratedRecipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("failed to decode generated recipes: %w", err)
	}

	recipes := make([]GeneratedRecipe, 0, len(out.Recipes))
	for _, r := range out.Recipes {
		if r, ok := cleanGenerated(r); ok {
			recipes = append(recipes, r)
		}
	}
	if len(recipes) > count {
		recipes = recipes[:count]
	}
	return recipes, nil
}

// AdaptRecipe rewrites recipe so it relies on userIngredients, swapping out
// what the user does not have.
func (s *LLMService) AdaptRecipe(ctx context.Context, recipe *model.Recipe, userIngredients []string) (*AdaptedRecipe, error) {
	lines := make([]string, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		lines = append(lines, strings.TrimSpace(strings.Join([]string{ing.Amount, ing.Unit, ing.Label()}, " ")))
	}

	prompt := fmt.Sprintf(
		"Adapt this recipe so it can be cooked with the ingredients I have.\n\nTitle: %s\nIngredients:\n%s\nInstructions:\n%s\n\nI have: %s",
		recipe.Title,
		strings.Join(lines, "\n"),
		strings.Join(recipe.Instructions, "\n"),
		strings.Join(userIngredients, ", "),
	)

	content, err := s.complete(ctx, "adapt", adaptSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var adapted AdaptedRecipe
	if err := json.Unmarshal([]byte(content), &adapted); err != nil {
		return nil, fmt.Errorf("failed to decode adapted recipe: %w", err)
	}
	cleaned, ok := cleanGenerated(adapted.Recipe)
	if !ok {
		return nil, errors.New("generator returned an empty recipe")
	}
	adapted.Recipe = cleaned
	if adapted.Substitutions == nil {
		adapted.Substitutions = []Substitution{}
	}
	return &adapted, nil
}

func (s *LLMService) complete(ctx context.Context, operation, system, user string) (string, error) {
	if !s.Enabled() {
		return "", ErrGeneratorUnavailable
	}

	start := time.Now()
	content, err := s.breaker.Execute(func() (string, error) {
		var out chatResponse
		resp, err := s.client.R().
			SetContext(ctx).
			SetBody(chatRequest{
				Model: s.model,
				Messages: []chatMessage{
					{Role: "system", Content: system},
					{Role: "user", Content: user},
				},
				ResponseFormat: map[string]string{"type": "json_object"},
				Temperature:    0.7,
			}).
			SetResult(&out).
			Post("/chat/completions")
		if err != nil {
			return "", fmt.Errorf("failed to send request: %w", err)
		}
		if resp.IsError() {
			return "", fmt.Errorf("generator returned %d: %s", resp.StatusCode(), resp.String())
		}
		if len(out.Choices) == 0 {
			return "", errors.New("no choices in generator response")
		}
		return stripCodeFence(out.Choices[0].Message.Content), nil
	})
	metrics.RecordLLMRequest(operation, time.Since(start), err)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
	}
	if err != nil {
		s.log.Warn("generator request failed", zap.String("operation", operation), zap.Error(err))
		return "", err
	}
	return content, nil
}

func cleanGenerated(r GeneratedRecipe) (GeneratedRecipe, bool) {
	r.Title = strings.TrimSpace(r.Title)
	ings := make([]matching.Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing.Name != "" {
			ings = append(ings, ing)
		}
	}
	r.Ingredients = ings
	if r.Title == "" || len(ings) == 0 {
		return r, false
	}

	switch d := strings.ToLower(strings.TrimSpace(r.Difficulty)); d {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		r.Difficulty = d
	default:
		r.Difficulty = model.DifficultyMedium
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r, true
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

const recipeShape = `{
    "title": "Recipe name",
    "description": "One or two sentences",
    "ingredients": [
        {"name": "chicken breast", "amount": "2", "unit": "pieces", "notes": "diced", "substitutes": ["turkey breast"]}
    ],
    "instructions": ["Step one", "Step two"],
    "difficulty": "easy | medium | hard",
    "prep_time_minutes": 10,
    "cook_time_minutes": 20,
    "calories": 450,
    "tags": ["dinner"]
}`

const generateSystemPrompt = `You are a professional chef. Respond with JSON only, shaped as {"recipes": [RECIPE, ...]} where each RECIPE is:
` + recipeShape + `
Ingredient names must be plain names without quantities. Times and calories must be numbers.`

const adaptSystemPrompt = `You are a professional chef who adapts recipes to the ingredients a cook has. Respond with JSON only, shaped as
{"recipe": RECIPE, "substitutions": [{"original": "sour cream", "replacement": "greek yogurt"}]} where RECIPE is:
` + recipeShape + `
List every ingredient you replaced in substitutions.`
