package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/internal/matching"
)

// Difficulty levels stored on recipes
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// EmbeddingDimensions is the width of the recipe ingredient embedding column
const EmbeddingDimensions = 64

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil || data == nil {
		*a = JSONBStringArray{}
		return err
	}
	return json.Unmarshal(data, a)
}

// IngredientList stores structured ingredients as JSONB
type IngredientList []matching.Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]matching.Ingredient(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil || data == nil {
		*l = IngredientList{}
		return err
	}
	return json.Unmarshal(data, (*[]matching.Ingredient)(l))
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported JSON column type %T", value)
	}
}

// Recipe is a stored candidate recipe
type Recipe struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	Ingredients     IngredientList   `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Difficulty      string           `gorm:"size:20;index" json:"difficulty"`
	PrepTimeMinutes int              `json:"prep_time_minutes"`
	CookTimeMinutes int              `json:"cook_time_minutes"`
	Calories        float64          `gorm:"type:float" json:"calories"`
	Tags            JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	SourceURL       string           `gorm:"size:512" json:"source_url"`
	AuthorID        *uuid.UUID       `gorm:"type:uuid;index" json:"author_id,omitempty"`
	Embedding       pgvector.Vector  `gorm:"type:vector(64)" json:"-"`
}

// BeforeCreate assigns an ID when none is set
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TotalTimeMinutes is prep plus cook time
func (r *Recipe) TotalTimeMinutes() int {
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

// ToMatching returns the engine's view of the recipe
func (r *Recipe) ToMatching() matching.Recipe {
	return matching.Recipe{
		ID:          r.ID.String(),
		Title:       r.Title,
		Ingredients: []matching.Ingredient(r.Ingredients),
	}
}
