package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill levels a user can cook at
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	SkillLevel   string         `gorm:"size:20;default:'beginner'" json:"skill_level"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PantryItem is one staple a user always has on hand
type PantryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pantry_user_name" json:"user_id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:idx_pantry_user_name" json:"name"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
}

func (p *PantryItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AllModels lists every table the service owns, in migration order
func AllModels() []interface{} {
	return []interface{}{&User{}, &PantryItem{}, &Recipe{}}
}
