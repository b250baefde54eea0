package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/model"
)

// PantryService stores the staples each user always has on hand
type PantryService struct {
	db *gorm.DB
}

func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// GetPantry returns the user's pantry ordered by name
func (s *PantryService) GetPantry(ctx context.Context, userID uuid.UUID) ([]model.PantryItem, error) {
	var items []model.PantryItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load pantry: %w", err)
	}
	return items, nil
}

// PantryNames returns the normalized names in the user's pantry
func (s *PantryService) PantryNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	items, err := s.GetPantry(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names, nil
}

// ReplacePantry swaps the user's whole pantry for names. Names are
// normalized; blanks and duplicates are dropped.
func (s *PantryService) ReplacePantry(ctx context.Context, userID uuid.UUID, names []string) ([]model.PantryItem, error) {
	items := make([]model.PantryItem, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := matching.Normalize(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		items = append(items, model.PantryItem{UserID: userID, Name: name, DisplayName: strings.TrimSpace(raw)})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.PantryItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace pantry: %w", err)
	}
	return s.GetPantry(ctx, userID)
}
