package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dinebook/restaurant-booking/models"
)

// LayoutService owns the lifecycle of a restaurant's floor plan: absent ->
// generated (template or random) -> generated (replacement) -> absent on
// restaurant delete.
type LayoutService struct {
	DB        *gorm.DB
	Generator *LayoutGenerator
}

func NewLayoutService(db *gorm.DB, generator *LayoutGenerator) *LayoutService {
	if generator == nil {
		generator = NewLayoutGenerator(nil)
	}
	return &LayoutService{DB: db, Generator: generator}
}

// EnsureLayout returns the restaurant's layout, applying the deterministic
// canned template first if no layout exists yet. Repeat reads return the
// persisted rows unchanged.
func (s *LayoutService) EnsureLayout(restaurantID uint) ([]models.Layout, error) {
	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, restaurantID).Error; err != nil {
		return nil, fmt.Errorf("restaurant %d: %w", restaurantID, ErrNotFound)
	}

	var existing []models.Layout
	if err := s.DB.Where("restaurant_id = ?", restaurantID).Order("id asc").Find(&existing).Error; err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	key := SelectTemplate(restaurantID, restaurant.Capacity)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range TemplateItems(key) {
			item.RestaurantID = restaurantID
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Where("restaurant_id = ?", restaurantID).Order("id asc").Find(&existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// LayoutItemInput is one slot of an administrator-submitted replacement.
// Type and both coordinates are mandatory; the remaining fields default the
// way the floor editor expects.
type LayoutItemInput struct {
	Type        string   `json:"type"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	TableNumber *int     `json:"table_number"`
	TableType   *string  `json:"table_type"`
	Shape       *string  `json:"shape"`
	Capacity    *int     `json:"capacity"`
	Name        *string  `json:"name"`
	Width       *float64 `json:"width"`
	Height      *float64 `json:"height"`
	Color       *string  `json:"color"`
}

// ReplaceLayout deletes the restaurant's current layout and inserts the full
// new set. Rejected while non-canceled bookings still reference the current
// tables, so no booking is left pointing at a deleted slot.
func (s *LayoutService) ReplaceLayout(restaurantID uint, items []LayoutItemInput) ([]models.Layout, error) {
	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, restaurantID).Error; err != nil {
		return nil, fmt.Errorf("restaurant %d: %w", restaurantID, ErrNotFound)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("layout data is empty: %w", ErrValidation)
	}
	for _, item := range items {
		if item.Type == "" || item.X == nil || item.Y == nil {
			return nil, fmt.Errorf("missing required fields in layout item: %w", ErrValidation)
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		open, err := s.openBookingsExist(tx, &restaurant)
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("open bookings reference the current layout: %w", ErrConflict)
		}

		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.Layout{}).Error; err != nil {
			return err
		}
		for _, item := range items {
			slot := models.Layout{
				RestaurantID: restaurantID,
				Type:         item.Type,
				XCoordinate:  *item.X,
				YCoordinate:  *item.Y,
				TableNumber:  item.TableNumber,
				TableType:    item.TableType,
				Shape:        withDefault(item.Shape, "rectangle"),
				Capacity:     withDefaultInt(item.Capacity, 4),
				Name:         withDefault(item.Name, "New Item"),
				Width:        item.Width,
				Height:       item.Height,
				Color:        withDefault(item.Color, "#4a5568"),
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var saved []models.Layout
	if err := s.DB.Where("restaurant_id = ?", restaurantID).Order("id asc").Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

// LayoutItemUpdate adjusts an existing slot in place.
type LayoutItemUpdate struct {
	ID       uint     `json:"id"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Capacity *int     `json:"capacity"`
}

// UpdateItems mutates coordinates/capacity of slots matched by id without
// touching the rest of the layout.
func (s *LayoutService) UpdateItems(restaurantID uint, updates []LayoutItemUpdate) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			var slot models.Layout
			if err := tx.Where("id = ? AND restaurant_id = ?", update.ID, restaurantID).
				First(&slot).Error; err != nil {
				return fmt.Errorf("layout item %d: %w", update.ID, ErrNotFound)
			}
			if update.X != nil {
				slot.XCoordinate = *update.X
			}
			if update.Y != nil {
				slot.YCoordinate = *update.Y
			}
			if update.Capacity != nil {
				slot.Capacity = update.Capacity
			}
			if err := tx.Save(&slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SuggestLayout wipes the current layout and persists a freshly generated
// arrangement. The fixed furniture is returned alongside the tables for
// rendering but is not persisted.
func (s *LayoutService) SuggestLayout(restaurantID uint, tableCount int) ([]models.Layout, error) {
	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, restaurantID).Error; err != nil {
		return nil, fmt.Errorf("restaurant %d: %w", restaurantID, ErrNotFound)
	}

	tables := s.Generator.Generate(restaurantID, tableCount)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		open, err := s.openBookingsExist(tx, &restaurant)
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("open bookings reference the current layout: %w", ErrConflict)
		}

		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.Layout{}).Error; err != nil {
			return err
		}
		for i := range tables {
			if err := tx.Create(&tables[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return append(tables, s.Generator.FurnitureItems()...), nil
}

// openBookingsExist reports whether any non-canceled booking still occupies
// or will occupy a table of this restaurant.
func (s *LayoutService) openBookingsExist(tx *gorm.DB, restaurant *models.Restaurant) (bool, error) {
	cutoff := time.Now().Add(-restaurant.SlotDuration())
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("restaurant_id = ? AND status <> ? AND date > ?",
			restaurant.ID, models.BookingStatusCanceled, cutoff).
		Count(&count).Error
	return count > 0, err
}

func withDefault(value *string, fallback string) *string {
	if value != nil && *value != "" {
		return value
	}
	return &fallback
}

func withDefaultInt(value *int, fallback int) *int {
	if value != nil {
		return value
	}
	return &fallback
}
