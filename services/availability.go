package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinebook/restaurant-booking/models"
)

// AvailabilityService answers "is this table free at this time" and owns the
// transactional check-then-insert that keeps the booking ledger overlap-free.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// IsTableAvailable reports whether the given table is free for the
// restaurant's configured duration starting at start.
func (s *AvailabilityService) IsTableAvailable(restaurantID, layoutID uint, start time.Time) (bool, error) {
	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, restaurantID).Error; err != nil {
		return false, fmt.Errorf("restaurant %d: %w", restaurantID, ErrNotFound)
	}
	return s.isFree(s.DB, &restaurant, layoutID, start, 0)
}

// isFree runs the overlap scan on the given handle (plain DB or open
// transaction). excludeID skips a booking's own record when re-checking a
// mutation. The date window in the query only bounds the scan; the decisive
// half-open interval test happens in application code.
func (s *AvailabilityService) isFree(tx *gorm.DB, restaurant *models.Restaurant, layoutID uint, start time.Time, excludeID uint) (bool, error) {
	var slot models.Layout
	if err := tx.Where("id = ? AND restaurant_id = ?", layoutID, restaurant.ID).First(&slot).Error; err != nil {
		return false, fmt.Errorf("table %d in restaurant %d: %w", layoutID, restaurant.ID, ErrNotFound)
	}
	if !slot.IsTable() {
		return false, fmt.Errorf("layout item %d is furniture: %w", layoutID, ErrValidation)
	}

	duration := restaurant.SlotDuration()
	end := start.Add(duration)

	query := tx.Where("restaurant_id = ? AND layout_id = ?", restaurant.ID, layoutID).
		Where("status <> ?", models.BookingStatusCanceled).
		Where("date >= ? AND date < ?", start.Add(-duration), end)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var candidates []models.Booking
	if err := query.Find(&candidates).Error; err != nil {
		return false, err
	}

	for _, b := range candidates {
		if b.Occupies(start, duration) {
			return false, nil
		}
	}
	return true, nil
}

// AvailableTables returns the restaurant's bookable slots (never furniture)
// that are free at start, ordered by ascending id.
func (s *AvailabilityService) AvailableTables(restaurantID uint, start time.Time) ([]models.Layout, error) {
	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, restaurantID).Error; err != nil {
		return nil, fmt.Errorf("restaurant %d: %w", restaurantID, ErrNotFound)
	}

	var slots []models.Layout
	if err := s.DB.Where("restaurant_id = ? AND type = ?", restaurantID, models.LayoutTypeTable).
		Order("id asc").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	available := make([]models.Layout, 0, len(slots))
	for _, slot := range slots {
		free, err := s.isFree(s.DB, &restaurant, slot.ID, start, 0)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, slot)
		}
	}
	return available, nil
}

type MenuOrderRequest struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

type BookingRequest struct {
	UserID          uint
	RestaurantID    uint
	LayoutID        uint
	Date            time.Time
	NumGuests       int
	SpecialRequests *string
	MenuOrders      []MenuOrderRequest
}

// CreateBooking re-verifies availability and inserts the booking inside one
// transaction, closing the check-then-act race between concurrent requests
// for the same slot.
func (s *AvailabilityService) CreateBooking(req BookingRequest) (*models.Booking, error) {
	var user models.User
	if err := s.DB.First(&user, req.UserID).Error; err != nil {
		return nil, fmt.Errorf("user %d: %w", req.UserID, ErrNotFound)
	}
	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		return nil, fmt.Errorf("restaurant %d: %w", req.RestaurantID, ErrNotFound)
	}

	numGuests := req.NumGuests
	if numGuests <= 0 {
		numGuests = 1
	}

	booking := models.Booking{
		UserID:           req.UserID,
		RestaurantID:     req.RestaurantID,
		LayoutID:         req.LayoutID,
		Date:             req.Date,
		NumGuests:        numGuests,
		SpecialRequests:  req.SpecialRequests,
		Status:           models.BookingStatusConfirmed,
		ConfirmationCode: uuid.NewString(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		free, err := s.isFree(tx, &restaurant, req.LayoutID, req.Date, 0)
		if err != nil {
			return err
		}
		if !free {
			return ErrConflict
		}

		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		for _, order := range req.MenuOrders {
			var item models.MenuItem
			if err := tx.Where("id = ? AND restaurant_id = ?", order.MenuItemID, req.RestaurantID).
				First(&item).Error; err != nil {
				// unknown or foreign menu item, skip the line
				continue
			}
			quantity := order.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			menuOrder := models.BookingMenuOrder{
				BookingID:  booking.ID,
				MenuItemID: item.ID,
				Quantity:   quantity,
			}
			if err := tx.Create(&menuOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

type BookingUpdate struct {
	Date            *time.Time
	LayoutID        *uint
	NumGuests       *int
	SpecialRequests *string
}

// UpdateBooking mutates date/table/guests/requests of an existing booking.
// Only the owning user may update. If the date or table changes the
// availability re-check runs against the new pair, excluding the booking's
// own record from the scan.
func (s *AvailabilityService) UpdateBooking(bookingID, actorID uint, update BookingUpdate) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}
	if booking.UserID != actorID {
		return nil, ErrForbidden
	}

	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, booking.RestaurantID).Error; err != nil {
		return nil, fmt.Errorf("restaurant %d: %w", booking.RestaurantID, ErrNotFound)
	}

	newDate := booking.Date
	if update.Date != nil {
		newDate = *update.Date
	}
	newLayout := booking.LayoutID
	if update.LayoutID != nil {
		newLayout = *update.LayoutID
	}
	needsRecheck := !newDate.Equal(booking.Date) || newLayout != booking.LayoutID

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if needsRecheck {
			free, err := s.isFree(tx, &restaurant, newLayout, newDate, booking.ID)
			if err != nil {
				return err
			}
			if !free {
				return ErrConflict
			}
		}

		booking.Date = newDate
		booking.LayoutID = newLayout
		if update.NumGuests != nil {
			booking.NumGuests = *update.NumGuests
		}
		if update.SpecialRequests != nil {
			booking.SpecialRequests = update.SpecialRequests
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking marks a booking canceled, which drops it out of every
// overlap scan. Allowed for the owning user or an administrator.
func (s *AvailabilityService) CancelBooking(bookingID, actorID uint, isAdmin bool) error {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		return fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}
	if booking.UserID != actorID && !isAdmin {
		return ErrForbidden
	}

	booking.Status = models.BookingStatusCanceled
	return s.DB.Save(&booking).Error
}
