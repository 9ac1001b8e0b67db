package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinebook/restaurant-booking/models"
	"github.com/dinebook/restaurant-booking/services"
	"github.com/dinebook/restaurant-booking/utils"
)

type BookingController struct {
	DB           *gorm.DB
	Availability *services.AvailabilityService
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{
		DB:           db,
		Availability: services.NewAvailabilityService(db),
	}
}

// GetAvailability -> list of available table ids for a restaurant/time.
func (bc *BookingController) GetAvailability(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant_id"))
		return
	}

	start, err := utils.ParseBookingDate(c.Query("date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tables, err := bc.Availability.AvailableTables(uint(restaurantID), start)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ids := make([]uint, 0, len(tables))
	for _, t := range tables {
		ids = append(ids, t.ID)
	}
	utils.RespondJSON(c, http.StatusOK, "Available tables", ids)
}

// CreateBooking -> reserve a table, 409 when the slot overlaps an existing
// booking.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req struct {
		UserID          uint                        `json:"user_id" binding:"required"`
		RestaurantID    uint                        `json:"restaurant_id" binding:"required"`
		LayoutID        uint                        `json:"layout_id" binding:"required"`
		Date            string                      `json:"date" binding:"required"`
		NumGuests       int                         `json:"num_guests"`
		SpecialRequests *string                     `json:"special_requests"`
		MenuOrders      []services.MenuOrderRequest `json:"menu_orders"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := utils.ParseBookingDate(req.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Availability.CreateBooking(services.BookingRequest{
		UserID:          req.UserID,
		RestaurantID:    req.RestaurantID,
		LayoutID:        req.LayoutID,
		Date:            date,
		NumGuests:       req.NumGuests,
		SpecialRequests: req.SpecialRequests,
		MenuOrders:      req.MenuOrders,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %d created: restaurant=%d table=%d date=%s",
		booking.ID, booking.RestaurantID, booking.LayoutID, booking.Date.Format(utils.BookingDateLayout))

	utils.RespondJSON(c, http.StatusCreated, "Booking successful", gin.H{
		"booking_id":        booking.ID,
		"confirmation_code": booking.ConfirmationCode,
	})
}

// UpdateBooking -> owner mutates date/table/guests/requests; date or table
// changes re-run the availability check.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid booking id"))
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		Date            *string `json:"date"`
		LayoutID        *uint   `json:"layout_id"`
		NumGuests       *int    `json:"num_guests"`
		SpecialRequests *string `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	update := services.BookingUpdate{
		LayoutID:        req.LayoutID,
		NumGuests:       req.NumGuests,
		SpecialRequests: req.SpecialRequests,
	}
	if req.Date != nil {
		date, err := utils.ParseBookingDate(*req.Date)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		update.Date = &date
	}

	booking, err := bc.Availability.UpdateBooking(uint(bookingID), actorID, update)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking updated successfully", booking)
}

// CancelBooking -> owner or admin; the booking stays on record with status
// canceled so the slot frees up.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid booking id"))
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	if err := bc.Availability.CancelBooking(uint(bookingID), actorID, isAdmin(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking canceled successfully", gin.H{
		"booking_id": bookingID,
	})
}

// GetUserBookings -> bookings of the authenticated user.
func (bc *BookingController) GetUserBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var bookings []models.Booking
	if err := bc.DB.Preload("Restaurant").Preload("MenuOrders").
		Where("user_id = ?", userID).
		Order("date asc").
		Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	list := make([]gin.H, 0, len(bookings))
	for _, b := range bookings {
		list = append(list, gin.H{
			"id":              b.ID,
			"restaurant_id":   b.RestaurantID,
			"restaurant_name": b.Restaurant.Name,
			"layout_id":       b.LayoutID,
			"date":            b.Date.Format(utils.BookingDateLayout),
			"num_guests":      b.NumGuests,
			"status":          b.Status,
		})
	}
	utils.RespondJSON(c, http.StatusOK, "User bookings", list)
}

// GetBookingAnalytics -> admin: bookings per day.
func (bc *BookingController) GetBookingAnalytics(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var rows []struct {
		Day   string `json:"date"`
		Count int64  `json:"bookings"`
	}
	if err := bc.DB.Model(&models.Booking{}).
		Select("DATE(date) as day, COUNT(id) as count").
		Group("DATE(date)").
		Order("day asc").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking analytics", rows)
}
