package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinebook/restaurant-booking/models"
	"github.com/dinebook/restaurant-booking/utils"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

func restaurantSummary(r models.Restaurant) gin.H {
	imageURL := "/static/placeholder.png"
	if len(r.Images) > 0 {
		imageURL = r.Images[0].ImageURL
	}
	return gin.H{
		"id":           r.ID,
		"name":         r.Name,
		"location":     r.Location,
		"cuisine":      r.Cuisine,
		"promo":        r.Promo,
		"lat":          r.Lat,
		"lon":          r.Lon,
		"rating":       r.Rating,
		"opening_time": r.OpeningTime,
		"closing_time": r.ClosingTime,
		"image_url":    imageURL,
	}
}

// GetAllRestaurants -> public listing.
func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := rc.DB.Preload("Images").Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	list := make([]gin.H, 0, len(restaurants))
	for _, r := range restaurants {
		list = append(list, restaurantSummary(r))
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", list)
}

// CreateRestaurant -> admin only.
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req struct {
		Name         string   `json:"name"`
		Location     string   `json:"location"`
		Cuisine      string   `json:"cuisine"`
		OpeningTime  *string  `json:"opening_time"`
		ClosingTime  *string  `json:"closing_time"`
		Capacity     *int     `json:"capacity"`
		AveragePrice *float64 `json:"average_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if len(strings.TrimSpace(req.Name)) < 2 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name must be at least 2 characters long"))
		return
	}
	if req.Location == "" || req.Cuisine == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("location and cuisine are required"))
		return
	}

	defaultDuration := int(models.DefaultBookingDuration.Minutes())
	capacity := 50
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	restaurant := models.Restaurant{
		Name:            req.Name,
		Location:        req.Location,
		Cuisine:         req.Cuisine,
		OpeningTime:     req.OpeningTime,
		ClosingTime:     req.ClosingTime,
		Capacity:        capacity,
		AveragePrice:    req.AveragePrice,
		BookingDuration: &defaultDuration,
	}

	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant created: %s (id=%d)", restaurant.Name, restaurant.ID)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant added successfully", gin.H{
		"restaurant_id": restaurant.ID,
	})
}

// GetRestaurantByID -> public detail view.
func (rc *RestaurantController) GetRestaurantByID(c *gin.Context) {
	restaurantID, ok := restaurantParam(c)
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.Preload("Images").First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	images := make([]string, 0, len(restaurant.Images))
	for _, img := range restaurant.Images {
		images = append(images, img.ImageURL)
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", gin.H{
		"id":               restaurant.ID,
		"name":             restaurant.Name,
		"location":         restaurant.Location,
		"cuisine":          restaurant.Cuisine,
		"promo":            restaurant.Promo,
		"lat":              restaurant.Lat,
		"lon":              restaurant.Lon,
		"opening_time":     restaurant.OpeningTime,
		"closing_time":     restaurant.ClosingTime,
		"images":           images,
		"capacity":         restaurant.Capacity,
		"average_price":    restaurant.AveragePrice,
		"features":         restaurant.Features,
		"booking_duration": restaurant.BookingDuration,
	})
}

// UpdateRestaurant -> admin only; the image set is replaced wholesale.
func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	restaurantID, ok := restaurantParam(c)
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name            *string  `json:"name"`
		Location        *string  `json:"location"`
		Cuisine         *string  `json:"cuisine"`
		Promo           *string  `json:"promo"`
		Lat             *float64 `json:"lat"`
		Lon             *float64 `json:"lon"`
		OpeningTime     *string  `json:"opening_time"`
		ClosingTime     *string  `json:"closing_time"`
		BookingDuration *int     `json:"booking_duration"`
		ImageURLs       []string `json:"image_urls"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Location != nil {
		restaurant.Location = *req.Location
	}
	if req.Cuisine != nil {
		restaurant.Cuisine = *req.Cuisine
	}
	if req.Promo != nil {
		restaurant.Promo = req.Promo
	}
	if req.Lat != nil {
		restaurant.Lat = req.Lat
	}
	if req.Lon != nil {
		restaurant.Lon = req.Lon
	}
	if req.OpeningTime != nil {
		restaurant.OpeningTime = req.OpeningTime
	}
	if req.ClosingTime != nil {
		restaurant.ClosingTime = req.ClosingTime
	}
	if req.BookingDuration != nil {
		restaurant.BookingDuration = req.BookingDuration
	}

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&restaurant).Error; err != nil {
			return err
		}
		if req.ImageURLs == nil {
			return nil
		}
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.RestaurantImage{}).Error; err != nil {
			return err
		}
		for _, url := range req.ImageURLs {
			url = strings.TrimSpace(url)
			if url == "" {
				continue
			}
			image := models.RestaurantImage{RestaurantID: restaurant.ID, ImageURL: url}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant updated successfully", restaurant)
}

// DeleteRestaurant -> admin only; removes the restaurant together with its
// layout, bookings, images, menu and reviews in one transaction so no
// orphan rows survive.
func (rc *RestaurantController) DeleteRestaurant(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	restaurantID, ok := restaurantParam(c)
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id IN (SELECT id FROM bookings WHERE restaurant_id = ?)", restaurantID).
			Delete(&models.BookingMenuOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.Layout{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.RestaurantImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&restaurant).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant %d deleted", restaurantID)
	utils.RespondJSON(c, http.StatusOK, "Restaurant deleted successfully", gin.H{
		"restaurant_id": restaurantID,
	})
}

// SearchRestaurants -> name/location substring, cuisine and rating filters.
func (rc *RestaurantController) SearchRestaurants(c *gin.Context) {
	query := rc.DB.Model(&models.Restaurant{}).Preload("Images")

	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name LIKE ? OR location LIKE ?", pattern, pattern)
	}
	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine = ?", cuisine)
	}
	if minRating := c.Query("min_rating"); minRating != "" {
		query = query.Where("rating >= ?", minRating)
	}

	var results []models.Restaurant
	if err := query.Find(&results).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	list := make([]gin.H, 0, len(results))
	for _, r := range results {
		entry := restaurantSummary(r)
		entry["features"] = r.Features
		list = append(list, entry)
	}
	utils.RespondJSON(c, http.StatusOK, "Search results", list)
}

// GetRestaurantCount -> public counter for the landing page.
func (rc *RestaurantController) GetRestaurantCount(c *gin.Context) {
	var count int64
	if err := rc.DB.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant count", gin.H{"count": count})
}

// GetMenu -> menu items of one restaurant.
func (rc *RestaurantController) GetMenu(c *gin.Context) {
	restaurantID, ok := restaurantParam(c)
	if !ok {
		return
	}

	var items []models.MenuItem
	if err := rc.DB.Where("restaurant_id = ?", restaurantID).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant menu", items)
}

// GetRecommendations -> scores restaurants against the user's stored
// preferences; without preferences the plain listing comes back.
func (rc *RestaurantController) GetRecommendations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var restaurants []models.Restaurant
	if err := rc.DB.Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var pref models.UserPreference
	if err := rc.DB.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		list := make([]gin.H, 0, len(restaurants))
		for _, r := range restaurants {
			list = append(list, gin.H{
				"id": r.ID, "name": r.Name, "location": r.Location, "cuisine": r.Cuisine,
			})
		}
		utils.RespondJSON(c, http.StatusOK, "Recommended restaurants", list)
		return
	}

	prefCuisine := ""
	if pref.PreferredCuisine != nil {
		prefCuisine = strings.ToLower(*pref.PreferredCuisine)
	}
	dietary := ""
	if pref.DietaryRestrictions != nil {
		dietary = strings.ToLower(*pref.DietaryRestrictions)
	}

	type scored struct {
		score      int
		restaurant models.Restaurant
	}
	ranked := make([]scored, 0, len(restaurants))
	for _, r := range restaurants {
		score := 0
		cuisine := strings.ToLower(r.Cuisine)
		if prefCuisine != "" && strings.Contains(cuisine, prefCuisine) {
			score += 2
		}
		if strings.Contains(dietary, "no peanuts") && strings.Contains(cuisine, "peanut") {
			score -= 999
		}
		ranked = append(ranked, scored{score: score, restaurant: r})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}

	list := make([]gin.H, 0, len(ranked))
	for _, s := range ranked {
		if s.score < 0 {
			continue
		}
		r := s.restaurant
		list = append(list, gin.H{
			"id": r.ID, "name": r.Name, "location": r.Location, "cuisine": r.Cuisine,
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Recommended restaurants", list)
}

// ListReviews -> paginated reviews, newest first.
func (rc *RestaurantController) ListReviews(c *gin.Context) {
	restaurantID, ok := restaurantParam(c)
	if !ok {
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	const perPage = 10

	var total int64
	if err := rc.DB.Model(&models.Review{}).Where("restaurant_id = ?", restaurantID).Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var reviews []models.Review
	if err := rc.DB.Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&reviews).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	utils.RespondJSON(c, http.StatusOK, "Restaurant reviews", gin.H{
		"reviews":     reviews,
		"total_pages": totalPages,
	})
}

// AddReview -> authenticated users rate 1-5 with a comment.
func (rc *RestaurantController) AddReview(c *gin.Context) {
	restaurantID, ok := restaurantParam(c)
	if !ok {
		return
	}
	userID, authed := currentUserID(c)
	if !authed {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Rating == 0 || req.Comment == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("rating and comment are required"))
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be 1-5"))
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	review := models.Review{
		UserID:       userID,
		RestaurantID: restaurantID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Review added successfully", gin.H{
		"review_id": review.ID,
	})
}
