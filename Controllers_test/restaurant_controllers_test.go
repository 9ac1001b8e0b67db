package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/dinebook/restaurant-booking/controllers"
	"github.com/dinebook/restaurant-booking/models"
)

func restaurantRouter(db *gorm.DB, userID uint, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := controllers.NewRestaurantController(db)

	r.GET("/restaurants", ctrl.GetAllRestaurants)
	r.GET("/restaurants/search", ctrl.SearchRestaurants)
	r.GET("/restaurants/count", ctrl.GetRestaurantCount)
	r.GET("/restaurants/:restaurant_id", ctrl.GetRestaurantByID)
	r.GET("/restaurants/:restaurant_id/menu", ctrl.GetMenu)
	r.GET("/restaurants/:restaurant_id/reviews", ctrl.ListReviews)

	auth := r.Group("/", fakeAuth(userID, admin))
	auth.GET("/restaurants/recommendations", ctrl.GetRecommendations)
	auth.POST("/restaurants", ctrl.CreateRestaurant)
	auth.PUT("/restaurants/:restaurant_id", ctrl.UpdateRestaurant)
	auth.DELETE("/restaurants/:restaurant_id", ctrl.DeleteRestaurant)
	auth.POST("/restaurants/:restaurant_id/reviews", ctrl.AddReview)
	return r
}

func seedDiscoveryFixtures(t *testing.T, db *gorm.DB) []models.Restaurant {
	t.Helper()
	restaurants := []models.Restaurant{
		{Name: "Trattoria Roma", Location: "Downtown", Cuisine: "Italian", Rating: 4.5},
		{Name: "Sakura House", Location: "Uptown", Cuisine: "Japanese", Rating: 4.8},
		{Name: "Peanut Palace", Location: "Downtown", Cuisine: "Thai Peanut", Rating: 4.0},
	}
	for i := range restaurants {
		if err := db.Create(&restaurants[i]).Error; err != nil {
			t.Fatalf("seed restaurant: %v", err)
		}
	}
	return restaurants
}

func TestCreateRestaurant(t *testing.T) {
	db := setupTestDB(t)

	// non-admin rejected
	r := restaurantRouter(db, 1, false)
	w := perform(r, http.MethodPost, "/restaurants", gin.H{
		"name": "Brasserie", "location": "Midtown", "cuisine": "French",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = restaurantRouter(db, 1, true)

	w = perform(r, http.MethodPost, "/restaurants", gin.H{
		"name": "B", "location": "Midtown", "cuisine": "French",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/restaurants", gin.H{
		"name": "Brasserie", "cuisine": "French",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/restaurants", gin.H{
		"name": "Brasserie", "location": "Midtown", "cuisine": "French",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Restaurant
	db.Where("name = ?", "Brasserie").First(&created)
	assert.Equal(t, 50, created.Capacity)
	if assert.NotNil(t, created.BookingDuration) {
		assert.Equal(t, 120, *created.BookingDuration)
	}
}

func TestSearchRestaurants(t *testing.T) {
	db := setupTestDB(t)
	seedDiscoveryFixtures(t, db)
	r := restaurantRouter(db, 1, false)

	w := perform(r, http.MethodGet, "/restaurants/search?q=Downtown", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, envelope(t, w)["data"].([]interface{}), 2)

	w = perform(r, http.MethodGet, "/restaurants/search?cuisine=Japanese", nil)
	results := envelope(t, w)["data"].([]interface{})
	assert.Len(t, results, 1)
	assert.Equal(t, "Sakura House", results[0].(map[string]interface{})["name"])

	w = perform(r, http.MethodGet, "/restaurants/search?min_rating=4.6", nil)
	assert.Len(t, envelope(t, w)["data"].([]interface{}), 1)

	w = perform(r, http.MethodGet, "/restaurants/search?q=nowhere", nil)
	assert.Empty(t, envelope(t, w)["data"])
}

func TestRestaurantCountAndListing(t *testing.T) {
	db := setupTestDB(t)
	seedDiscoveryFixtures(t, db)
	r := restaurantRouter(db, 1, false)

	w := perform(r, http.MethodGet, "/restaurants/count", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	count := envelope(t, w)["data"].(map[string]interface{})["count"].(float64)
	assert.EqualValues(t, 3, count)

	w = perform(r, http.MethodGet, "/restaurants", nil)
	list := envelope(t, w)["data"].([]interface{})
	assert.Len(t, list, 3)
	entry := list[0].(map[string]interface{})
	assert.Equal(t, "/static/placeholder.png", entry["image_url"])
}

func TestGetRecommendationsUsesPreferences(t *testing.T) {
	db := setupTestDB(t)
	seedDiscoveryFixtures(t, db)

	user := models.User{Name: "Guest", Email: "guest@example.com", Password: "x"}
	db.Create(&user)

	cuisine := "japanese"
	dietary := "no peanuts"
	db.Create(&models.UserPreference{
		UserID:              user.ID,
		PreferredCuisine:    &cuisine,
		DietaryRestrictions: &dietary,
	})

	r := restaurantRouter(db, user.ID, false)
	w := perform(r, http.MethodGet, "/restaurants/recommendations", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	list := envelope(t, w)["data"].([]interface{})
	names := make([]string, 0, len(list))
	for _, raw := range list {
		names = append(names, raw.(map[string]interface{})["name"].(string))
	}
	// preferred cuisine ranked first, peanut kitchens filtered out entirely
	assert.Equal(t, "Sakura House", names[0])
	assert.NotContains(t, names, "Peanut Palace")
}

func TestGetRecommendationsWithoutPreferences(t *testing.T) {
	db := setupTestDB(t)
	seedDiscoveryFixtures(t, db)
	user := models.User{Name: "Guest", Email: "guest@example.com", Password: "x"}
	db.Create(&user)

	r := restaurantRouter(db, user.ID, false)
	w := perform(r, http.MethodGet, "/restaurants/recommendations", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, envelope(t, w)["data"].([]interface{}), 3)
}

func TestReviewsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	restaurants := seedDiscoveryFixtures(t, db)
	user := models.User{Name: "Guest", Email: "guest@example.com", Password: "x"}
	db.Create(&user)

	r := restaurantRouter(db, user.ID, false)
	path := fmt.Sprintf("/restaurants/%d/reviews", restaurants[0].ID)

	w := perform(r, http.MethodPost, path, gin.H{"rating": 6, "comment": "great"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, path, gin.H{"rating": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, path, gin.H{"rating": 5, "comment": "great pasta"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = perform(r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := envelope(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["reviews"].([]interface{}), 1)
	assert.EqualValues(t, 1, data["total_pages"].(float64))
}

func TestDeleteRestaurantCascades(t *testing.T) {
	db := setupTestDB(t)
	restaurants := seedDiscoveryFixtures(t, db)
	target := restaurants[0]

	user := models.User{Name: "Guest", Email: "guest@example.com", Password: "x"}
	db.Create(&user)

	number := 1
	table := models.Layout{
		RestaurantID: target.ID, Type: models.LayoutTypeTable,
		TableNumber: &number, XCoordinate: 50, YCoordinate: 50,
	}
	db.Create(&table)
	item := models.MenuItem{RestaurantID: target.ID, Name: "Carbonara", Price: 14.5}
	db.Create(&item)
	booking := models.Booking{
		UserID: user.ID, RestaurantID: target.ID, LayoutID: table.ID,
		Date: mustDate(t, "2025-06-01T18:00"), Status: models.BookingStatusConfirmed,
	}
	db.Create(&booking)
	db.Create(&models.BookingMenuOrder{BookingID: booking.ID, MenuItemID: item.ID, Quantity: 1})
	db.Create(&models.Review{UserID: user.ID, RestaurantID: target.ID, Rating: 5, Comment: "great"})

	r := restaurantRouter(db, user.ID, true)
	w := perform(r, http.MethodDelete, fmt.Sprintf("/restaurants/%d", target.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Restaurant{}).Count(&count)
	assert.EqualValues(t, 2, count)
	for _, model := range []interface{}{
		&models.Layout{}, &models.Booking{}, &models.BookingMenuOrder{},
		&models.MenuItem{}, &models.Review{},
	} {
		db.Model(model).Count(&count)
		assert.EqualValues(t, 0, count)
	}
}
