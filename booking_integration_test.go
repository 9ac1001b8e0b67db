package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinebook/restaurant-booking/models"
	"github.com/dinebook/restaurant-booking/router"
	"github.com/dinebook/restaurant-booking/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

var integrationDBSeq int64

func newIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:integration_%d?mode=memory&cache=shared", atomic.AddInt64(&integrationDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	autoMigrate(db)
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := models.User{Name: "Admin", Email: email, Password: string(hashed), IsAdmin: true}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON response for %s %s: %s", method, path, w.Body.String())
		}
	}
	return w, resp
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w, resp := doRequest(t, r, http.MethodPost, "/login", "", gin.H{
		"email": email, "password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login for %s failed: %d %s", email, w.Code, w.Body.String())
	}
	return resp["data"].(map[string]interface{})["token"].(string)
}

// Full lifecycle through the real router: register, provision a restaurant,
// read the generated floor plan, then book, collide, cancel and rebook.
func TestBookingLifecycle(t *testing.T) {
	db := newIntegrationDB(t)
	seedAdmin(t, db, "admin@example.com", "admin-secret")
	r := router.SetupRouter(db)

	w, resp := doRequest(t, r, http.MethodPost, "/register", "", gin.H{
		"name": "Guest", "email": "guest@example.com", "password": "guest-secret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}
	guestID := resp["data"].(map[string]interface{})["user_id"].(float64)

	guestToken := login(t, r, "guest@example.com", "guest-secret")
	adminToken := login(t, r, "admin@example.com", "admin-secret")

	w, resp = doRequest(t, r, http.MethodPost, "/restaurants", adminToken, gin.H{
		"name": "Trattoria Roma", "location": "Downtown", "cuisine": "Italian",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create restaurant failed: %d %s", w.Code, w.Body.String())
	}
	restaurantID := resp["data"].(map[string]interface{})["restaurant_id"].(float64)

	// first layout read materializes the canned template
	layoutPath := fmt.Sprintf("/restaurants/%.0f/layout", restaurantID)
	w, resp = doRequest(t, r, http.MethodGet, layoutPath, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("layout read failed: %d %s", w.Code, w.Body.String())
	}
	var tableID float64
	for _, raw := range resp["data"].([]interface{}) {
		item := raw.(map[string]interface{})
		if item["type"] == models.LayoutTypeTable {
			tableID = item["id"].(float64)
			break
		}
	}
	if tableID == 0 {
		t.Fatal("template produced no tables")
	}

	book := func(date string) (*httptest.ResponseRecorder, map[string]interface{}) {
		return doRequest(t, r, http.MethodPost, "/bookings", "", gin.H{
			"user_id":       guestID,
			"restaurant_id": restaurantID,
			"layout_id":     tableID,
			"date":          date,
			"num_guests":    2,
		})
	}

	w, resp = book("2030-06-01T18:00")
	if w.Code != http.StatusCreated {
		t.Fatalf("first booking failed: %d %s", w.Code, w.Body.String())
	}
	firstBookingID := resp["data"].(map[string]interface{})["booking_id"].(float64)
	if resp["data"].(map[string]interface{})["confirmation_code"] == "" {
		t.Fatal("expected a confirmation code")
	}

	if w, _ = book("2030-06-01T19:30"); w.Code != http.StatusConflict {
		t.Fatalf("overlapping booking: expected 409, got %d %s", w.Code, w.Body.String())
	}
	if w, _ = book("2030-06-01T20:00"); w.Code != http.StatusCreated {
		t.Fatalf("adjacent booking: expected 201, got %d %s", w.Code, w.Body.String())
	}

	// availability mirrors the bookings
	availPath := fmt.Sprintf("/bookings/availability?restaurant_id=%.0f&date=2030-06-01T18:30", restaurantID)
	w, resp = doRequest(t, r, http.MethodGet, availPath, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("availability failed: %d %s", w.Code, w.Body.String())
	}
	for _, raw := range resp["data"].([]interface{}) {
		if raw.(float64) == tableID {
			t.Fatal("booked table listed as available")
		}
	}

	// cancel frees the 18:00 slot
	cancelPath := fmt.Sprintf("/bookings/%.0f", firstBookingID)
	if w, _ = doRequest(t, r, http.MethodDelete, cancelPath, guestToken, nil); w.Code != http.StatusOK {
		t.Fatalf("cancel failed: %d %s", w.Code, w.Body.String())
	}
	if w, _ = book("2030-06-01T18:00"); w.Code != http.StatusCreated {
		t.Fatalf("rebooking canceled slot: expected 201, got %d %s", w.Code, w.Body.String())
	}

	// canceled and active bookings both appear in the user's history
	w, resp = doRequest(t, r, http.MethodGet, "/bookings/user", guestToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("user bookings failed: %d %s", w.Code, w.Body.String())
	}
	if got := len(resp["data"].([]interface{})); got != 3 {
		t.Fatalf("expected 3 bookings in history, got %d", got)
	}
}

// Deleting a restaurant removes its layout, bookings and menu orders so no
// orphan rows survive.
func TestRestaurantDeleteCascades(t *testing.T) {
	db := newIntegrationDB(t)
	seedAdmin(t, db, "admin2@example.com", "admin-secret")
	r := router.SetupRouter(db)

	adminToken := login(t, r, "admin2@example.com", "admin-secret")

	w, resp := doRequest(t, r, http.MethodPost, "/restaurants", adminToken, gin.H{
		"name": "Short Lived", "location": "Nowhere", "cuisine": "Fusion",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create restaurant failed: %d %s", w.Code, w.Body.String())
	}
	restaurantID := resp["data"].(map[string]interface{})["restaurant_id"].(float64)

	layoutPath := fmt.Sprintf("/restaurants/%.0f/layout", restaurantID)
	if w, _ = doRequest(t, r, http.MethodGet, layoutPath, "", nil); w.Code != http.StatusOK {
		t.Fatalf("layout read failed: %d %s", w.Code, w.Body.String())
	}

	var table models.Layout
	if err := db.Where("restaurant_id = ? AND type = ?", uint(restaurantID), models.LayoutTypeTable).
		First(&table).Error; err != nil {
		t.Fatalf("table lookup: %v", err)
	}

	var admin models.User
	if err := db.Where("email = ?", "admin2@example.com").First(&admin).Error; err != nil {
		t.Fatalf("admin lookup: %v", err)
	}
	booking := models.Booking{
		UserID: admin.ID, RestaurantID: uint(restaurantID), LayoutID: table.ID,
		Date: mustParse(t, "2030-06-01T18:00"), Status: models.BookingStatusConfirmed,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	deletePath := fmt.Sprintf("/restaurants/%.0f", restaurantID)
	if w, _ = doRequest(t, r, http.MethodDelete, deletePath, adminToken, nil); w.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", w.Code, w.Body.String())
	}

	for name, model := range map[string]interface{}{
		"layouts":  &models.Layout{},
		"bookings": &models.Booking{},
	} {
		var count int64
		db.Model(model).Where("restaurant_id = ?", uint(restaurantID)).Count(&count)
		if count != 0 {
			t.Fatalf("%d orphan %s left after delete", count, name)
		}
	}
}

func mustParse(t *testing.T, raw string) time.Time {
	t.Helper()
	date, err := utils.ParseBookingDate(raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return date
}
