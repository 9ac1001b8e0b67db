package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinebook/restaurant-booking/services"
	"github.com/dinebook/restaurant-booking/utils"
)

type LayoutController struct {
	DB      *gorm.DB
	Layouts *services.LayoutService
}

func NewLayoutController(db *gorm.DB, layouts *services.LayoutService) *LayoutController {
	if layouts == nil {
		layouts = services.NewLayoutService(db, nil)
	}
	return &LayoutController{DB: db, Layouts: layouts}
}

func restaurantParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return 0, false
	}
	return uint(id), true
}

// GetLayout -> full floor plan; first read with no rows applies the
// deterministic template for this restaurant.
func (lc *LayoutController) GetLayout(c *gin.Context) {
	restaurantID, ok := restaurantParam(c)
	if !ok {
		return
	}

	layout, err := lc.Layouts.EnsureLayout(restaurantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant layout", layout)
}

// ReplaceLayout -> admin-only full replace of the floor plan.
func (lc *LayoutController) ReplaceLayout(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	restaurantID, ok := restaurantParam(c)
	if !ok {
		return
	}

	var req struct {
		Layout []services.LayoutItemInput `json:"layout"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	saved, err := lc.Layouts.ReplaceLayout(restaurantID, req.Layout)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Layout replaced for restaurant %d (%d items)", restaurantID, len(saved))
	utils.RespondJSON(c, http.StatusOK, "Layout updated successfully", saved)
}

// UpdateLayoutItems -> admin-only in-place update of slots matched by id,
// leaving the rest of the layout untouched.
func (lc *LayoutController) UpdateLayoutItems(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	restaurantID, ok := restaurantParam(c)
	if !ok {
		return
	}

	var req struct {
		Items []services.LayoutItemUpdate `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := lc.Layouts.UpdateItems(restaurantID, req.Items); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Layout items updated", gin.H{
		"updated": len(req.Items),
	})
}

// SuggestLayout -> admin-only; wipes the layout and persists a freshly
// generated arrangement, returned together with the fixed furniture.
func (lc *LayoutController) SuggestLayout(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	restaurantID, ok := restaurantParam(c)
	if !ok {
		return
	}

	tableCount := 0
	if raw := c.Query("tables"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table count"))
			return
		}
		tableCount = n
	}

	items, err := lc.Layouts.SuggestLayout(restaurantID, tableCount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Suggested layout for restaurant %d", restaurantID)
	utils.RespondJSON(c, http.StatusOK, "Suggested layout", items)
}
