package handlers

import (
	"net/http"
	"strconv"

	"food-storefront/apperr"
	"food-storefront/models"
	"food-storefront/statemachine"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(categories), "categories": categories})
}

// ListRestaurants returns restaurants rated at least ?minRating= (default 0), best first
func (h *Handler) ListRestaurants(c *gin.Context) {
	minRating := 0.0
	if v := c.Query("minRating"); v != "" {
		var err error
		if minRating, err = strconv.ParseFloat(v, 64); err != nil {
			respondError(c, apperr.Validation("minRating must be a number"))
			return
		}
	}
	restaurants, err := h.Catalog.Featured(c.Request.Context(), minRating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(restaurants), "restaurants": restaurants})
}

// GetRestaurant returns a single restaurant by slug or id
func (h *Handler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.Catalog.Restaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": restaurant})
}

// GetMenu returns the menu for a specific restaurant, optionally narrowed by ?category=
func (h *Handler) GetMenu(c *gin.Context) {
	items, err := h.Catalog.Menu(c.Request.Context(), c.Param("id"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "menu": items})
}

func (h *Handler) Search(c *gin.Context) {
	res, err := h.Catalog.Search(c.Request.Context(), c.Query("q"), c.DefaultQuery("category", "all"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurants": res.Restaurants, "menuItems": res.MenuItems})
}

// GetStateMachineInfo returns the order lifecycle for client display
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	steps := statemachine.Sequence()
	info := make([]gin.H, 0, len(steps))
	for _, s := range steps {
		info = append(info, gin.H{
			"status":      s.Status,
			"rank":        s.Rank,
			"step":        s.Label,
			"progress":    statemachine.Progress(s.Status),
			"cancellable": statemachine.IsCancellable(s.Status),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"state_machine":  info,
		"initial_state":  models.StatusPending,
		"terminal_state": models.StatusDelivered,
		"description":    "Food order lifecycle; cancellation deletes the order",
	})
}
