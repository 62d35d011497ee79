// Package catalog serves the read-mostly restaurant, menu and category data.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"food-storefront/apperr"
	"food-storefront/models"

	"gorm.io/gorm"
)

type Catalog struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := c.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Featured returns restaurants rated at least minRating, best first.
func (c *Catalog) Featured(ctx context.Context, minRating float64) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	err := c.db.WithContext(ctx).
		Where("rating >= ?", minRating).
		Order("rating desc").
		Find(&restaurants).Error
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

// Restaurant looks a restaurant up by slug, falling back to its numeric id.
// A slug match always wins over an id match.
func (c *Catalog) Restaurant(ctx context.Context, ref string) (*models.Restaurant, error) {
	r, err := c.findRestaurant(ctx, "slug_id = ?", ref)
	if !errors.Is(err, apperr.ErrNotFound) {
		return r, err
	}
	id, perr := strconv.ParseUint(ref, 10, 64)
	if perr != nil {
		return nil, err
	}
	return c.findRestaurant(ctx, "id = ?", id)
}

func (c *Catalog) findRestaurant(ctx context.Context, cond string, arg any) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := c.db.WithContext(ctx).Where(cond, arg).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	return &r, nil
}

// Menu lists a restaurant's items. An unknown restaurant yields an empty menu.
func (c *Catalog) Menu(ctx context.Context, ref string, category string) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	r, err := c.Restaurant(ctx, ref)
	if errors.Is(err, apperr.ErrNotFound) {
		return items, nil
	}
	if err != nil {
		return nil, err
	}

	q := c.db.WithContext(ctx).Where("restaurant_id = ?", r.ID)
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("popular desc").Order("name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

type SearchResult struct {
	Restaurants []models.Restaurant `json:"restaurants"`
	MenuItems   []models.MenuItem   `json:"menuItems"`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

// Search matches query case-insensitively against restaurant name, cuisine
// and description and against menu item name and description. A category
// other than "all" narrows menu items to that category and restaurants to
// those serving something in it.
func (c *Catalog) Search(ctx context.Context, query, category string) (*SearchResult, error) {
	db := c.db.WithContext(ctx)
	pat := containsPattern(query)
	filtered := category != "" && category != "all"

	res := &SearchResult{Restaurants: []models.Restaurant{}, MenuItems: []models.MenuItem{}}

	rq := db.Where(
		`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(cuisine) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`,
		pat, pat, pat,
	)
	if filtered {
		rq = rq.Where("id IN (?)", db.Model(&models.MenuItem{}).Select("restaurant_id").Where("category = ?", category))
	}
	if err := rq.Order("rating desc").Find(&res.Restaurants).Error; err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}

	mq := db.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pat, pat)
	if filtered {
		mq = mq.Where("category = ?", category)
	}
	if err := mq.Order("name").Find(&res.MenuItems).Error; err != nil {
		return nil, fmt.Errorf("search menu items: %w", err)
	}
	return res, nil
}
