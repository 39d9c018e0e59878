package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"polyglot-blog-be/config"
	"polyglot-blog-be/content"
	"polyglot-blog-be/middleware"
	"polyglot-blog-be/models"
	"polyglot-blog-be/utils"
)

// CategoryResponse is a category named in one locale
type CategoryResponse struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type CategoryRequest struct {
	Slug   string `json:"slug" validate:"omitempty,max=100"`
	NameEn string `json:"name_en" validate:"required,max=100"`
	NameEs string `json:"name_es" validate:"max=100"`
	NameFr string `json:"name_fr" validate:"max=100"`
}

func toCategoryResponse(c *models.Category, l content.Locale) CategoryResponse {
	return CategoryResponse{
		ID:   c.ID,
		Slug: c.Slug,
		Name: utils.PlainText(c.LocalizedName(l)),
	}
}

// GetCategories lists all categories in the request locale
func GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := middleware.LocaleFrom(ctx)
	cacheKey := utils.BuildCacheKey("categories", "list")

	var categories []models.Category
	if err := utils.CacheGet(ctx, cacheKey, &categories); err != nil {
		if err := config.GetDB().WithContext(ctx).Order("slug ASC").Find(&categories).Error; err != nil {
			utils.RespondInternalError(w)
			return
		}
		_ = utils.CacheSet(ctx, cacheKey, categories, utils.CacheTTLCategoryList)
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = toCategoryResponse(&categories[i], locale)
	}

	w.Header().Set("Content-Language", locale.String())
	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"categories": response,
	}, nil)
}

func decodeCategory(w http.ResponseWriter, r *http.Request) (*CategoryRequest, bool) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondBadRequest(w, "Invalid request payload")
		return nil, false
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		utils.RespondValidationError(w, fields)
		return nil, false
	}

	req.Slug = utils.GenerateSlug(req.Slug)
	if req.Slug == "" {
		req.Slug = utils.GenerateSlug(req.NameEn)
	}
	if req.Slug == "" {
		utils.RespondValidationError(w, map[string]string{
			"slug": "Slug could not be generated from the name",
		})
		return nil, false
	}
	return &req, true
}

func saveCategory(w http.ResponseWriter, r *http.Request, c *models.Category, status int) {
	db := config.GetDB().WithContext(r.Context())
	if err := db.Save(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondConflict(w, "SLUG_EXISTS", "Category slug already exists")
			return
		}
		utils.RespondInternalError(w)
		return
	}

	// Posts embed their category
	_ = utils.CacheDelete(r.Context(), utils.BuildCacheKey("categories", "list"))
	_ = utils.CacheDeletePattern(r.Context(), "posts:*")

	utils.RespondSuccess(w, status, c, nil)
}

// CreateCategory adds a category
func CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCategory(w, r)
	if !ok {
		return
	}

	saveCategory(w, r, &models.Category{
		Slug:   req.Slug,
		NameEn: req.NameEn,
		NameEs: req.NameEs,
		NameFr: req.NameFr,
	}, http.StatusCreated)
}

// UpdateCategory replaces the names and slug of a category
func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var category models.Category
	if err := config.GetDB().WithContext(r.Context()).First(&category, "id = ?", id).Error; err != nil {
		utils.RespondNotFound(w, "Category")
		return
	}

	req, ok := decodeCategory(w, r)
	if !ok {
		return
	}

	category.Slug = req.Slug
	category.NameEn = req.NameEn
	category.NameEs = req.NameEs
	category.NameFr = req.NameFr
	saveCategory(w, r, &category, http.StatusOK)
}

// DeleteCategory removes a category. Its posts become uncategorized.
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	err := config.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondNotFound(w, "Category")
			return
		}
		utils.RespondInternalError(w)
		return
	}

	_ = utils.CacheDelete(ctx, utils.BuildCacheKey("categories", "list"))
	_ = utils.CacheDeletePattern(ctx, "posts:*")

	utils.RespondSuccess(w, http.StatusOK, map[string]string{
		"message": "Category deleted successfully",
	}, nil)
}
