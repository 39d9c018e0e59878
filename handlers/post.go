package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"polyglot-blog-be/config"
	"polyglot-blog-be/content"
	"polyglot-blog-be/logger"
	"polyglot-blog-be/metrics"
	"polyglot-blog-be/middleware"
	"polyglot-blog-be/models"
	"polyglot-blog-be/utils"
)

const (
	excerptLength  = 160
	maxTitleLength = 200
	maxFormMemory  = 10 << 20
	maxFormBody    = 32 << 20
)

// SimplifiedAuthor for response
type SimplifiedAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PostSummary is a post as listed to readers, in one locale
type PostSummary struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Excerpt     string            `json:"excerpt"`
	Locale      content.Locale    `json:"locale"`
	Fallback    bool              `json:"fallback"`
	ImageURL    string            `json:"image_url"`
	Author      SimplifiedAuthor  `json:"author"`
	Category    *CategoryResponse `json:"category,omitempty"`
	PublishedAt *time.Time        `json:"published_at"`
}

// PostDetail carries the sanitized body of a post. The raw stored HTML is
// never part of a reader response.
type PostDetail struct {
	PostSummary
	ContentHTML string    `json:"content_html"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminPostSummary lists a post for the editor dashboard
type AdminPostSummary struct {
	ID           string           `json:"id"`
	Slug         string           `json:"slug"`
	Title        string           `json:"title"`
	Published    bool             `json:"published"`
	Translations []content.Locale `json:"translations"`
	Author       SimplifiedAuthor `json:"author"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type cachedPostList struct {
	Posts []models.Post `json:"posts"`
	Total int64         `json:"total"`
}

func renderPost(p *models.Post, want content.Locale) content.Rendered {
	start := time.Now()
	rendered := content.Render(p, want)
	metrics.ObserveRender(rendered, time.Since(start))
	return rendered
}

func summarize(p *models.Post, want content.Locale) PostSummary {
	served, raw := content.Pick(want, p.LocalizedContent)
	_, title := content.Pick(want, p.LocalizedTitle)

	s := PostSummary{
		ID:       p.ID,
		Slug:     p.Slug,
		Title:    utils.PlainText(title),
		Excerpt:  utils.MakeExcerpt(raw, excerptLength),
		Locale:   served,
		Fallback: served != want,
		ImageURL: utils.PrependBaseURL(p.ImageURL, config.Get().BaseURL),
		Author: SimplifiedAuthor{
			ID:   p.Author.ID,
			Name: p.Author.Name,
		},
		PublishedAt: p.PublishedAt,
	}
	if p.Category != nil {
		c := toCategoryResponse(p.Category, want)
		s.Category = &c
	}
	return s
}

// GetPosts lists published posts in the request locale
func GetPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := middleware.LocaleFrom(ctx)
	page := utils.ParsePagination(r)
	category := r.URL.Query().Get("category")

	// Only raw records are cached; rendering always happens per request
	cacheKey := utils.BuildCacheKey("posts", "list", "page", page.Page, "limit", page.Limit, "category", category)
	var cached cachedPostList
	if err := utils.CacheGet(ctx, cacheKey, &cached); err != nil {
		db := config.GetDB().WithContext(ctx)
		published := func(tx *gorm.DB) *gorm.DB {
			tx = tx.Where("posts.published = ?", true)
			if category != "" {
				tx = tx.Joins("JOIN categories ON categories.id = posts.category_id").
					Where("categories.slug = ?", category)
			}
			return tx
		}

		if err := db.Model(&models.Post{}).Scopes(published).Count(&cached.Total).Error; err != nil {
			logger.FromContext(ctx).Error("Unable to count posts", slog.Any("error", err))
			utils.RespondInternalError(w)
			return
		}
		if err := db.Scopes(published).Preload("Author").Preload("Category").
			Order("posts.published_at DESC, posts.created_at DESC").
			Limit(page.Limit).Offset(page.Offset).
			Find(&cached.Posts).Error; err != nil {
			logger.FromContext(ctx).Error("Unable to list posts", slog.Any("error", err))
			utils.RespondInternalError(w)
			return
		}

		_ = utils.CacheSet(ctx, cacheKey, cached, utils.CacheTTLPostList)
	}

	posts := make([]PostSummary, len(cached.Posts))
	for i := range cached.Posts {
		posts[i] = summarize(&cached.Posts[i], locale)
	}

	w.Header().Set("Content-Language", locale.String())
	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"posts": posts,
	}, page.Meta(cached.Total))
}

// GetPostBySlug renders a single published post in the request locale,
// falling back to the default locale when the translation is missing.
func GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]
	locale := middleware.LocaleFrom(ctx)

	post, err := findPublishedPost(r, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondNotFound(w, "Post")
			return
		}
		logger.FromContext(ctx).Error("Unable to load post", slog.String("slug", slug), slog.Any("error", err))
		utils.RespondInternalError(w)
		return
	}

	rendered := renderPost(post, locale)
	if rendered.Truncated {
		logger.FromContext(ctx).Warn("Post content truncated before rendering",
			slog.String("slug", slug),
			slog.String("locale", rendered.Locale.String()))
	}

	detail := PostDetail{
		PostSummary: summarize(post, locale),
		ContentHTML: rendered.HTML,
		UpdatedAt:   post.UpdatedAt,
	}
	detail.Locale = rendered.Locale
	detail.Fallback = rendered.Fallback

	etag, err := entityTag(detail)
	if err == nil {
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Header().Set("Content-Language", rendered.Locale.String())
	utils.RespondSuccess(w, http.StatusOK, detail, nil)
}

func findPublishedPost(r *http.Request, slug string) (*models.Post, error) {
	ctx := r.Context()
	cacheKey := utils.BuildCacheKey("posts", "slug", slug)

	var post models.Post
	if err := utils.CacheGet(ctx, cacheKey, &post); err == nil {
		return &post, nil
	}

	err := config.GetDB().WithContext(ctx).
		Preload("Author").Preload("Category").
		Where("slug = ? AND published = ?", slug, true).
		First(&post).Error
	if err != nil {
		return nil, err
	}

	ttl := config.Get().CacheTTL
	_ = utils.CacheSet(ctx, cacheKey, post, ttl)
	return &post, nil
}

func entityTag(v any) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(body)), nil
}

// GetAdminPosts lists every post, drafts included
func GetAdminPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := utils.ParsePagination(r)
	db := config.GetDB().WithContext(ctx)

	var status func(*gorm.DB) *gorm.DB
	switch r.URL.Query().Get("status") {
	case "published", "draft":
		published := r.URL.Query().Get("status") == "published"
		status = func(tx *gorm.DB) *gorm.DB { return tx.Where("published = ?", published) }
	case "":
		status = func(tx *gorm.DB) *gorm.DB { return tx }
	default:
		utils.RespondError(w, http.StatusBadRequest, "INVALID_STATUS", "Status must be 'published' or 'draft'", nil)
		return
	}

	var total int64
	if err := db.Model(&models.Post{}).Scopes(status).Count(&total).Error; err != nil {
		utils.RespondInternalError(w)
		return
	}

	var posts []models.Post
	if err := db.Scopes(status).Preload("Author").Order("updated_at DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&posts).Error; err != nil {
		utils.RespondInternalError(w)
		return
	}

	summaries := make([]AdminPostSummary, len(posts))
	for i := range posts {
		p := &posts[i]
		summaries[i] = AdminPostSummary{
			ID:           p.ID,
			Slug:         p.Slug,
			Title:        p.TitleEn,
			Published:    p.Published,
			Translations: translations(p),
			Author:       SimplifiedAuthor{ID: p.Author.ID, Name: p.Author.Name},
			UpdatedAt:    p.UpdatedAt,
		}
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"posts": summaries,
	}, page.Meta(total))
}

func translations(p *models.Post) []content.Locale {
	var out []content.Locale
	for _, l := range content.Locales() {
		if strings.TrimSpace(p.LocalizedContent(l)) != "" {
			out = append(out, l)
		}
	}
	return out
}

// GetAdminPost returns the raw stored fields of a post for editing
func GetAdminPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var post models.Post
	if err := config.GetDB().WithContext(r.Context()).Preload("Author").Preload("Category").
		First(&post, "id = ?", id).Error; err != nil {
		utils.RespondNotFound(w, "Post")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, post, nil)
}

// readPostForm copies the submitted multipart fields onto p. Fields absent
// from the form are left alone, so the same reader serves partial updates.
func readPostForm(r *http.Request, p *models.Post) (map[string]bool, map[string]string) {
	updated := make(map[string]bool)
	fields := make(map[string]string)
	form := r.MultipartForm.Value

	for _, l := range content.Locales() {
		titleKey := "title_" + l.String()
		if v, ok := form[titleKey]; ok {
			title := strings.TrimSpace(v[0])
			if utf8.RuneCountInString(title) > maxTitleLength {
				fields[titleKey] = fmt.Sprintf("Must be at most %d characters", maxTitleLength)
			}
			p.SetTitle(l, title)
			updated[titleKey] = true
		}

		contentKey := "content_" + l.String()
		if v, ok := form[contentKey]; ok {
			if len(v[0]) > content.MaxInputBytes {
				fields[contentKey] = fmt.Sprintf("Must be at most %d bytes", content.MaxInputBytes)
			}
			p.SetContent(l, v[0])
			updated[contentKey] = true
		}
	}

	if v, ok := form["slug"]; ok {
		p.Slug = utils.GenerateSlug(v[0])
		updated["slug"] = true
	}
	if v, ok := form["category_id"]; ok {
		if id := strings.TrimSpace(v[0]); id != "" {
			p.CategoryID = &id
		} else {
			p.CategoryID = nil
		}
		p.Category = nil
		updated["category_id"] = true
	}
	if v, ok := form["published"]; ok {
		p.Published = v[0] == "true"
		if p.Published && p.PublishedAt == nil {
			now := time.Now()
			p.PublishedAt = &now
		}
		updated["published"] = true
	}

	if strings.TrimSpace(p.TitleEn) == "" {
		fields["title_en"] = "title_en is required"
	}
	if p.Slug == "" {
		p.Slug = utils.GenerateSlug(p.TitleEn)
	}
	if p.Slug == "" && fields["title_en"] == "" {
		fields["slug"] = "Slug could not be generated from the title"
	}
	return updated, fields
}

func checkPostReferences(db *gorm.DB, p *models.Post, fields map[string]string) error {
	var count int64
	if err := db.Model(&models.Post{}).Where("slug = ? AND id <> ?", p.Slug, p.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fields["slug"] = "Slug already exists. Please use a different slug."
	}

	if p.CategoryID != nil {
		if err := db.Model(&models.Category{}).Where("id = ?", *p.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			fields["category_id"] = "Category not found"
		}
	}
	return nil
}

func invalidatePostCaches(r *http.Request, slugs ...string) {
	ctx := r.Context()
	_ = utils.CacheDeletePattern(ctx, "posts:list:*")
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, utils.BuildCacheKey("posts", "slug", s))
		}
	}
	_ = utils.CacheDelete(ctx, keys...)
}

// CreatePost stores a new post. Content is kept exactly as submitted and
// only sanitized when rendered.
func CreatePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		utils.RespondBadRequest(w, "Failed to parse form data")
		return
	}

	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "Unauthorized")
		return
	}
	post := models.Post{AuthorID: claims.UserID}

	_, fields := readPostForm(r, &post)
	db := config.GetDB().WithContext(r.Context())
	if err := checkPostReferences(db, &post, fields); err != nil {
		utils.RespondInternalError(w)
		return
	}
	if len(fields) > 0 {
		utils.RespondValidationError(w, fields)
		return
	}

	// Get the image file (optional)
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()

		imageResult, err := utils.SaveImage(file, header, "posts")
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "INVALID_IMAGE", err.Error(), nil)
			return
		}
		post.ImageURL = imageResult.URL
	}

	if err := db.Create(&post).Error; err != nil {
		// If database save fails, delete the uploaded image
		if post.ImageURL != "" {
			_ = utils.DeleteImage(post.ImageURL)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondConflict(w, "SLUG_EXISTS", "Slug already exists")
			return
		}
		logger.FromContext(r.Context()).Error("Unable to create post", slog.Any("error", err))
		utils.RespondInternalError(w)
		return
	}

	invalidatePostCaches(r)

	utils.RespondSuccess(w, http.StatusCreated, map[string]any{
		"id":   post.ID,
		"slug": post.Slug,
	}, nil)
}

// UpdatePost updates a post
// Supports partial updates - only send fields you want to change
// Always use multipart/form-data for all updates (with or without image)
func UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	db := config.GetDB().WithContext(r.Context())

	var post models.Post
	if err := db.First(&post, "id = ?", id).Error; err != nil {
		utils.RespondNotFound(w, "Post")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		utils.RespondBadRequest(w, "Failed to parse form data")
		return
	}

	oldSlug := post.Slug
	updated, fields := readPostForm(r, &post)
	if err := checkPostReferences(db, &post, fields); err != nil {
		utils.RespondInternalError(w)
		return
	}
	if len(fields) > 0 {
		utils.RespondValidationError(w, fields)
		return
	}

	staleImage, err := applyImageForm(r, &post, updated)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "INVALID_IMAGE", err.Error(), nil)
		return
	}

	if len(updated) > 0 {
		if err := db.Omit("Author", "Category").Save(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.RespondConflict(w, "SLUG_EXISTS", "Slug already exists")
				return
			}
			logger.FromContext(r.Context()).Error("Unable to update post", slog.String("id", id), slog.Any("error", err))
			utils.RespondInternalError(w)
			return
		}

		// Old image goes only after the new state is saved
		if staleImage != "" {
			_ = utils.DeleteImage(staleImage)
		}
		invalidatePostCaches(r, oldSlug, post.Slug)
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"message":        "Post updated successfully",
		"updated_fields": updated,
		"data":           post,
	}, nil)
}

// applyImageForm handles the image fields of an update form: delete_image
// wins over a new upload. It returns the image URL that is no longer used.
func applyImageForm(r *http.Request, post *models.Post, updated map[string]bool) (string, error) {
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
	}

	switch {
	case r.FormValue("delete_image") == "true":
		stale := post.ImageURL
		post.ImageURL = ""
		updated["image_deleted"] = true
		return stale, nil
	case err == nil:
		imageResult, err := utils.SaveImage(file, header, "posts")
		if err != nil {
			return "", err
		}
		stale := post.ImageURL
		post.ImageURL = imageResult.URL
		updated["image_updated"] = true
		return stale, nil
	}
	return "", nil
}

// DeletePost soft deletes a post and removes its image
func DeletePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	db := config.GetDB().WithContext(r.Context())

	var post models.Post
	if err := db.First(&post, "id = ?", id).Error; err != nil {
		utils.RespondNotFound(w, "Post")
		return
	}

	if err := db.Delete(&post).Error; err != nil {
		utils.RespondInternalError(w)
		return
	}

	_ = utils.DeleteImage(post.ImageURL)
	invalidatePostCaches(r, post.Slug)

	utils.RespondSuccess(w, http.StatusOK, map[string]string{
		"message": "Post deleted successfully",
	}, nil)
}
