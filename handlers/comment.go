package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"polyglot-blog-be/config"
	"polyglot-blog-be/models"
	"polyglot-blog-be/utils"
)

type CommentRequest struct {
	AuthorName string `json:"author_name" validate:"required,max=80"`
	Email      string `json:"email" validate:"required,email"`
	Body       string `json:"body" validate:"required,max=2000"`
}

// GetComments lists the approved comments of a published post
func GetComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	post, err := findPublishedPost(r, slug)
	if err != nil {
		utils.RespondNotFound(w, "Post")
		return
	}

	var comments []models.Comment
	if err := config.GetDB().WithContext(ctx).
		Where("post_id = ? AND approved = ?", post.ID, true).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		utils.RespondInternalError(w)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"comments": comments,
	}, nil)
}

// CreateComment stores a reader comment awaiting moderation. Markup in the
// name and body is reduced to plain text.
func CreateComment(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req CommentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		utils.RespondBadRequest(w, "Invalid request payload")
		return
	}

	req.AuthorName = utils.PlainText(req.AuthorName)
	req.Body = utils.PlainText(req.Body)
	req.Email = strings.TrimSpace(req.Email)
	if fields := utils.ValidateStruct(req); fields != nil {
		utils.RespondValidationError(w, fields)
		return
	}

	post, err := findPublishedPost(r, slug)
	if err != nil {
		utils.RespondNotFound(w, "Post")
		return
	}

	comment := models.Comment{
		PostID:     post.ID,
		AuthorName: req.AuthorName,
		Email:      req.Email,
		Body:       req.Body,
	}
	if err := config.GetDB().WithContext(r.Context()).Create(&comment).Error; err != nil {
		utils.RespondInternalError(w)
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, map[string]any{
		"id":      comment.ID,
		"message": "Comment submitted for moderation",
	}, nil)
}

// GetPendingComments lists comments awaiting moderation
func GetPendingComments(w http.ResponseWriter, r *http.Request) {
	page := utils.ParsePagination(r)
	db := config.GetDB().WithContext(r.Context())

	var total int64
	if err := db.Model(&models.Comment{}).Where("approved = ?", false).Count(&total).Error; err != nil {
		utils.RespondInternalError(w)
		return
	}

	var comments []models.Comment
	if err := db.Where("approved = ?", false).Order("created_at ASC").
		Limit(page.Limit).Offset(page.Offset).Find(&comments).Error; err != nil {
		utils.RespondInternalError(w)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"comments": comments,
	}, page.Meta(total))
}

// ApproveComment publishes a comment
func ApproveComment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	res := config.GetDB().WithContext(r.Context()).
		Model(&models.Comment{}).Where("id = ?", id).Update("approved", true)
	if res.Error != nil {
		utils.RespondInternalError(w)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondNotFound(w, "Comment")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{
		"message": "Comment approved",
	}, nil)
}

// DeleteComment soft deletes a comment
func DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	res := config.GetDB().WithContext(r.Context()).Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		utils.RespondInternalError(w)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondNotFound(w, "Comment")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{
		"message": "Comment deleted successfully",
	}, nil)
}
