package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"polyglot-blog-be/config"
	"polyglot-blog-be/content"
	"polyglot-blog-be/middleware"
	"polyglot-blog-be/models"
	"polyglot-blog-be/utils"
)

type SubscribeRequest struct {
	Email  string `json:"email" validate:"required,email,max=254"`
	Locale string `json:"locale" validate:"omitempty,locale"`
}

type UnsubscribeRequest struct {
	Token string `json:"token" validate:"required,uuid"`
}

// Subscribe registers an email for the newsletter. The preferred locale
// defaults to the request locale.
func Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&req); err != nil {
		utils.RespondBadRequest(w, "Invalid request payload")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if fields := utils.ValidateStruct(req); fields != nil {
		utils.RespondValidationError(w, fields)
		return
	}

	locale := middleware.LocaleFrom(r.Context())
	if l, ok := content.ParseLocale(req.Locale); ok {
		locale = l
	}

	subscriber := models.Subscriber{
		Email:  req.Email,
		Locale: locale.String(),
	}
	if err := config.GetDB().WithContext(r.Context()).Create(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondConflict(w, "ALREADY_SUBSCRIBED", "Email already subscribed")
			return
		}
		utils.RespondInternalError(w)
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, map[string]any{
		"email":  subscriber.Email,
		"locale": subscriber.Locale,
	}, nil)
}

// Unsubscribe removes the subscriber owning the token
func Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req UnsubscribeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&req); err != nil {
		utils.RespondBadRequest(w, "Invalid request payload")
		return
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		utils.RespondValidationError(w, fields)
		return
	}

	// Hard delete so the address can subscribe again later
	res := config.GetDB().WithContext(r.Context()).Unscoped().
		Delete(&models.Subscriber{}, "token = ?", req.Token)
	if res.Error != nil {
		utils.RespondInternalError(w)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondNotFound(w, "Subscription")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{
		"message": "Unsubscribed successfully",
	}, nil)
}

// GetSubscribers lists subscribers, optionally filtered by locale
func GetSubscribers(w http.ResponseWriter, r *http.Request) {
	page := utils.ParsePagination(r)
	db := config.GetDB().WithContext(r.Context())

	byLocale := func(tx *gorm.DB) *gorm.DB { return tx }
	if v := r.URL.Query().Get("locale"); v != "" {
		l, ok := content.ParseLocale(v)
		if !ok {
			utils.RespondValidationError(w, map[string]string{"locale": "Unsupported locale"})
			return
		}
		byLocale = func(tx *gorm.DB) *gorm.DB { return tx.Where("locale = ?", l.String()) }
	}

	var total int64
	if err := db.Model(&models.Subscriber{}).Scopes(byLocale).Count(&total).Error; err != nil {
		utils.RespondInternalError(w)
		return
	}

	var subscribers []models.Subscriber
	if err := db.Scopes(byLocale).Order("created_at DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&subscribers).Error; err != nil {
		utils.RespondInternalError(w)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"subscribers": subscribers,
	}, page.Meta(total))
}
