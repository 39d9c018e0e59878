package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"polyglot-blog-be/config"
	"polyglot-blog-be/models"
	"polyglot-blog-be/utils"
)

type RegisterRequest struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=admin editor"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginData struct {
	UserID    string `json:"user_id"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // Unix timestamp
}

// Register creates a new staff user (admin only)
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondBadRequest(w, "Invalid request payload")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if fields := utils.ValidateStruct(req); fields != nil {
		utils.RespondValidationError(w, fields)
		return
	}

	// Default role is editor
	if req.Role == "" {
		req.Role = models.RoleEditor
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondInternalError(w)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     req.Role,
	}

	if err := config.GetDB().WithContext(r.Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondConflict(w, "EMAIL_EXISTS", "Email already registered")
			return
		}
		utils.RespondInternalError(w)
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, userInfo(&user), nil)
}

// Login authenticates a user and returns a JWT token
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondBadRequest(w, "Invalid request payload")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if fields := utils.ValidateStruct(req); fields != nil {
		utils.RespondValidationError(w, fields)
		return
	}

	var user models.User
	if err := config.GetDB().WithContext(r.Context()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.RespondUnauthorized(w, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.RespondUnauthorized(w, "Invalid credentials")
		return
	}

	cfg := config.Get()
	token, expiresAt, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role), cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		utils.RespondInternalError(w)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, LoginData{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil)
}
