package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"polyglot-blog-be/config"
	"polyglot-blog-be/middleware"
	"polyglot-blog-be/models"
	"polyglot-blog-be/utils"
)

type UpdateUserRequest struct {
	Name     *string      `json:"name" validate:"omitempty,min=1,max=100"`
	Email    *string      `json:"email" validate:"omitempty,email"`
	Password *string      `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *models.Role `json:"role" validate:"omitempty,oneof=admin editor"`
}

func userInfo(u *models.User) map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

// GetCurrentUser retrieves current authenticated user info
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "Unauthorized")
		return
	}

	var user models.User
	if err := config.GetDB().WithContext(r.Context()).Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		utils.RespondNotFound(w, "User")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, userInfo(&user), nil)
}

// GetUsers retrieves all users (admin only)
func GetUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := config.GetDB().WithContext(r.Context()).Order("created_at ASC").Find(&users).Error; err != nil {
		utils.RespondInternalError(w)
		return
	}

	response := make([]map[string]any, len(users))
	for i := range users {
		response[i] = userInfo(&users[i])
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"users": response,
	}, nil)
}

// GetUser retrieves a single user by ID
func GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var user models.User
	if err := config.GetDB().WithContext(r.Context()).First(&user, "id = ?", id).Error; err != nil {
		utils.RespondNotFound(w, "User")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, userInfo(&user), nil)
}

// UpdateUser updates a user (admin only)
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	claims, _ := middleware.ClaimsFrom(r.Context())

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondBadRequest(w, "Invalid request payload")
		return
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		utils.RespondValidationError(w, fields)
		return
	}

	db := config.GetDB().WithContext(r.Context())
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		utils.RespondNotFound(w, "User")
		return
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		// An admin cannot lock themselves out
		if claims != nil && claims.UserID == id && *req.Role != models.RoleAdmin {
			utils.RespondForbidden(w, "You cannot change your own role")
			return
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hashedPassword, err := utils.HashPassword(*req.Password)
		if err != nil {
			utils.RespondInternalError(w)
			return
		}
		user.Password = hashedPassword
	}

	if err := db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondConflict(w, "EMAIL_EXISTS", "Email already registered")
			return
		}
		utils.RespondInternalError(w)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, userInfo(&user), nil)
}

// DeleteUser soft deletes a user (admin only)
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if claims, ok := middleware.ClaimsFrom(r.Context()); ok && claims.UserID == id {
		utils.RespondForbidden(w, "You cannot delete your own account")
		return
	}

	res := config.GetDB().WithContext(r.Context()).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		utils.RespondInternalError(w)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondNotFound(w, "User")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	}, nil)
}
