package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/ahmad435-vlaygo/adminValygobackend/middleware"
	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	// Same response whether the email is unknown or the password is wrong,
	// so login cannot be used to enumerate accounts.
	var admin models.AdminUser
	if err := h.db.Where("email = ?", utils.NormalizeEmail(req.Email)).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			sendError(w, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		log.Printf("Database error during login for %s: %v", req.Email, err)
		sendError(w, http.StatusInternalServerError, "Login failed", nil)
		return
	}

	if !utils.CheckPasswordHash(req.Password, admin.Password) {
		sendError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	// Best-effort: a failed lastLogin write must not fail the login.
	now := time.Now()
	if err := h.db.Model(&admin).Update("last_login", &now).Error; err != nil {
		log.Printf("Failed to update lastLogin for %s: %v", admin.Email, err)
	}

	token, err := utils.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		log.Printf("Failed to generate token for %s: %v", admin.Email, err)
		sendError(w, http.StatusInternalServerError, "Failed to generate token", nil)
		return
	}

	h.logAudit(r, &admin.ID, "LOGIN", "AUTH", "Admin logged in")

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"accessToken": token,
			"user": map[string]interface{}{
				"id":    admin.ID,
				"name":  admin.Name,
				"email": admin.Email,
				"role":  admin.Role,
			},
		},
	})
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		sendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var admin models.AdminUser
	if err := h.db.Where("email = ?", utils.NormalizeEmail(claims.Email)).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			sendError(w, http.StatusNotFound, "Admin not found", nil)
			return
		}
		sendError(w, http.StatusInternalServerError, "Failed to fetch profile", nil)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"id":     admin.ID,
			"name":   admin.Name,
			"email":  admin.Email,
			"role":   admin.Role,
			"status": admin.Status,
		},
	})
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		sendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	var admin models.AdminUser
	if err := h.db.Where("email = ?", utils.NormalizeEmail(claims.Email)).First(&admin).Error; err != nil {
		sendError(w, http.StatusNotFound, "Admin not found", nil)
		return
	}

	if name := utils.SanitizeString(req.Name); name != "" {
		admin.Name = name
	}

	if newEmail := utils.NormalizeEmail(req.Email); newEmail != "" && newEmail != admin.Email {
		var existing models.AdminUser
		if err := h.db.Where("email = ? AND id <> ?", newEmail, admin.ID).First(&existing).Error; err == nil {
			sendError(w, http.StatusConflict, "Email already in use", nil)
			return
		}
		admin.Email = newEmail
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			sendError(w, http.StatusBadRequest, "Current password required to set new password", nil)
			return
		}
		if !utils.CheckPasswordHash(req.CurrentPassword, admin.Password) {
			sendError(w, http.StatusUnauthorized, "Current password is incorrect", nil)
			return
		}
		hashed, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			sendError(w, http.StatusInternalServerError, "Failed to update password", nil)
			return
		}
		admin.Password = hashed
	}

	if err := h.db.Save(&admin).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to update profile", nil)
		return
	}

	h.logAudit(r, &admin.ID, "UPDATE", "ADMIN", "Profile updated")

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"data":    admin,
		"message": "Profile updated",
	})
}
