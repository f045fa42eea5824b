package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ahmad435-vlaygo/adminValygobackend/middleware"
	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"
)

func (h *Handlers) GetAllKycRequests(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	query := h.db.Model(&models.KYC{})
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch KYC requests", nil)
		return
	}

	var requests []models.KYC
	if err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch KYC requests", nil)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       requests,
		"pagination": newPagination(total, page, limit),
	})
}

func (h *Handlers) GetKycByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid KYC id", nil)
		return
	}

	var kyc models.KYC
	if err := h.db.Preload("User").First(&kyc, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			sendError(w, http.StatusNotFound, "KYC not found", nil)
			return
		}
		sendError(w, http.StatusInternalServerError, "Failed to fetch KYC", nil)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    kyc,
	})
}

// ApproveKyc marks the record approved and propagates the verified flag onto
// the linked user. Both writes happen in one transaction.
func (h *Handlers) ApproveKyc(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid KYC id", nil)
		return
	}

	tx := h.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var kyc models.KYC
	if err := tx.First(&kyc, id).Error; err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			sendError(w, http.StatusNotFound, "KYC not found", nil)
			return
		}
		sendError(w, http.StatusInternalServerError, "Failed to fetch KYC record", nil)
		return
	}

	now := time.Now()
	if err := tx.Model(&kyc).Updates(map[string]interface{}{
		"status":      "approved",
		"reviewed_at": &now,
		"approved_at": &now,
	}).Error; err != nil {
		tx.Rollback()
		sendError(w, http.StatusInternalServerError, "Failed to update KYC record", nil)
		return
	}

	if err := tx.Model(&models.User{}).Where("id = ?", kyc.UserID).Update("kyc_verified", true).Error; err != nil {
		tx.Rollback()
		sendError(w, http.StatusInternalServerError, "Failed to update user KYC status", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to commit KYC approval", nil)
		return
	}

	if claims := middleware.GetUserFromContext(r); claims != nil {
		h.logAudit(r, &claims.UserID, "UPDATE", "KYC", "KYC approved")
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    kyc,
	})
}

// RejectKyc requires a non-empty reason and never touches the user's
// verified flag.
func (h *Handlers) RejectKyc(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid KYC id", nil)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	reason := utils.SanitizeString(req.Reason)
	if reason == "" {
		sendError(w, http.StatusBadRequest, "Rejection reason required", nil)
		return
	}

	now := time.Now()
	result := h.db.Model(&models.KYC{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":           "rejected",
		"reviewed_at":      &now,
		"rejection_reason": reason,
	})
	if result.Error != nil {
		sendError(w, http.StatusInternalServerError, "Failed to update KYC record", nil)
		return
	}
	if result.RowsAffected == 0 {
		sendError(w, http.StatusNotFound, "KYC not found", nil)
		return
	}

	var kyc models.KYC
	if err := h.db.First(&kyc, id).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch KYC record", nil)
		return
	}

	if claims := middleware.GetUserFromContext(r); claims != nil {
		h.logAudit(r, &claims.UserID, "UPDATE", "KYC", "KYC rejected: "+reason)
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    kyc,
	})
}

func (h *Handlers) GetKycStats(w http.ResponseWriter, r *http.Request) {
	pending := h.countRows(h.db.Model(&models.KYC{}).Where("status = ?", "pending"))
	underReview := h.countRows(h.db.Model(&models.KYC{}).Where("status = ?", "under_review"))
	approved := h.countRows(h.db.Model(&models.KYC{}).Where("status = ?", "approved"))
	rejected := h.countRows(h.db.Model(&models.KYC{}).Where("status = ?", "rejected"))

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"pending":     pending,
			"underReview": underReview,
			"approved":    approved,
			"rejected":    rejected,
			"total":       pending + underReview + approved + rejected,
		},
	})
}

// GetKycStatusFromUsers lists verification state straight off the user
// records. Document records are bank-controlled and not consulted here.
func (h *Handlers) GetKycStatusFromUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	query := h.db.Model(&models.User{})
	if search := utils.SanitizeString(r.URL.Query().Get("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"lower(first_name) LIKE ? OR lower(last_name) LIKE ? OR lower(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	switch r.URL.Query().Get("kycStatus") {
	case "verified":
		query = query.Where("kyc_verified = ?", true)
	case "not_verified":
		query = query.Where("kyc_verified = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch KYC status", nil)
		return
	}

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch KYC status", nil)
		return
	}

	type row struct {
		ID        uint      `json:"id"`
		FirstName string    `json:"first_name"`
		LastName  string    `json:"last_name"`
		Email     string    `json:"email"`
		KycStatus string    `json:"kycStatus"`
		CreatedAt time.Time `json:"created_at"`
	}
	data := make([]row, 0, len(users))
	for _, u := range users {
		status := "Not verified"
		if u.KycVerified {
			status = "Verified"
		}
		data = append(data, row{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			KycStatus: status,
			CreatedAt: u.CreatedAt,
		})
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       data,
		"pagination": newPagination(total, page, limit),
	})
}
