package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ahmad435-vlaygo/adminValygobackend/middleware"
	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"
)

func (h *Handlers) GetAllSubscriptions(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	query := h.db.Model(&models.Subscription{})
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID := r.URL.Query().Get("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch subscriptions", nil)
		return
	}

	var subs []models.Subscription
	if err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&subs).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch subscriptions", nil)
		return
	}

	// Project VYO decimal amounts into display numbers alongside the record.
	type subView struct {
		models.Subscription
		DepositLockDisplay float64 `json:"deposit_lock_vyo_display"`
	}
	data := make([]subView, 0, len(subs))
	for _, s := range subs {
		v := subView{Subscription: s}
		if s.DepositLockVYO.Valid {
			v.DepositLockDisplay, _ = s.DepositLockVYO.Decimal.Float64()
		}
		data = append(data, v)
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       data,
		"pagination": newPagination(total, page, limit),
	})
}

func (h *Handlers) GetSubscriptionStats(w http.ResponseWriter, r *http.Request) {
	stats := h.subscriptionStatsGroup()
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stats,
	})
}

// UpdateSubscriptionStatus is the admin override on the otherwise externally
// driven subscription lifecycle. Values normalize to uppercase.
func (h *Handlers) UpdateSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid subscription id", nil)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	status := strings.ToUpper(utils.SanitizeString(req.Status))
	if !utils.IsOneOf(status, models.SubscriptionStatuses) {
		sendError(w, http.StatusBadRequest, "Invalid status",
			"Status must be one of: "+strings.Join(models.SubscriptionStatuses, ", "))
		return
	}

	result := h.db.Model(&models.Subscription{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		sendError(w, http.StatusInternalServerError, "Failed to update subscription", nil)
		return
	}
	if result.RowsAffected == 0 {
		sendError(w, http.StatusNotFound, "Subscription not found", nil)
		return
	}

	var sub models.Subscription
	if err := h.db.First(&sub, id).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch subscription", nil)
		return
	}

	if claims := middleware.GetUserFromContext(r); claims != nil {
		h.logAudit(r, &claims.UserID, "UPDATE", "SUBSCRIPTION", "Status set to "+status)
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sub,
	})
}
