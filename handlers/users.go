package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ahmad435-vlaygo/adminValygobackend/middleware"
	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"
)

// lockedDepositByUser sums decimal VYO deposit locks from active
// subscriptions per user. Summed as decimals, converted once for display.
func (h *Handlers) lockedDepositByUser(userIDs []uint) map[uint]float64 {
	out := make(map[uint]float64, len(userIDs))
	if len(userIDs) == 0 {
		return out
	}

	var subs []models.Subscription
	if err := h.db.
		Where("user_id IN ? AND status = ?", userIDs, "ACTIVE").
		Find(&subs).Error; err != nil {
		return out
	}

	totals := make(map[uint]decimal.Decimal, len(userIDs))
	for _, s := range subs {
		if !s.DepositLockVYO.Valid {
			continue
		}
		totals[s.UserID] = totals[s.UserID].Add(s.DepositLockVYO.Decimal)
	}
	for id, d := range totals {
		out[id], _ = d.Float64()
	}
	return out
}

func (h *Handlers) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	query := h.db.Model(&models.User{})
	if search := utils.SanitizeString(r.URL.Query().Get("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"lower(first_name) LIKE ? OR lower(last_name) LIKE ? OR lower(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userType := r.URL.Query().Get("type"); userType != "" {
		query = query.Where("type = ?", userType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch users", nil)
		return
	}

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch users", nil)
		return
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	deposits := h.lockedDepositByUser(ids)

	type userWithDeposit struct {
		models.User
		LockedDepositVyo float64 `json:"lockedDepositVyo"`
	}
	data := make([]userWithDeposit, 0, len(users))
	for _, u := range users {
		data = append(data, userWithDeposit{User: u, LockedDepositVyo: deposits[u.ID]})
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"data":       data,
		"pagination": newPagination(total, page, limit),
	})
}

func (h *Handlers) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid user id", nil)
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			sendError(w, http.StatusNotFound, "User not found", nil)
			return
		}
		sendError(w, http.StatusInternalServerError, "Failed to fetch user", nil)
		return
	}

	sendJSON(w, http.StatusOK, user)
}

func (h *Handlers) GetUserStats(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"totalUsers":  h.countRows(h.db.Model(&models.User{})),
			"activeUsers": h.countRows(h.db.Model(&models.User{}).Where("status NOT IN ?", []string{"suspended", "inactive"})),
			"kycPending":  h.countRows(h.db.Model(&models.User{}).Where("kyc_verified = ?", false)),
			"totalVolume": round2(h.sumColumn(h.db.Model(&models.Transaction{}).Where("status = ?", "completed"), "amount")),
		},
	})
}

// UpdateUserStatus normalizes and validates against the closed status set
// before touching storage.
func (h *Handlers) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid user id", nil)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	status := strings.ToLower(utils.SanitizeString(req.Status))
	if !utils.IsOneOf(status, models.UserStatuses) {
		sendError(w, http.StatusBadRequest, "Invalid status",
			"Status must be one of: "+strings.Join(models.UserStatuses, ", "))
		return
	}

	result := h.db.Model(&models.User{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		sendError(w, http.StatusInternalServerError, "Failed to update user", nil)
		return
	}
	if result.RowsAffected == 0 {
		sendError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch user", nil)
		return
	}

	if claims := middleware.GetUserFromContext(r); claims != nil {
		h.logAudit(r, &claims.UserID, "UPDATE", "USER", "Status set to "+status)
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    user,
	})
}

// DeleteUser performs a hard delete. Transactions and subscriptions are not
// cascaded; orphaned references are accepted.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid user id", nil)
		return
	}

	result := h.db.Delete(&models.User{}, id)
	if result.Error != nil {
		sendError(w, http.StatusInternalServerError, "Failed to delete user", nil)
		return
	}
	if result.RowsAffected == 0 {
		sendError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	if claims := middleware.GetUserFromContext(r); claims != nil {
		h.logAudit(r, &claims.UserID, "DELETE", "USER", "User deleted")
	}

	sendJSON(w, http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	})
}
