package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/ahmad435-vlaygo/adminValygobackend/models"
)

func (h *Handlers) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	query := h.db.Model(&models.Transaction{})
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if txType := r.URL.Query().Get("type"); txType != "" {
		query = query.Where("transaction_type = ?", txType)
	}
	if userID := r.URL.Query().Get("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch transactions", nil)
		return
	}

	var txns []models.Transaction
	if err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch transactions", nil)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       txns,
		"pagination": newPagination(total, page, limit),
	})
}

func (h *Handlers) GetTransactionStats(w http.ResponseWriter, r *http.Request) {
	stats := h.transactionStatsGroup()
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stats,
	})
}

func (h *Handlers) GetTransactionByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid transaction id", nil)
		return
	}

	var txn models.Transaction
	if err := h.db.Preload("User").First(&txn, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			sendError(w, http.StatusNotFound, "Transaction not found", nil)
			return
		}
		sendError(w, http.StatusInternalServerError, "Failed to fetch transaction", nil)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    txn,
	})
}
