package handlers

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/ahmad435-vlaygo/adminValygobackend/config"
	"github.com/ahmad435-vlaygo/adminValygobackend/email"
	"github.com/ahmad435-vlaygo/adminValygobackend/middleware"
	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"
)

// ErrorResponse is the standardized error envelope.
type ErrorResponse struct {
	Status    int         `json:"status"`
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func sendError(w http.ResponseWriter, status int, err string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:    status,
		Error:     err,
		Details:   details,
		Timestamp: time.Now(),
	})
}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Pagination is the envelope returned by every list endpoint.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func newPagination(total int64, page, limit int) Pagination {
	return Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

func parsePagination(r *http.Request) (page, limit, offset int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

func muxVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func parseID(r *http.Request, name string) (uint, bool) {
	raw := muxVar(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// round2 applies the 2-decimal boundary rounding for currency sums.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type Handlers struct {
	db      *gorm.DB
	config  *config.Config
	mailer  email.Mailer
	genCode func(email string) string
}

func NewHandlers(db *gorm.DB, cfg *config.Config, mailer email.Mailer) *Handlers {
	if mailer == nil {
		mailer = email.NopMailer{}
	}
	return &Handlers{
		db:      db,
		config:  cfg,
		mailer:  mailer,
		genCode: utils.GenerateReferralCode,
	}
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"timestamp": time.Now(),
		"service":   "valygo-admin",
	})
}

// countRows runs a count and degrades to zero on storage errors. All stat
// endpoints use this so a failing sub-query never aborts the response.
func (h *Handlers) countRows(q *gorm.DB) int64 {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		log.Printf("count query failed: %v", err)
		return 0
	}
	return n
}

// sumColumn sums one numeric column under the same degrade-to-zero policy.
func (h *Handlers) sumColumn(q *gorm.DB, column string) float64 {
	var total float64
	if err := q.Select("COALESCE(SUM(" + column + "), 0)").Scan(&total).Error; err != nil {
		log.Printf("sum query failed for %s: %v", column, err)
		return 0
	}
	return total
}

func (h *Handlers) logAudit(r *http.Request, adminID *uint, action, resource, details string) {
	audit := models.AdminAuditLog{
		AdminID:   adminID,
		Action:    action,
		Resource:  resource,
		Details:   details,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
		RequestID: middleware.GetRequestID(r),
	}
	if err := h.db.Create(&audit).Error; err != nil {
		log.Printf("Failed to write audit log (%s %s): %v", action, resource, err)
	}
}
