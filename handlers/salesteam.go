package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ahmad435-vlaygo/adminValygobackend/email"
	"github.com/ahmad435-vlaygo/adminValygobackend/middleware"
	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"
)

// referralCodeAttempts bounds regeneration when a generated code collides
// with the unique index.
const referralCodeAttempts = 3

var (
	errSalesEmailTaken = fmt.Errorf("email already exists in sales team")
	errAdminEmailTaken = fmt.Errorf("email already exists as admin user")
)

func isDuplicateCodeErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "referral_code")
}

// createAgentRecords writes the agent, the mirrored admin principal, and the
// code mapping as one unit. Any failure rolls all three back.
func (h *Handlers) createAgentRecords(req models.CreateSalesTeamUserRequest, createdBy uint, hashed, code string) (*models.SalesTeamUser, error) {
	agent := &models.SalesTeamUser{
		Name:         utils.SanitizeString(req.Name),
		Email:        utils.NormalizeEmail(req.Email),
		Password:     hashed,
		Status:       "active",
		CreatedBy:    createdBy,
		ReferralCode: code,
		Downlines:    models.IDList{},
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var existing models.SalesTeamUser
		if err := tx.Where("email = ?", agent.Email).First(&existing).Error; err == nil {
			return errSalesEmailTaken
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		var existingAdmin models.AdminUser
		if err := tx.Where("email = ?", agent.Email).First(&existingAdmin).Error; err == nil {
			return errAdminEmailTaken
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := tx.Create(agent).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.SalesReferralCode{
			ReferralCode:    code,
			SalesTeamUserID: agent.ID,
		}).Error; err != nil {
			return err
		}

		return tx.Create(&models.AdminUser{
			Name:        agent.Name,
			Email:       agent.Email,
			Password:    hashed,
			Role:        models.RoleSalesTeam,
			Status:      "active",
			Permissions: models.StringList{"referral_dashboard"},
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return agent, nil
}

func (h *Handlers) CreateSalesTeamUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		sendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req models.CreateSalesTeamUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to hash password", nil)
		return
	}

	var agent *models.SalesTeamUser
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		code := h.genCode(req.Email)
		agent, err = h.createAgentRecords(req, claims.UserID, hashed, code)
		if err == nil {
			break
		}
		if isDuplicateCodeErr(err) {
			log.Printf("Referral code collision on %s, regenerating (attempt %d)", code, attempt+1)
			continue
		}
		break
	}
	if err != nil {
		switch err {
		case errSalesEmailTaken, errAdminEmailTaken:
			sendError(w, http.StatusConflict, err.Error(), nil)
		default:
			log.Printf("Failed to create sales team user %s: %v", req.Email, err)
			sendError(w, http.StatusInternalServerError, "Failed to create sales team user", nil)
		}
		return
	}

	h.logAudit(r, &claims.UserID, "CREATE", "SALES_TEAM", "Sales agent created: "+agent.Email)

	// Welcome email is fire-and-forget; a delivery failure never fails the
	// create.
	go func(to, name, code string) {
		subject, html := email.SalesTeamInvite(name, to, code, h.config.FrontendURL)
		if err := h.mailer.Send(to, subject, html); err != nil {
			log.Printf("Failed to send sales team invite to %s: %v", to, err)
		}
	}(agent.Email, agent.Name, agent.ReferralCode)

	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Sales team user created successfully",
		"user": map[string]interface{}{
			"id":            agent.ID,
			"name":          agent.Name,
			"email":         agent.Email,
			"referral_code": agent.ReferralCode,
		},
	})
}

func (h *Handlers) GetSalesTeamUsers(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		sendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var agents []models.SalesTeamUser
	if err := h.db.
		Where("created_by = ?", claims.UserID).
		Order("created_at DESC").
		Find(&agents).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch sales team users", nil)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    agents,
		"total":   len(agents),
	})
}

func (h *Handlers) UpdateSalesTeamUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid sales team user id", nil)
		return
	}

	var req models.UpdateSalesTeamUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	var agent models.SalesTeamUser
	if err := h.db.First(&agent, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			sendError(w, http.StatusNotFound, "Sales team user not found", nil)
			return
		}
		sendError(w, http.StatusInternalServerError, "Failed to fetch sales team user", nil)
		return
	}

	oldEmail := agent.Email
	if name := utils.SanitizeString(req.Name); name != "" {
		agent.Name = name
	}
	if newEmail := utils.NormalizeEmail(req.Email); newEmail != "" {
		agent.Email = newEmail
	}
	if req.Status != "" {
		agent.Status = req.Status
	}

	// The mirrored admin principal carries the agent's login; identity changes
	// must land on both records or neither.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&agent).Error; err != nil {
			return err
		}
		return tx.Model(&models.AdminUser{}).
			Where("email = ? AND role = ?", oldEmail, models.RoleSalesTeam).
			Updates(map[string]interface{}{
				"email": agent.Email,
				"name":  agent.Name,
			}).Error
	})
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to update sales team user", nil)
		return
	}

	if claims := middleware.GetUserFromContext(r); claims != nil {
		h.logAudit(r, &claims.UserID, "UPDATE", "SALES_TEAM", "Sales agent updated: "+agent.Email)
	}

	sendJSON(w, http.StatusOK, agent)
}

func (h *Handlers) DeleteSalesTeamUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid sales team user id", nil)
		return
	}

	result := h.db.Delete(&models.SalesTeamUser{}, id)
	if result.Error != nil {
		sendError(w, http.StatusInternalServerError, "Failed to delete sales team user", nil)
		return
	}
	if result.RowsAffected == 0 {
		sendError(w, http.StatusNotFound, "Sales team user not found", nil)
		return
	}

	if claims := middleware.GetUserFromContext(r); claims != nil {
		h.logAudit(r, &claims.UserID, "DELETE", "SALES_TEAM", "Sales agent deleted")
	}

	sendJSON(w, http.StatusOK, map[string]string{
		"message": "Sales team user deleted successfully",
	})
}

// GetSalesTeamDashboard is the agent's self-service rollup: distinct referred
// users, their active subscriptions, and calendar-month new-subscription
// deltas in the server's local time zone.
func (h *Handlers) GetSalesTeamDashboard(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		sendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var agent models.SalesTeamUser
	if err := h.db.Where("email = ?", utils.NormalizeEmail(claims.Email)).First(&agent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			sendError(w, http.StatusNotFound, "Sales agent profile not found", nil)
			return
		}
		sendError(w, http.StatusInternalServerError, "Failed to fetch sales agent", nil)
		return
	}

	var signups []models.SalesReferralSignup
	if err := h.db.Where("referral_code = ?", agent.ReferralCode).Find(&signups).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch referral signups", nil)
		return
	}

	seen := make(map[uint]bool, len(signups))
	ids := make([]uint, 0, len(signups))
	for _, s := range signups {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			ids = append(ids, s.UserID)
		}
	}

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

	var totalSubscriptions, monthlyNew, lastMonthNew int64
	subCounts := make(map[uint]int64)
	var referredUsers []models.User

	if len(ids) > 0 {
		active := func() *gorm.DB {
			return h.db.Model(&models.Subscription{}).Where("user_id IN ? AND status = ?", ids, "ACTIVE")
		}
		totalSubscriptions = h.countRows(active())
		monthlyNew = h.countRows(active().Where("created_at >= ?", startOfMonth))
		lastMonthNew = h.countRows(active().Where("created_at >= ? AND created_at < ?", startOfLastMonth, startOfMonth))

		type subCount struct {
			UserID uint
			N      int64
		}
		var counts []subCount
		if err := active().
			Select("user_id, COUNT(*) AS n").
			Group("user_id").
			Scan(&counts).Error; err != nil {
			log.Printf("per-user subscription count failed: %v", err)
		}
		for _, c := range counts {
			subCounts[c.UserID] = c.N
		}

		if err := h.db.Where("id IN ?", ids).Limit(5).Find(&referredUsers).Error; err != nil {
			sendError(w, http.StatusInternalServerError, "Failed to fetch referred users", nil)
			return
		}
	}

	type downline struct {
		Name               string `json:"name"`
		Email              string `json:"email"`
		OnboardedUsers     int    `json:"onboardedUsers"`
		TotalSubscriptions int64  `json:"totalSubscriptions"`
		Status             string `json:"status"`
	}
	downlines := make([]downline, 0, len(referredUsers))
	for i := range referredUsers {
		u := &referredUsers[i]
		name := u.FullName()
		if name == "—" {
			name = u.Email
		}
		downlines = append(downlines, downline{
			Name:               name,
			Email:              u.Email,
			OnboardedUsers:     1,
			TotalSubscriptions: subCounts[u.ID],
			Status:             "active",
		})
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"onboardedUsers":           len(ids),
		"totalSubscriptions":       totalSubscriptions,
		"monthlyNewSubscriptions":  monthlyNew,
		"lastMonthNewSubscriptions": lastMonthNew,
		"referralCode":             agent.ReferralCode,
		"downlines":                downlines,
	})
}
