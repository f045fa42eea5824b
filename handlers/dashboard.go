package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ahmad435-vlaygo/adminValygobackend/models"
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type userStats struct {
	TotalUsers      int64 `json:"totalUsers"`
	ActiveUsers     int64 `json:"activeUsers"`
	SuspendedUsers  int64 `json:"suspendedUsers"`
	IndividualUsers int64 `json:"individualUsers"`
	BusinessUsers   int64 `json:"businessUsers"`
	KycPending      int64 `json:"kycPending"`
	KycApproved     int64 `json:"kycApproved"`
}

type transactionStats struct {
	TotalTransactions     int64   `json:"totalTransactions"`
	CompletedTransactions int64   `json:"completedTransactions"`
	PendingTransactions   int64   `json:"pendingTransactions"`
	FailedTransactions    int64   `json:"failedTransactions"`
	TotalVolume           float64 `json:"totalVolume"`
	TotalFees             float64 `json:"totalFees"`
}

type subscriptionStats struct {
	Active    int64   `json:"active"`
	PastDue   int64   `json:"pastDue"`
	Suspended int64   `json:"suspended"`
	Canceled  int64   `json:"canceled"`
	Total     int64   `json:"total"`
	TotalMRR  float64 `json:"totalMRR"`
}

func (h *Handlers) userStatsGroup() userStats {
	return userStats{
		TotalUsers:      h.countRows(h.db.Model(&models.User{})),
		ActiveUsers:     h.countRows(h.db.Model(&models.User{}).Where("status NOT IN ?", []string{"suspended", "inactive"})),
		SuspendedUsers:  h.countRows(h.db.Model(&models.User{}).Where("status = ?", "suspended")),
		IndividualUsers: h.countRows(h.db.Model(&models.User{}).Where("lower(type) IN ?", []string{"individual", "simple"})),
		BusinessUsers:   h.countRows(h.db.Model(&models.User{}).Where("lower(type) = ?", "business")),
		KycPending:      h.countRows(h.db.Model(&models.KYC{}).Where("status = ?", "pending")),
		KycApproved:     h.countRows(h.db.Model(&models.User{}).Where("kyc_verified = ?", true)),
	}
}

func (h *Handlers) transactionStatsGroup() transactionStats {
	return transactionStats{
		TotalTransactions:     h.countRows(h.db.Model(&models.Transaction{})),
		CompletedTransactions: h.countRows(h.db.Model(&models.Transaction{}).Where("status = ?", "completed")),
		PendingTransactions:   h.countRows(h.db.Model(&models.Transaction{}).Where("status = ?", "pending")),
		FailedTransactions:    h.countRows(h.db.Model(&models.Transaction{}).Where("status = ?", "failed")),
		TotalVolume:           round2(h.sumColumn(h.db.Model(&models.Transaction{}).Where("status = ?", "completed"), "amount")),
		TotalFees:             round2(h.sumColumn(h.db.Model(&models.Transaction{}).Where("status = ?", "completed"), "fee")),
	}
}

func (h *Handlers) subscriptionStatsGroup() subscriptionStats {
	s := subscriptionStats{
		Active:    h.countRows(h.db.Model(&models.Subscription{}).Where("status = ?", "ACTIVE")),
		PastDue:   h.countRows(h.db.Model(&models.Subscription{}).Where("status = ?", "PAST_DUE")),
		Suspended: h.countRows(h.db.Model(&models.Subscription{}).Where("status = ?", "SUSPENDED")),
		Canceled:  h.countRows(h.db.Model(&models.Subscription{}).Where("status = ?", "CANCELED")),
		TotalMRR:  round2(h.sumColumn(h.db.Model(&models.Subscription{}).Where("status = ?", "ACTIVE"), "monthly_fee_usd")),
	}
	s.Total = s.Active + s.PastDue + s.Suspended + s.Canceled
	return s
}

// GetOverviewStats computes the three stat groups concurrently. Sub-query
// failures degrade to zero instead of aborting the other groups.
func (h *Handlers) GetOverviewStats(w http.ResponseWriter, r *http.Request) {
	var (
		users userStats
		txns  transactionStats
		subs  subscriptionStats
	)

	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		users = h.userStatsGroup()
		return nil
	})
	g.Go(func() error {
		txns = h.transactionStatsGroup()
		return nil
	})
	g.Go(func() error {
		subs = h.subscriptionStatsGroup()
		return nil
	})
	g.Wait()

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"userStats":         users,
			"transactionStats":  txns,
			"subscriptionStats": subs,
		},
	})
}

type recentTransaction struct {
	ID        uint      `json:"id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"userName"`
}

type topUser struct {
	UserID           uint    `json:"userId"`
	TotalAmount      float64 `json:"totalAmount"`
	TransactionCount int64   `json:"transactionCount"`
	UserName         string  `json:"userName"`
}

func (h *Handlers) recentTransactions(limit int) []recentTransaction {
	var txns []models.Transaction
	if err := h.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error; err != nil {
		log.Printf("recent transactions query failed: %v", err)
		return []recentTransaction{}
	}

	out := make([]recentTransaction, 0, len(txns))
	for _, t := range txns {
		name := "—"
		if t.User != nil {
			name = t.User.FullName()
		}
		out = append(out, recentTransaction{
			ID:        t.ID,
			Amount:    t.Amount,
			Status:    t.Status,
			Type:      t.TransactionType,
			CreatedAt: t.CreatedAt,
			UserName:  name,
		})
	}
	return out
}

// topContributors groups transactions by user, sums amounts, and resolves
// display names for the top N.
func (h *Handlers) topContributors(limit int) []topUser {
	type row struct {
		UserID           uint
		TotalAmount      float64
		TransactionCount int64
	}
	var rows []row
	if err := h.db.Model(&models.Transaction{}).
		Select("user_id, SUM(amount) AS total_amount, COUNT(*) AS transaction_count").
		Where("user_id IS NOT NULL").
		Group("user_id").
		Order("total_amount DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		log.Printf("top contributors query failed: %v", err)
		return []topUser{}
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	nameByID := make(map[uint]string, len(ids))
	if len(ids) > 0 {
		var users []models.User
		if err := h.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
			log.Printf("top contributors user lookup failed: %v", err)
		}
		for i := range users {
			nameByID[users[i].ID] = users[i].FullName()
		}
	}

	out := make([]topUser, 0, len(rows))
	for _, r := range rows {
		name, ok := nameByID[r.UserID]
		if !ok {
			name = "Unknown"
		}
		out = append(out, topUser{
			UserID:           r.UserID,
			TotalAmount:      r.TotalAmount,
			TransactionCount: r.TransactionCount,
			UserName:         name,
		})
	}
	return out
}

func (h *Handlers) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := map[string]interface{}{
		"totalUsers":           h.countRows(h.db.Model(&models.User{})),
		"activeUsers":          h.countRows(h.db.Model(&models.User{}).Where("status NOT IN ?", []string{"suspended", "inactive"})),
		"suspendedUsers":       h.countRows(h.db.Model(&models.User{}).Where("status = ?", "suspended")),
		"newUsersThisMonth":    h.countRows(h.db.Model(&models.User{}).Where("created_at >= ?", startOfMonth)),
		"totalTransactions":    h.countRows(h.db.Model(&models.Transaction{})),
		"totalVolume":          round2(h.sumColumn(h.db.Model(&models.Transaction{}), "amount")),
		"monthlyRevenue":       round2(h.sumColumn(h.db.Model(&models.Subscription{}).Where("status = ?", "ACTIVE"), "monthly_fee_usd")),
		"kycPending":           h.countRows(h.db.Model(&models.KYC{}).Where("status = ?", "pending")),
		"kybPending":           h.countRows(h.db.Model(&models.KYB{}).Where("status = ?", "pending")),
		"activeSubscriptions":  h.countRows(h.db.Model(&models.Subscription{}).Where("status = ?", "ACTIVE")),
		"pastDueSubscriptions": h.countRows(h.db.Model(&models.Subscription{}).Where("status = ?", "PAST_DUE")),
		"recentTransactions":   h.recentTransactions(5),
		"topUsers":             h.topContributors(5),
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stats,
	})
}

// monthBuckets aggregates rows by creation month. agg is a SQL aggregate
// expression evaluated per group.
func (h *Handlers) monthBuckets(model interface{}, agg string, since time.Time) map[string]float64 {
	type bucket struct {
		Ym string
		V  float64
	}
	var rows []bucket
	if err := h.db.Model(model).
		Select("strftime('%Y-%m', created_at) AS ym, "+agg+" AS v").
		Where("created_at >= ?", since).
		Group("ym").
		Scan(&rows).Error; err != nil {
		log.Printf("month bucket query failed: %v", err)
		return map[string]float64{}
	}

	out := make(map[string]float64, len(rows))
	for _, b := range rows {
		out[b.Ym] = b.V
	}
	return out
}

// GetChartData returns the last 6 calendar months for user growth,
// subscription trend, and transaction revenue. Months with no activity are
// zero-filled so charts never show gaps.
func (h *Handlers) GetChartData(w http.ResponseWriter, r *http.Request) {
	const monthsBack = 6

	// strftime normalizes stored timestamps to UTC, so the bucket keys must be
	// UTC months too or boundary rows land in the wrong bucket.
	now := time.Now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	since := first.AddDate(0, -(monthsBack - 1), 0)

	users := h.monthBuckets(&models.User{}, "COUNT(*)", since)
	subs := h.monthBuckets(&models.Subscription{}, "COUNT(*)", since)
	revenue := h.monthBuckets(&models.Transaction{}, "COALESCE(SUM(amount), 0)", since)

	type userPoint struct {
		Month string `json:"month"`
		Users int64  `json:"users"`
	}
	type subPoint struct {
		Month         string `json:"month"`
		Subscriptions int64  `json:"subscriptions"`
	}
	type revenuePoint struct {
		Month   string  `json:"month"`
		Revenue float64 `json:"revenue"`
	}

	userGrowth := make([]userPoint, 0, monthsBack)
	subscriptionTrend := make([]subPoint, 0, monthsBack)
	revenueData := make([]revenuePoint, 0, monthsBack)

	for i := monthsBack - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		key := m.Format("2006-01")
		label := monthNames[int(m.Month())-1]
		userGrowth = append(userGrowth, userPoint{Month: label, Users: int64(users[key])})
		subscriptionTrend = append(subscriptionTrend, subPoint{Month: label, Subscriptions: int64(subs[key])})
		revenueData = append(revenueData, revenuePoint{Month: label, Revenue: round2(revenue[key])})
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"userGrowth":        userGrowth,
		"subscriptionTrend": subscriptionTrend,
		"revenueData":       revenueData,
	})
}

// GetUsersStats is the dashboard's paginated recent-users listing.
func (h *Handlers) GetUsersStats(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	var users []models.User
	if err := h.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch users stats", nil)
		return
	}

	total := h.countRows(h.db.Model(&models.User{}))

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"users":      users,
		"pagination": newPagination(total, page, limit),
	})
}

// GetRecentUsers returns the last-N signups.
func (h *Handlers) GetRecentUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var users []models.User
	if err := h.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch recent users", nil)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    users,
	})
}

// GetDashboardSubscriptionStats groups subscriptions by status.
func (h *Handlers) GetDashboardSubscriptionStats(w http.ResponseWriter, r *http.Request) {
	type row struct {
		Status       string  `json:"status"`
		Count        int64   `json:"count"`
		TotalRevenue float64 `json:"totalRevenue"`
	}
	var rows []row
	if err := h.db.Model(&models.Subscription{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(monthly_fee_usd), 0) AS total_revenue").
		Group("status").
		Scan(&rows).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch subscription stats", nil)
		return
	}
	for i := range rows {
		rows[i].TotalRevenue = round2(rows[i].TotalRevenue)
	}
	sendJSON(w, http.StatusOK, rows)
}

// GetDashboardTransactionStats groups transactions by status.
func (h *Handlers) GetDashboardTransactionStats(w http.ResponseWriter, r *http.Request) {
	type row struct {
		Status      string  `json:"status"`
		Count       int64   `json:"count"`
		TotalAmount float64 `json:"totalAmount"`
	}
	var rows []row
	if err := h.db.Model(&models.Transaction{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount").
		Group("status").
		Scan(&rows).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch transaction stats", nil)
		return
	}
	for i := range rows {
		rows[i].TotalAmount = round2(rows[i].TotalAmount)
	}
	sendJSON(w, http.StatusOK, rows)
}
