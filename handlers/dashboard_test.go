package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmad435-vlaygo/adminValygobackend/models"
)

func seedTxn(t *testing.T, h *Handlers, userID *uint, amount, fee float64, status string) {
	t.Helper()
	require.NoError(t, h.db.Create(&models.Transaction{
		UserID: userID, Amount: amount, Fee: fee, Status: status, TransactionType: "deposit",
	}).Error)
}

func TestGetOverviewStats(t *testing.T) {
	h := newTestHandlers(t)

	active := seedUser(t, h, models.User{FirstName: "A", Email: "a@example.com", Status: "active", Type: "individual", KycVerified: true})
	seedUser(t, h, models.User{FirstName: "B", Email: "b@example.com", Status: "suspended", Type: "business"})
	seedUser(t, h, models.User{FirstName: "C", Email: "c@example.com", Status: "pending", Type: "Simple"})

	seedTxn(t, h, &active.ID, 100, 2, "completed")
	seedTxn(t, h, &active.ID, 50, 1, "completed")
	seedTxn(t, h, &active.ID, 70, 0, "pending")
	seedTxn(t, h, nil, 999, 0, "failed")

	require.NoError(t, h.db.Create(&models.Subscription{
		UserID: active.ID, PlanDisplayName: "Pro", ExternalPlanID: "plan_pro",
		Status: "ACTIVE", MonthlyFeeUSD: 29.99,
	}).Error)
	require.NoError(t, h.db.Create(&models.Subscription{
		UserID: active.ID, PlanDisplayName: "Pro", ExternalPlanID: "plan_pro",
		Status: "CANCELED", MonthlyFeeUSD: 29.99,
	}).Error)

	call := func() (int, map[string]interface{}) {
		req := newRequest(t, "GET", "/api/admin/dashboard/overview-stats", nil, superAdminClaims(), nil)
		rr := httptest.NewRecorder()
		h.GetOverviewStats(rr, req)
		var body struct {
			Data map[string]interface{} `json:"data"`
		}
		decodeBody(t, rr, &body)
		return rr.Code, body.Data
	}

	code, data := call()
	require.Equal(t, http.StatusOK, code)

	users := data["userStats"].(map[string]interface{})
	assert.EqualValues(t, 3, users["totalUsers"])
	assert.EqualValues(t, 2, users["activeUsers"]) // pending counts as active
	assert.EqualValues(t, 1, users["suspendedUsers"])
	assert.EqualValues(t, 2, users["individualUsers"]) // "Simple" folds into individual
	assert.EqualValues(t, 1, users["businessUsers"])
	assert.EqualValues(t, 1, users["kycApproved"])

	txns := data["transactionStats"].(map[string]interface{})
	assert.EqualValues(t, 4, txns["totalTransactions"])
	assert.EqualValues(t, 2, txns["completedTransactions"])
	assert.EqualValues(t, 1, txns["pendingTransactions"])
	assert.EqualValues(t, 1, txns["failedTransactions"])
	assert.InDelta(t, 150, txns["totalVolume"], 0.001) // completed only
	assert.InDelta(t, 3, txns["totalFees"], 0.001)

	subs := data["subscriptionStats"].(map[string]interface{})
	assert.EqualValues(t, 1, subs["active"])
	assert.EqualValues(t, 1, subs["canceled"])
	assert.EqualValues(t, 2, subs["total"])
	assert.InDelta(t, 29.99, subs["totalMRR"], 0.001)

	// Read-only aggregation must be idempotent.
	_, again := call()
	assert.Equal(t, data, again)
}

func TestGetOverviewStatsDegradesToZero(t *testing.T) {
	h := newTestHandlers(t)
	seedUser(t, h, models.User{FirstName: "Still", Email: "still@example.com", Status: "active"})

	// Break one collection; the other stat groups must still come back.
	require.NoError(t, h.db.Migrator().DropTable(&models.KYC{}))

	req := newRequest(t, "GET", "/api/admin/dashboard/overview-stats", nil, superAdminClaims(), nil)
	rr := httptest.NewRecorder()
	h.GetOverviewStats(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data struct {
			UserStats         map[string]interface{} `json:"userStats"`
			TransactionStats  map[string]interface{} `json:"transactionStats"`
			SubscriptionStats map[string]interface{} `json:"subscriptionStats"`
		} `json:"data"`
	}
	decodeBody(t, rr, &body)

	assert.EqualValues(t, 0, body.Data.UserStats["kycPending"])
	assert.EqualValues(t, 1, body.Data.UserStats["totalUsers"])
	assert.EqualValues(t, 0, body.Data.TransactionStats["totalTransactions"])
	assert.EqualValues(t, 0, body.Data.SubscriptionStats["total"])
}

func TestGetChartData(t *testing.T) {
	h := newTestHandlers(t)

	now := time.Now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 2, 12, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	u := models.User{FirstName: "Chart", Email: "chart@example.com", Status: "active"}
	u.CreatedAt = thisMonth
	seedUser(t, h, u)

	txn := models.Transaction{Amount: 40, Status: "completed", TransactionType: "deposit"}
	txn.CreatedAt = lastMonth
	require.NoError(t, h.db.Create(&txn).Error)

	req := newRequest(t, "GET", "/api/admin/dashboard/chart-data", nil, superAdminClaims(), nil)
	rr := httptest.NewRecorder()
	h.GetChartData(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		UserGrowth []struct {
			Month string `json:"month"`
			Users int64  `json:"users"`
		} `json:"userGrowth"`
		RevenueData []struct {
			Month   string  `json:"month"`
			Revenue float64 `json:"revenue"`
		} `json:"revenueData"`
	}
	decodeBody(t, rr, &body)

	// Always six points, oldest first, empty months zero-filled.
	require.Len(t, body.UserGrowth, 6)
	require.Len(t, body.RevenueData, 6)

	var totalUsers int64
	for _, p := range body.UserGrowth {
		totalUsers += p.Users
	}
	assert.EqualValues(t, 1, totalUsers)
	assert.EqualValues(t, 1, body.UserGrowth[5].Users)

	var totalRevenue float64
	for _, p := range body.RevenueData {
		totalRevenue += p.Revenue
	}
	assert.InDelta(t, 40, totalRevenue, 0.001)
	assert.InDelta(t, 40, body.RevenueData[4].Revenue, 0.001)
	assert.Zero(t, body.RevenueData[5].Revenue)
}

func TestGetChartDataBucketsByUTCMonth(t *testing.T) {
	h := newTestHandlers(t)

	// 00:30 on the 1st in a +10:00 zone is still inside the previous UTC
	// month; the row must land in that bucket on any server time zone.
	now := time.Now().UTC()
	boundary := time.Date(now.Year(), now.Month(), 1, 0, 30, 0, 0, time.FixedZone("UTC+10", 10*3600))
	u := models.User{FirstName: "Edge", Email: "edge@example.com", Status: "active"}
	u.CreatedAt = boundary
	seedUser(t, h, u)

	req := newRequest(t, "GET", "/api/admin/dashboard/chart-data", nil, superAdminClaims(), nil)
	rr := httptest.NewRecorder()
	h.GetChartData(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		UserGrowth []struct {
			Users int64 `json:"users"`
		} `json:"userGrowth"`
	}
	decodeBody(t, rr, &body)
	require.Len(t, body.UserGrowth, 6)
	assert.EqualValues(t, 1, body.UserGrowth[4].Users)
	assert.EqualValues(t, 0, body.UserGrowth[5].Users)
}

func TestGetDashboardStats(t *testing.T) {
	h := newTestHandlers(t)

	alice := seedUser(t, h, models.User{FirstName: "Alice", LastName: "Á", Email: "alice@example.com", Status: "active"})
	bob := seedUser(t, h, models.User{FirstName: "Bob", Email: "bob@example.com", Status: "active"})

	seedTxn(t, h, &alice.ID, 500, 0, "completed")
	seedTxn(t, h, &bob.ID, 100, 0, "completed")
	seedTxn(t, h, &bob.ID, 100, 0, "completed")

	req := newRequest(t, "GET", "/api/admin/dashboard/stats", nil, superAdminClaims(), nil)
	rr := httptest.NewRecorder()
	h.GetDashboardStats(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data struct {
			TotalUsers         int64               `json:"totalUsers"`
			TotalVolume        float64             `json:"totalVolume"`
			RecentTransactions []recentTransaction `json:"recentTransactions"`
			TopUsers           []topUser           `json:"topUsers"`
		} `json:"data"`
	}
	decodeBody(t, rr, &body)

	assert.EqualValues(t, 2, body.Data.TotalUsers)
	assert.InDelta(t, 700, body.Data.TotalVolume, 0.001)
	assert.Len(t, body.Data.RecentTransactions, 3)

	require.Len(t, body.Data.TopUsers, 2)
	assert.Equal(t, alice.ID, body.Data.TopUsers[0].UserID)
	assert.InDelta(t, 500, body.Data.TopUsers[0].TotalAmount, 0.001)
	assert.Equal(t, "Alice Á", body.Data.TopUsers[0].UserName)
	assert.EqualValues(t, 2, body.Data.TopUsers[1].TransactionCount)
}

func TestGetRecentUsers(t *testing.T) {
	h := newTestHandlers(t)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		u := models.User{FirstName: "R", Email: "r" + string(rune('a'+i)) + "@example.com", Status: "active"}
		u.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		seedUser(t, h, u)
	}

	req := newRequest(t, "GET", "/api/admin/dashboard/recent-users?limit=2", nil, superAdminClaims(), nil)
	rr := httptest.NewRecorder()
	h.GetRecentUsers(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data []models.User `json:"data"`
	}
	decodeBody(t, rr, &body)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "rc@example.com", body.Data[0].Email)
}
