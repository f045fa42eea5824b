package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmad435-vlaygo/adminValygobackend/models"
)

func seedKyc(t *testing.T, h *Handlers, userID uint, status string) models.KYC {
	t.Helper()
	kyc := models.KYC{UserID: userID, Status: status, Nationality: "DE", IdentificationType: "passport"}
	require.NoError(t, h.db.Create(&kyc).Error)
	return kyc
}

func TestGetAllKycRequests(t *testing.T) {
	h := newTestHandlers(t)
	a := seedUser(t, h, models.User{FirstName: "Kyc", Email: "kyca@example.com", Status: "active"})
	b := seedUser(t, h, models.User{FirstName: "Kyc", Email: "kycb@example.com", Status: "active"})

	seedKyc(t, h, a.ID, "pending")
	seedKyc(t, h, b.ID, "approved")

	req := newRequest(t, "GET", "/api/admin/kyc?status=pending", nil, superAdminClaims(), nil)
	rr := httptest.NewRecorder()
	h.GetAllKycRequests(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data       []models.KYC `json:"data"`
		Pagination Pagination   `json:"pagination"`
	}
	decodeBody(t, rr, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "pending", body.Data[0].Status)
	require.NotNil(t, body.Data[0].User)
	assert.Equal(t, "kyca@example.com", body.Data[0].User.Email)
}

func TestApproveKyc(t *testing.T) {
	h := newTestHandlers(t)
	u := seedUser(t, h, models.User{FirstName: "Appr", Email: "appr@example.com", Status: "active"})
	kyc := seedKyc(t, h, u.ID, "pending")

	req := newRequest(t, "PUT", "/api/admin/kyc/1/approve", nil, superAdminClaims(),
		map[string]string{"id": fmt.Sprint(kyc.ID)})
	rr := httptest.NewRecorder()
	h.ApproveKyc(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var storedKyc models.KYC
	require.NoError(t, h.db.First(&storedKyc, kyc.ID).Error)
	assert.Equal(t, "approved", storedKyc.Status)
	assert.NotNil(t, storedKyc.ApprovedAt)
	assert.NotNil(t, storedKyc.ReviewedAt)

	// The verified flag propagates to the user in the same transaction.
	var storedUser models.User
	require.NoError(t, h.db.First(&storedUser, u.ID).Error)
	assert.True(t, storedUser.KycVerified)
}

func TestApproveKycNotFound(t *testing.T) {
	h := newTestHandlers(t)
	req := newRequest(t, "PUT", "/api/admin/kyc/999/approve", nil, superAdminClaims(),
		map[string]string{"id": "999"})
	rr := httptest.NewRecorder()
	h.ApproveKyc(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRejectKyc(t *testing.T) {
	h := newTestHandlers(t)
	u := seedUser(t, h, models.User{FirstName: "Rej", Email: "rej@example.com", Status: "active"})
	kyc := seedKyc(t, h, u.ID, "under_review")
	vars := map[string]string{"id": fmt.Sprint(kyc.ID)}

	t.Run("reason required", func(t *testing.T) {
		req := newRequest(t, "PUT", "/api/admin/kyc/1/reject",
			map[string]string{"reason": "   "}, superAdminClaims(), vars)
		rr := httptest.NewRecorder()
		h.RejectKyc(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var stored models.KYC
		require.NoError(t, h.db.First(&stored, kyc.ID).Error)
		assert.Equal(t, "under_review", stored.Status)
	})

	t.Run("reject stores reason and leaves user flag alone", func(t *testing.T) {
		req := newRequest(t, "PUT", "/api/admin/kyc/1/reject",
			map[string]string{"reason": "document expired"}, superAdminClaims(), vars)
		rr := httptest.NewRecorder()
		h.RejectKyc(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var stored models.KYC
		require.NoError(t, h.db.First(&stored, kyc.ID).Error)
		assert.Equal(t, "rejected", stored.Status)
		assert.Equal(t, "document expired", stored.RejectionReason)
		assert.NotNil(t, stored.ReviewedAt)
		assert.Nil(t, stored.ApprovedAt)

		var storedUser models.User
		require.NoError(t, h.db.First(&storedUser, u.ID).Error)
		assert.False(t, storedUser.KycVerified)
	})
}

func TestGetKycStats(t *testing.T) {
	h := newTestHandlers(t)
	for i, status := range []string{"pending", "pending", "approved", "rejected"} {
		u := seedUser(t, h, models.User{
			FirstName: "S", Email: fmt.Sprintf("kycstat%d@example.com", i), Status: "active",
		})
		seedKyc(t, h, u.ID, status)
	}

	req := newRequest(t, "GET", "/api/admin/kyc/stats", nil, superAdminClaims(), nil)
	rr := httptest.NewRecorder()
	h.GetKycStats(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data map[string]int64 `json:"data"`
	}
	decodeBody(t, rr, &body)
	assert.EqualValues(t, 2, body.Data["pending"])
	assert.EqualValues(t, 1, body.Data["approved"])
	assert.EqualValues(t, 1, body.Data["rejected"])
	assert.EqualValues(t, 0, body.Data["underReview"])
	assert.EqualValues(t, 4, body.Data["total"])
}

func TestGetKycStatusFromUsers(t *testing.T) {
	h := newTestHandlers(t)
	seedUser(t, h, models.User{FirstName: "Ver", Email: "ver@example.com", Status: "active", KycVerified: true})
	seedUser(t, h, models.User{FirstName: "Unver", Email: "unver@example.com", Status: "active"})

	req := newRequest(t, "GET", "/api/admin/kyc/status?kycStatus=verified", nil, superAdminClaims(), nil)
	rr := httptest.NewRecorder()
	h.GetKycStatusFromUsers(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data []struct {
			Email     string `json:"email"`
			KycStatus string `json:"kycStatus"`
		} `json:"data"`
	}
	decodeBody(t, rr, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "ver@example.com", body.Data[0].Email)
	assert.Equal(t, "Verified", body.Data[0].KycStatus)
}
