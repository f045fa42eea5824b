package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalesTeamInvite(t *testing.T) {
	subject, html := SalesTeamInvite("Sam Seller", "sam@valygo.io", "SAMXYZ123", "https://admin.valygo.io")

	assert.Contains(t, subject, "Sales Team")
	assert.Contains(t, html, "Sam Seller")
	assert.Contains(t, html, "SAMXYZ123")
	assert.Contains(t, html, "https://admin.valygo.io/sales-dashboard")
}

func TestMeetingInvite(t *testing.T) {
	subject, html := MeetingInvite("Quarterly review", "Mon, 02 Jan 2026 15:00:00 UTC", "https://meet.valygo.io/q1")

	assert.Equal(t, "Meeting Invitation: Quarterly review", subject)
	assert.Contains(t, html, "Quarterly review")
	assert.Contains(t, html, "https://meet.valygo.io/q1")
}

func TestWelcome(t *testing.T) {
	subject, html := Welcome("Administrator", "https://admin.valygo.io")

	assert.Contains(t, subject, "Welcome")
	assert.Contains(t, html, "Administrator")
	assert.Contains(t, html, "https://admin.valygo.io/login")
}

func TestNopMailer(t *testing.T) {
	assert.NoError(t, NopMailer{}.Send("x@valygo.io", "subject", "<p>body</p>"))
}
