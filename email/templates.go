package email

import (
	"fmt"
)

func SalesTeamInvite(name, email, referralCode, frontendURL string) (subject, html string) {
	subject = "Welcome to the VALYGO Sales Team"
	html = fmt.Sprintf(`
		<h2>Welcome to the VALYGO Sales Team!</h2>
		<p>Hi %s,</p>
		<p>You have been added to the VALYGO Sales Team. Here are your details:</p>
		<ul>
			<li><strong>Email:</strong> %s</li>
			<li><strong>Referral Code:</strong> <code>%s</code></li>
		</ul>
		<p>Use your referral code to track your referrals and earn commissions.</p>
		<p>Login to your dashboard: <a href="%s/sales-dashboard">Sales Dashboard</a></p>
		<p>Best regards,<br>VALYGO Team</p>`,
		name, email, referralCode, frontendURL)
	return subject, html
}

func MeetingInvite(title, startTime, meetingLink string) (subject, html string) {
	subject = "Meeting Invitation: " + title
	html = fmt.Sprintf(`
		<h2>Meeting Invitation</h2>
		<p>You are invited to a meeting:</p>
		<ul>
			<li><strong>Title:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Join Link:</strong> <a href="%s">%s</a></li>
		</ul>
		<p>See you there!</p>
		<p>Best regards,<br>VALYGO Team</p>`,
		title, startTime, meetingLink, meetingLink)
	return subject, html
}

func Welcome(name, frontendURL string) (subject, html string) {
	subject = "Welcome to the VALYGO Admin Dashboard"
	html = fmt.Sprintf(`
		<h2>Welcome to the VALYGO Admin Dashboard!</h2>
		<p>Hi %s,</p>
		<p>Your admin account has been created successfully.</p>
		<p>Login to your dashboard: <a href="%s/login">Admin Dashboard</a></p>
		<p>Best regards,<br>VALYGO Team</p>`,
		name, frontendURL)
	return subject, html
}
