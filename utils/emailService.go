package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Sonosquare Institute <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by every outbound email.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0B3954; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #0B3954; line-height: 1.6; }
			.content h2 { color: #0B3954; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2E86AB; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2E86AB; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>SONOSQUARE INSTITUTE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Sonosquare Institute. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Sonosquare Institute"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Sonosquare Institute</strong>! Your account has been created successfully.</p>
		<p>Browse our courses and apply for the one that fits your goals.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Application approved
func SendApprovalEmail(email, courseTitle string) {
	subject := "Application Approved: " + courseTitle
	body := fmt.Sprintf(`
		<p>Your application for <strong>%s</strong> has been APPROVED.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Open the purchase page, transfer the course fee and upload your payment proof. Access is granted once the payment is verified.
		</div>
	`, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Application Approved", body))
}

// 3. Application rejected
func SendRejectionEmail(email, courseTitle, reason string) {
	subject := "Application Update: " + courseTitle
	body := fmt.Sprintf(`
		<p>Unfortunately, your application for <strong>%s</strong> was not approved.</p>
		<div style="color: #dc3545; font-weight: bold;">Reason: %s</div>
		<p>You may contact the institute if you believe this was in error.</p>
	`, courseTitle, reason)

	go SendEmail([]string{email}, subject, getEmailTemplate("Application Rejected", body))
}

// 4. Access granted after payment verification
func SendAccessGrantedEmail(email, courseTitle string, expiration time.Time, daysRemaining int) {
	subject := "Course Access Granted: " + courseTitle
	body := fmt.Sprintf(`
		<p>Your payment has been verified and access to <strong>%s</strong> is now active.</p>
		<div class="info-box">
			<strong>Access until:</strong> %s (%d days remaining)
		</div>
		<a href="#" class="btn">Start Learning</a>
	`, courseTitle, expiration.Format("January 2, 2006"), daysRemaining)

	go SendEmail([]string{email}, subject, getEmailTemplate("Access Granted", body))
}

// 5. Expiry reminder
func SendExpiryReminderEmail(email, courseTitle string, expiration time.Time) {
	subject := "Your Course Access is Expiring Soon: " + courseTitle
	body := fmt.Sprintf(`
		<p>Your access to <strong>%s</strong> expires on <strong>%s</strong>.</p>
		<p>Contact the institute to extend your access and keep your progress going.</p>
	`, courseTitle, expiration.Format("January 2, 2006"))

	go SendEmail([]string{email}, subject, getEmailTemplate("Access Expiring Soon", body))
}

// SMTPMailer adapts the email triggers to the enrollment service's Mailer
// interface. Dispatch is fire-and-forget; failures are logged inside
// SendEmail and never reach the caller.
type SMTPMailer struct{}

func NewSMTPMailer() SMTPMailer { return SMTPMailer{} }

func (SMTPMailer) SendApprovalEmail(email, courseTitle string) {
	SendApprovalEmail(email, courseTitle)
}

func (SMTPMailer) SendRejectionEmail(email, courseTitle, reason string) {
	SendRejectionEmail(email, courseTitle, reason)
}

func (SMTPMailer) SendAccessGrantedEmail(email, courseTitle string, expiration time.Time, daysRemaining int) {
	SendAccessGrantedEmail(email, courseTitle, expiration, daysRemaining)
}

func (SMTPMailer) SendExpiryReminderEmail(email, courseTitle string, expiration time.Time) {
	SendExpiryReminderEmail(email, courseTitle, expiration)
}
