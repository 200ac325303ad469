package enrollment

import "time"

// Mailer is the outbound email collaborator. Implementations are
// best-effort: they log failures and never return them, so a slow or dead
// mail server can never roll back a state transition. The service only
// calls a Mailer after the transaction has committed.
type Mailer interface {
	SendApprovalEmail(email, courseTitle string)
	SendRejectionEmail(email, courseTitle, reason string)
	SendAccessGrantedEmail(email, courseTitle string, expiration time.Time, daysRemaining int)
	SendExpiryReminderEmail(email, courseTitle string, expiration time.Time)
}
