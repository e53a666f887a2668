// Package notification delivers in-app notices to members and tracks their
// read state.
package notification

import "time"

// Status is the read state of a notification.
type Status string

const (
	StatusUnread Status = "UNREAD"
	StatusRead   Status = "READ"
)

// Types used by the canned dispatch helpers.
const (
	TypePaymentReminder = "Payment Reminder"
	TypeFineNotice      = "Fine Notice"
)

// Canned message bodies.
const (
	paymentReminderMessage = "Reminder: You have outstanding levy payments. Please settle your account."
	fineNoticePrefix       = "A fine has been issued to you. Reason: "
)

// Notification is one notice addressed to a member.
type Notification struct {
	ID        int64     `json:"notification_id"`
	MemberID  int64     `json:"assoc_member_id"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	Type      string    `json:"notification_type"`
	CreatedAt time.Time `json:"created_at"`
}

// SendRequest is the payload for dispatching a notification.
type SendRequest struct {
	MemberID int64  `json:"assoc_member_id"`
	Message  string `json:"message"`
	Type     string `json:"notification_type"`
}
