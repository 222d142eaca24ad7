package audit

import "time"

// ActorType identifies who performed an action.
type ActorType string

const (
	ActorMerchant ActorType = "merchant"
	ActorShopify  ActorType = "shopify"
	ActorSystem   ActorType = "system"
)

// Action describes what was done.
type Action string

const (
	ActionConfigCreated     Action = "config_created"
	ActionEmailSent         Action = "email_sent"
	ActionEmailFailed       Action = "email_failed"
	ActionComplianceRequest Action = "compliance_request"
)

// Entry is a single audit trail record.
type Entry struct {
	ID        string
	Timestamp time.Time
	ActorType ActorType
	// ActorID is the merchant email or the Shopify shop domain.
	ActorID string
	Action  Action
	// Subject is what the action applied to, usually a config id or a
	// webhook topic.
	Subject string
	Detail  string
}
