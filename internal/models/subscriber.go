package models

import "time"

// Subscriber statuses
const (
	SubscriberActive       = "active"
	SubscriberUnsubscribed = "unsubscribed"
	SubscriberBounced      = "bounced"
)

// Subscriber represents a mailing list member
type Subscriber struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Status    string     `json:"status"`
	Lists     StringList `json:"lists"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// SubscriberListFilter for filtering subscribers
type SubscriberListFilter struct {
	Status string
	List   string
}
