package subscriptions

import "time"

const StatusActive = "active"

type Subscription struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	Plan               string    `json:"plan"`
	Status             string    `json:"status"`
	CurrentPeriodStart time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time `json:"currentPeriodEnd"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// UpdateResult is returned by a plan change.
type UpdateResult struct {
	Success      bool         `json:"success"`
	Plan         string       `json:"plan"`
	Subscription Subscription `json:"subscription"`
}
