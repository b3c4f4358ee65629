package users

import "time"

// PlanFree is assigned to every new account.
const PlanFree = "free"

type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName,omitempty"`
	Plan       string    `json:"plan"`
	ExternalID string    `json:"-"`
	PictureURL string    `json:"pictureUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// IdentityInput is what an identity provider knows about a person.
type IdentityInput struct {
	ExternalID string
	Email      string
	FullName   string
	PictureURL string
}
