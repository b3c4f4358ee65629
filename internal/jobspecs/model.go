package jobspecs

import "time"

// JobSpec describes the role a candidate is interviewed for. It is
// immutable once created.
type JobSpec struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	RequiredSkills   []string  `json:"requiredSkills"`
	Responsibilities []string  `json:"responsibilities"`
	AdditionalNotes  string    `json:"additionalNotes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CreateInput is the accepted payload for a new job spec.
type CreateInput struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"required,max=20000"`
	RequiredSkills   []string `json:"requiredSkills" validate:"max=50,dive,max=100"`
	Responsibilities []string `json:"responsibilities" validate:"max=50,dive,max=500"`
	AdditionalNotes  string   `json:"additionalNotes" validate:"max=5000"`
}
