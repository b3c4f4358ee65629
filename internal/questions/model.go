package questions

import "time"

// Question is one generated interview question. Type is kept exactly as
// the provider returned it.
type Question struct {
	Type      string `json:"type"`
	Question  string `json:"question"`
	Rationale string `json:"rationale"`
}

// QuestionSet is one persisted generation result.
type QuestionSet struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	ResumeID  string     `json:"resumeId"`
	JobSpecID string     `json:"jobSpecId"`
	Questions []Question `json:"questions"`
	Provider  string     `json:"provider"`
	Model     string     `json:"model"`
	CreatedAt time.Time  `json:"createdAt"`
}

// GenerateInput carries the profile and job fields sent to the generator.
type GenerateInput struct {
	Profile          string
	JobTitle         string
	JobDescription   string
	RequiredSkills   []string
	Responsibilities []string
}
