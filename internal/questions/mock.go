package questions

import (
	"fmt"
	"strings"
)

// MockQuestions is the deterministic offline list used without a provider.
func MockQuestions(jobTitle string, skills []string) []Question {
	skill := "relevant technologies"
	if len(skills) > 0 && strings.TrimSpace(skills[0]) != "" {
		skill = strings.TrimSpace(skills[0])
	}
	return []Question{
		{
			Type:      "Technical",
			Question:  fmt.Sprintf("Could you explain your experience with %s?", skill),
			Rationale: fmt.Sprintf("This question directly addresses the candidate's proficiency with a key skill required for the %s position.", jobTitle),
		},
		{
			Type:      "Behavioral",
			Question:  "Describe a challenging project you worked on and how you overcame obstacles.",
			Rationale: "This reveals problem-solving abilities and resilience, which are important for any position.",
		},
		{
			Type:      "Situational",
			Question:  fmt.Sprintf("How would you handle a situation where project requirements for a %s role changed significantly mid-development?", jobTitle),
			Rationale: "Tests adaptability and change management skills, crucial for modern work environments.",
		},
		{
			Type:      "Technical",
			Question:  fmt.Sprintf("What methodologies do you use to ensure code quality as a %s?", jobTitle),
			Rationale: "Evaluates the candidate's commitment to quality and knowledge of best practices.",
		},
		{
			Type:      "Behavioral",
			Question:  "Tell me about a time when you had to learn a new technology quickly.",
			Rationale: "Assesses learning agility and self-motivation, important traits for growing in the role.",
		},
	}
}
