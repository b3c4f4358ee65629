package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/normalize_system.txt
	normalizeSystem string
	//go:embed prompts/normalize_user.txt
	normalizeUser string
	//go:embed prompts/questions_system.txt
	questionsSystem string
	//go:embed prompts/questions_user.txt
	questionsUser string
)

// NormalizeMessages builds the résumé-structuring request for raw text.
func NormalizeMessages(rawText string) []Message {
	return []Message{
		{Role: RoleSystem, Content: strings.TrimSpace(normalizeSystem)},
		{Role: RoleUser, Content: render(normalizeUser, map[string]string{
			"{{RESUME_TEXT}}": rawText,
		})},
	}
}

// QuestionPrompt carries the fields interpolated into the question request.
type QuestionPrompt struct {
	Profile          string
	JobTitle         string
	JobDescription   string
	RequiredSkills   []string
	Responsibilities []string
}

// QuestionMessages builds the interview-question request.
func QuestionMessages(in QuestionPrompt) []Message {
	responsibilities := ""
	if len(in.Responsibilities) > 0 {
		responsibilities = "\nKey Responsibilities: " + strings.Join(in.Responsibilities, ", ")
	}
	return []Message{
		{Role: RoleSystem, Content: strings.TrimSpace(questionsSystem)},
		{Role: RoleUser, Content: render(questionsUser, map[string]string{
			"{{PROFILE}}":          in.Profile,
			"{{JOB_TITLE}}":        in.JobTitle,
			"{{JOB_DESCRIPTION}}":  in.JobDescription,
			"{{REQUIRED_SKILLS}}":  strings.Join(in.RequiredSkills, ", "),
			"{{RESPONSIBILITIES}}": responsibilities,
		})},
	}
}

func render(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, k, v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}
