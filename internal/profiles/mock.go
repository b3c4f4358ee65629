package profiles

import (
	"strings"
	"unicode/utf8"
)

const mockNameRunes = 30

// MockProfile builds the offline profile used when no provider is configured.
func MockProfile(rawText string) string {
	name := "Candidate Name"
	first := strings.TrimSpace(strings.SplitN(strings.TrimSpace(rawText), "\n", 2)[0])
	if first != "" {
		if utf8.RuneCountInString(first) > mockNameRunes {
			first = string([]rune(first)[:mockNameRunes])
		}
		name = first
	}

	var b strings.Builder
	b.WriteString("## Resume Parsing Results\n\n")
	b.WriteString("### Personal Information\n")
	b.WriteString("- Name: " + name + "\n")
	b.WriteString("- Contact: Email address and phone number found in resume\n\n")
	b.WriteString("### Skills\n")
	b.WriteString("- Technical Skills: Programming, Development, Data Analysis\n")
	b.WriteString("- Soft Skills: Communication, Teamwork, Problem-solving\n\n")
	b.WriteString("### Work Experience\n")
	b.WriteString("- Previous relevant positions identified\n")
	b.WriteString("- Projects and accomplishments noted\n\n")
	b.WriteString("### Education\n")
	b.WriteString("- Degree information extracted\n")
	b.WriteString("- Relevant coursework identified")
	return b.String()
}
