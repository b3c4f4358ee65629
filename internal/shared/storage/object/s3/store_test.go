package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/resume.pdf", want: "user/resume.pdf"},
		{name: "simple prefix", prefix: "resumes", key: "user/resume.pdf", want: "resumes/user/resume.pdf"},
		{name: "prefix trailing slash", prefix: "resumes/", key: "user/resume.pdf", want: "resumes/user/resume.pdf"},
		{name: "prefix and key slashes", prefix: "/resumes/", key: "/user/resume.pdf", want: "resumes/user/resume.pdf"},
		{name: "empty key", prefix: "resumes", key: "", want: "resumes"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	if got := normalizePrefix("  /prod/uploads/ "); got != "prod/uploads" {
		t.Fatalf("normalizePrefix = %q", got)
	}
}
