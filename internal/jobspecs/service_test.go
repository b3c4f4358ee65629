package jobspecs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireprompt-backend/internal/shared/apperr"
)

func TestCreateNormalizesSkills(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	spec, err := svc.Create(context.Background(), "user-1", CreateInput{
		Title:          "  Backend Engineer ",
		Description:    "Build <script>alert(1)</script>APIs & services",
		RequiredSkills: []string{" Go ", "", "SQL", "go", "  ", "Kubernetes", "sql"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", spec.Title)
	assert.Equal(t, "Build APIs & services", spec.Description)
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, spec.RequiredSkills)
	assert.Empty(t, spec.Responsibilities)
	assert.NotEmpty(t, spec.ID)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.Create(context.Background(), "user-1", CreateInput{Title: "<b></b>", Description: ""})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, "required", fields["title"])
	assert.Equal(t, "required", fields["description"])
}

func TestGetIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())
	spec, err := svc.Create(ctx, "owner", CreateInput{Title: "SRE", Description: "Keep it up"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "intruder", spec.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := svc.Get(ctx, "owner", spec.ID)
	require.NoError(t, err)
	assert.Equal(t, spec.Title, got.Title)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())
	base := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	svc.Now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}

	first, _ := svc.Create(ctx, "u", CreateInput{Title: "first", Description: "d"})
	second, _ := svc.Create(ctx, "u", CreateInput{Title: "second", Description: "d"})
	_, _ = svc.Create(ctx, "other", CreateInput{Title: "other", Description: "d"})

	list, err := svc.List(ctx, "u")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
