package tag

import (
	"context"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/internal/testutil"
	"foodgram-backend/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) TagService {
	t.Helper()
	utils.InitValidator()
	return NewTagService(NewTagRepository(testutil.SetupTestDB(t)), utils.Validate)
}

func TestCreateAndGetTag(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateTag(ctx, domain.CreateTagRequest{Name: "Breakfast", Color: "#e26c2d", Slug: "breakfast"})
	require.NoError(t, err)
	assert.Equal(t, "#E26C2D", created.Color)

	got, err := svc.GetTag(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	tags, err := svc.GetTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestCreateTagValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateTag(ctx, domain.CreateTagRequest{Name: "Lunch", Color: "orange", Slug: "lunch"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.CreateTag(ctx, domain.CreateTagRequest{Name: "Lunch", Color: "#49B64E", Slug: "lunch"})
	require.NoError(t, err)

	_, err = svc.CreateTag(ctx, domain.CreateTagRequest{Name: "Lunch 2", Color: "#49B64E", Slug: "lunch"})
	assert.ErrorIs(t, err, domain.ErrSlugTaken)
}

func TestGetTagNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetTag(context.Background(), "5c1f0b7e-25a3-4c0e-9d9b-3a4a4f1b7a11")
	assert.ErrorIs(t, err, domain.ErrTagNotFound)

	_, err = svc.GetTag(context.Background(), "breakfast")
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}
