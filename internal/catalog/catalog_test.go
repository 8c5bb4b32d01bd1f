package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docket/internal/catalog"
	"docket/internal/domain"
	"docket/mocks"
)

func TestLoad_ResolvesByFamilyAndName(t *testing.T) {
	repo := new(mocks.MockActivityRepo)
	moved := domain.Activity{ID: uuid.New(), Family: domain.FamilyMatterDocument, Name: domain.ActivityMoved}
	created := domain.Activity{ID: uuid.New(), Family: domain.FamilyDocument, Name: domain.ActivityCreated}
	repo.On("List", context.Background()).Return([]domain.Activity{moved, created}, nil)

	c, err := catalog.Load(context.Background(), repo)
	require.NoError(t, err)

	got, err := c.Resolve(domain.FamilyMatterDocument, domain.ActivityMoved)
	require.NoError(t, err)
	assert.Equal(t, moved.ID, got.ID)
	assert.Equal(t, 2, c.Len())
	repo.AssertExpectations(t)
}

func TestResolve_WrongFamily(t *testing.T) {
	c := catalog.New([]domain.Activity{
		{ID: uuid.New(), Family: domain.FamilyDocument, Name: domain.ActivityCreated},
	})

	_, err := c.Resolve(domain.FamilyMatter, domain.ActivityCreated)

	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoad_RepoError(t *testing.T) {
	repo := new(mocks.MockActivityRepo)
	repo.On("List", context.Background()).Return(nil, errors.New("db down"))

	c, err := catalog.Load(context.Background(), repo)

	assert.Nil(t, c)
	assert.Error(t, err)
}
