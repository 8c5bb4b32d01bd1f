package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docket/internal/domain"
)

func TestLatestRevision_Empty(t *testing.T) {
	assert.Nil(t, domain.LatestRevision(nil))
	assert.Nil(t, domain.LatestRevision([]domain.Revision{}))
}

func TestLatestRevision_HighestNumberWins(t *testing.T) {
	revs := []domain.Revision{
		{ID: uuid.New(), RevisionNumber: 1, Seq: 1},
		{ID: uuid.New(), RevisionNumber: 3, Seq: 2},
		{ID: uuid.New(), RevisionNumber: 2, Seq: 3},
	}

	latest := domain.LatestRevision(revs)
	require.NotNil(t, latest)

	assert.Equal(t, revs[1].ID, latest.ID)
}

func TestLatestRevision_TieGoesToLastInserted(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	revs := []domain.Revision{
		{ID: uuid.New(), RevisionNumber: 1, Seq: 10},
		{ID: first, RevisionNumber: 2, Seq: 11},
		{ID: second, RevisionNumber: 2, Seq: 12},
	}

	latest := domain.LatestRevision(revs)
	require.NotNil(t, latest)

	assert.Equal(t, second, latest.ID)
}

func TestLatestRevision_DoesNotReorderInput(t *testing.T) {
	revs := []domain.Revision{
		{RevisionNumber: 2, Seq: 1},
		{RevisionNumber: 1, Seq: 2},
	}

	_ = domain.LatestRevision(revs)

	assert.Equal(t, 2, revs[0].RevisionNumber)
	assert.Equal(t, 1, revs[1].RevisionNumber)
}
