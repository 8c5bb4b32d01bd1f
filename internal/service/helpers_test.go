package service_test

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docket/internal/catalog"
	"docket/internal/domain"
)

var lifecycleNames = []domain.ActivityName{
	domain.ActivityCreated,
	domain.ActivitySaved,
	domain.ActivityDeleted,
	domain.ActivityCheckedOut,
	domain.ActivityCheckedIn,
	domain.ActivityRestored,
	domain.ActivityViewed,
}

// testCatalog mirrors the seeded activities table.
func testCatalog() *catalog.Catalog {
	var acts []domain.Activity
	for _, family := range []domain.ActivityFamily{domain.FamilyMatter, domain.FamilyDocument, domain.FamilyRevision} {
		for _, name := range lifecycleNames {
			acts = append(acts, domain.Activity{ID: uuid.New(), Family: family, Name: name})
		}
	}
	acts = append(acts,
		domain.Activity{ID: uuid.New(), Family: domain.FamilyMatterDocument, Name: domain.ActivityMoved},
		domain.Activity{ID: uuid.New(), Family: domain.FamilyMatterDocument, Name: domain.ActivityCopied},
	)
	return catalog.New(acts)
}

func testActor() *domain.User {
	return &domain.User{ID: uuid.New(), Name: "Dana Reyes"}
}

func activityNamed(family domain.ActivityFamily, name domain.ActivityName) interface{} {
	return mock.MatchedBy(func(a *domain.Activity) bool {
		return a != nil && a.Family == family && a.Name == name
	})
}
