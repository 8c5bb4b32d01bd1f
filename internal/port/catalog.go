package port

import "docket/internal/domain"

// ActivityCatalog resolves catalog verbs without touching the store.
type ActivityCatalog interface {
	Resolve(family domain.ActivityFamily, name domain.ActivityName) (*domain.Activity, error)
}
