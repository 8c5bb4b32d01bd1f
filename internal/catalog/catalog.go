// Package catalog resolves activity verbs to their seeded Activity rows. The
// catalog is read once at startup; resolution afterwards does no I/O.
package catalog

import (
	"context"
	"fmt"

	"docket/internal/domain"
	"docket/internal/port"
)

type key struct {
	family domain.ActivityFamily
	name   domain.ActivityName
}

// Catalog is an immutable in-memory view of the activities table.
type Catalog struct {
	byKey map[key]domain.Activity
}

// Load reads every activity from repo.
func Load(ctx context.Context, repo port.ActivityRepository) (*Catalog, error) {
	activities, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}
	return New(activities), nil
}

// New builds a Catalog from activities. Unknown verbs are kept so a newer
// schema does not break an older binary.
func New(activities []domain.Activity) *Catalog {
	c := &Catalog{byKey: make(map[key]domain.Activity, len(activities))}
	for _, a := range activities {
		c.byKey[key{family: a.Family, name: a.Name}] = a
	}
	return c
}

// Resolve returns the activity for name within family.
func (c *Catalog) Resolve(family domain.ActivityFamily, name domain.ActivityName) (*domain.Activity, error) {
	a, ok := c.byKey[key{family: family, name: name}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", domain.ErrActivityNotFound, family, name)
	}
	return &a, nil
}

// Len returns the number of activities loaded.
func (c *Catalog) Len() int { return len(c.byKey) }
