package domain

import "sort"

// LatestRevision returns the revision with the highest revision number. Ties
// go to the one inserted last: revs are stable-sorted ascending by number and
// the final element wins. Returns nil when revs is empty.
func LatestRevision(revs []Revision) *Revision {
	if len(revs) == 0 {
		return nil
	}
	sorted := make([]Revision, len(revs))
	copy(sorted, revs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RevisionNumber != sorted[j].RevisionNumber {
			return sorted[i].RevisionNumber < sorted[j].RevisionNumber
		}
		return sorted[i].Seq < sorted[j].Seq
	})
	latest := sorted[len(sorted)-1]
	return &latest
}
