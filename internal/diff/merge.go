package diff

import (
	"sort"

	"github.com/emrgen/bookbrainz/internal/view"
)

// EntityDiff is the change list of one entity touched by a revision.
type EntityDiff struct {
	Entity *view.EntityLabel `json:"entity"`
	// IsMerge mirrors the entity revision's merge flag.
	IsMerge bool `json:"isMerge"`
	// DataID is nil when the entity has no data of its own in this revision.
	DataID  *uint   `json:"dataId"`
	Changes []Entry `json:"changes"`
}

// RevisionDiff groups the entity diffs of one revision for display.
type RevisionDiff struct {
	RevisionID uint          `json:"revisionId"`
	IsMerge    bool          `json:"isMerge"`
	Regular    []*EntityDiff `json:"regular"`
	Merged     []*EntityDiff `json:"merged,omitempty"`
	Into       *EntityDiff   `json:"into,omitempty"`
}

// PartitionMerge splits the entities of a revision into regular entities and,
// for merge revisions, the merged-away entities and the surviving one.
// Merge entities are ordered with those lacking data first; the last one is the
// merge target and is returned separately as into.
func PartitionMerge(isMerge bool, entities []*EntityDiff) (regular, merged []*EntityDiff, into *EntityDiff) {
	regular = make([]*EntityDiff, 0, len(entities))
	if !isMerge {
		return append(regular, entities...), nil, nil
	}

	for _, entity := range entities {
		if entity.IsMerge {
			merged = append(merged, entity)
		} else {
			regular = append(regular, entity)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].DataID == nil && merged[j].DataID != nil
	})

	if len(merged) == 0 {
		return regular, nil, nil
	}

	into = merged[len(merged)-1]
	return regular, merged[:len(merged)-1], into
}
