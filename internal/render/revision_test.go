package render

import (
	"strings"
	"testing"

	"github.com/emrgen/bookbrainz/internal/diff"
	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRevisionDiff_MergeOrdering(t *testing.T) {
	id := func(v uint) *uint { return &v }

	edited := &diff.EntityDiff{
		Entity:  label("e", "Edited", model.EntityTypeWork),
		DataID:  id(9),
		Changes: []diff.Entry{{Key: "Disambiguation", Kind: diff.KindNew, RHS: []any{"poem"}}},
	}
	x := &diff.EntityDiff{Entity: label("x", "X", model.EntityTypeAuthor), IsMerge: true}
	y := &diff.EntityDiff{Entity: label("y", "Y", model.EntityTypeAuthor), IsMerge: true}
	z := &diff.EntityDiff{Entity: label("z", "Z", model.EntityTypeAuthor), IsMerge: true, DataID: id(3)}

	regular, merged, into := diff.PartitionMerge(true, []*diff.EntityDiff{z, x, edited, y})
	out := RevisionDiff(&diff.RevisionDiff{RevisionID: 7, IsMerge: true, Regular: regular, Merged: merged, Into: into})

	positions := []int{
		strings.Index(out, `/work/e"`),
		strings.Index(out, "Merges entities:"),
		strings.Index(out, `/author/x"`),
		strings.Index(out, `/author/y"`),
		strings.Index(out, "Into:"),
		strings.Index(out, `/author/z"`),
	}
	for i, p := range positions {
		assert.GreaterOrEqual(t, p, 0, "missing section %d", i)
		if i > 0 {
			assert.Greater(t, p, positions[i-1], "section %d out of order", i)
		}
	}
	assert.Contains(t, out, `data-revision="7"`)
	assert.Contains(t, out, `<th>Disambiguation</th><td>&mdash;</td><td>poem</td>`)
}

func TestRevisionDiff_Regular(t *testing.T) {
	out := RevisionDiff(&diff.RevisionDiff{
		RevisionID: 1,
		Regular: []*diff.EntityDiff{{
			Entity: label("a", "A", model.EntityTypeSeries),
			Changes: []diff.Entry{
				{Key: "Aliases", Kind: diff.KindEdited, LHS: []any{"a", "b"}, RHS: []any{"<c>"}},
			},
		}},
	})

	assert.NotContains(t, out, "Merges entities:")
	assert.NotContains(t, out, "Into:")
	assert.Contains(t, out, `<tr class="diff-edited"><th>Aliases</th><td>a<br>b</td><td>&lt;c&gt;</td></tr>`)
}

func TestRevisionDiff_NoChanges(t *testing.T) {
	out := RevisionDiff(&diff.RevisionDiff{
		Regular: []*diff.EntityDiff{{Entity: label("a", "A", model.EntityTypeWork)}},
	})
	assert.Contains(t, out, "No changes")
}
