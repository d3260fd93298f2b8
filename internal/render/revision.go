package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/emrgen/bookbrainz/internal/diff"
)

// RevisionDiff renders the diff of one revision. Regular entities come first. For
// merge revisions the absorbed entities follow under "Merges entities:" and the
// surviving entity is rendered last under "Into:".
func RevisionDiff(rev *diff.RevisionDiff) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<div class="revision" data-revision="%d">`, rev.RevisionID)

	if len(rev.Regular) > 0 {
		b.WriteString(`<div class="revision-regular">`)
		for _, entity := range rev.Regular {
			writeEntity(&b, entity)
		}
		b.WriteString(`</div>`)
	}

	if rev.IsMerge && (len(rev.Merged) > 0 || rev.Into != nil) {
		b.WriteString(`<div class="revision-merge"><h4>Merges entities:</h4>`)
		for _, entity := range rev.Merged {
			writeEntity(&b, entity)
		}
		if rev.Into != nil {
			b.WriteString(`<h4>Into:</h4>`)
			writeEntity(&b, rev.Into)
		}
		b.WriteString(`</div>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

func writeEntity(b *strings.Builder, entity *diff.EntityDiff) {
	b.WriteString(`<div class="revision-entity">`)
	if entity.Entity != nil {
		b.WriteString(`<h5>` + Link(entity.Entity) + `</h5>`)
	}

	if len(entity.Changes) == 0 {
		b.WriteString(`<p class="text-muted">No changes</p></div>`)
		return
	}

	b.WriteString(`<table class="table table-condensed"><tbody>`)
	for _, change := range entity.Changes {
		fmt.Fprintf(b, `<tr class="%s"><th>%s</th><td>%s</td><td>%s</td></tr>`,
			changeClass(change.Kind),
			html.EscapeString(change.Key),
			values(change.LHS),
			values(change.RHS),
		)
	}
	b.WriteString(`</tbody></table></div>`)
}

func changeClass(kind diff.Kind) string {
	switch kind {
	case diff.KindNew:
		return "diff-new"
	case diff.KindDeleted:
		return "diff-deleted"
	default:
		return "diff-edited"
	}
}

func values(items []any) string {
	if len(items) == 0 {
		return "&mdash;"
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = html.EscapeString(fmt.Sprint(item))
	}
	return strings.Join(out, "<br>")
}
