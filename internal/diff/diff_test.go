package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_IdenticalSnapshotsProduceNoEntries(t *testing.T) {
	pages := 320
	snapshot := NewRecord().
		Scalar("Default Alias", "The Hobbit (en)").
		Strings("Aliases", []string{"The Hobbit (en)", "Der Hobbit (de)"}).
		Scalar("Pages", &pages).
		Scalar("Ended", false)

	assert.Empty(t, Diff(snapshot, snapshot))

	reordered := NewRecord().
		Scalar("Default Alias", "The Hobbit (en)").
		Strings("Aliases", []string{"Der Hobbit (de)", "The Hobbit (en)"}).
		Scalar("Pages", 320).
		Scalar("Ended", false)

	assert.Empty(t, Diff(snapshot, reordered), "list order and pointer indirection do not count as changes")
}

func TestDiff_Kinds(t *testing.T) {
	old := NewRecord().
		Scalar("Default Alias", "Hobbit").
		Scalar("Disambiguation", "novel").
		Strings("Identifiers", []string{"ISBN-13: 9780261103344"})
	updated := NewRecord().
		Scalar("Default Alias", "The Hobbit").
		Strings("Identifiers", []string{"ISBN-13: 9780261103344"}).
		Scalar("Annotation", "first edition")

	assert.Equal(t, []Entry{
		{Key: "Default Alias", Kind: KindEdited, LHS: []any{"Hobbit"}, RHS: []any{"The Hobbit"}},
		{Key: "Disambiguation", Kind: KindDeleted, LHS: []any{"novel"}},
		{Key: "Annotation", Kind: KindNew, RHS: []any{"first edition"}},
	}, Diff(old, updated))
}

func TestDiff_NilSnapshot(t *testing.T) {
	record := NewRecord().Scalar("Default Alias", "Tolkien").Strings("Aliases", []string{"Tolkien (en)"})

	created := Diff(nil, record)
	assert.Equal(t, []Entry{
		{Key: "Default Alias", Kind: KindNew, RHS: []any{"Tolkien"}},
		{Key: "Aliases", Kind: KindNew, RHS: []any{"Tolkien (en)"}},
	}, created)

	var missing *Record
	deleted := Diff(record, missing)
	assert.Len(t, deleted, 2)
	for _, entry := range deleted {
		assert.Equal(t, KindDeleted, entry.Kind)
		assert.Nil(t, entry.RHS)
	}

	assert.Empty(t, Diff(nil, nil))
}

func TestDiff_ListMembershipChange(t *testing.T) {
	old := NewRecord().Strings("Aliases", []string{"a", "b"})
	updated := NewRecord().Strings("Aliases", []string{"b", "c"})

	assert.Equal(t, []Entry{
		{Key: "Aliases", Kind: KindEdited, LHS: []any{"a", "b"}, RHS: []any{"b", "c"}},
	}, Diff(old, updated))
}

func TestRecord_SkipsEmptyValues(t *testing.T) {
	var missing *int
	record := NewRecord().
		Scalar("Blank", "").
		Scalar("Nil", nil).
		Scalar("Pointer", missing).
		Strings("Empty", nil).
		Scalar("Zero", 0)

	assert.Equal(t, []Field{{Key: "Zero", Value: 0}}, record.Fields())
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1937", "1937"},
		{"1937-09", "1937-09"},
		{"1937-09-21", "1937-09-21"},
		{"+001937-09-21", "1937-09-21"},
		{"476", "0476"},
		{"-0043-03-15", "0043-03-15 BCE"},
		{"-000500", "0500 BCE"},
		{"sometime", "sometime"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestFormat_OnlyDateKeys(t *testing.T) {
	entries := []Entry{
		{Key: "Release Date", Kind: KindEdited, LHS: []any{"+001937"}, RHS: []any{"1937-09-21"}},
		{Key: "Begin Date", Kind: KindNew, RHS: []any{"-0100"}},
		{Key: "Pages", Kind: KindNew, RHS: []any{"0310"}},
		{Key: "Updated", Kind: KindNew, RHS: []any{"+0001"}},
	}

	formatted := Format(entries)

	assert.Equal(t, []any{"1937"}, formatted[0].LHS)
	assert.Equal(t, []any{"1937-09-21"}, formatted[0].RHS)
	assert.Equal(t, []any{"0100 BCE"}, formatted[1].RHS)
	assert.Nil(t, formatted[1].LHS)
	assert.Equal(t, []any{"0310"}, formatted[2].RHS)
	assert.Equal(t, []any{"+0001"}, formatted[3].RHS)
	assert.Equal(t, []any{"+001937"}, entries[0].LHS, "input entries are left untouched")
}

func TestPartitionMerge(t *testing.T) {
	id := func(v uint) *uint { return &v }

	edited := &EntityDiff{DataID: id(1)}
	target := &EntityDiff{IsMerge: true, DataID: id(2)}
	first := &EntityDiff{IsMerge: true}
	second := &EntityDiff{IsMerge: true}

	regular, merged, into := PartitionMerge(true, []*EntityDiff{target, first, edited, second})

	assert.Equal(t, []*EntityDiff{edited}, regular)
	assert.Equal(t, []*EntityDiff{first, second}, merged)
	assert.Same(t, target, into)
}

func TestPartitionMerge_NotAMerge(t *testing.T) {
	flagged := &EntityDiff{IsMerge: true}
	plain := &EntityDiff{}

	regular, merged, into := PartitionMerge(false, []*EntityDiff{flagged, plain})

	assert.Equal(t, []*EntityDiff{flagged, plain}, regular)
	assert.Nil(t, merged)
	assert.Nil(t, into)
}

func TestPartitionMerge_NoMergeEntities(t *testing.T) {
	plain := &EntityDiff{}

	regular, merged, into := PartitionMerge(true, []*EntityDiff{plain})

	assert.Equal(t, []*EntityDiff{plain}, regular)
	assert.Nil(t, merged)
	assert.Nil(t, into)
}

func TestDiff_ClassifiesEveryKey(t *testing.T) {
	old := NewRecord().Scalar("a", 1).Scalar("b", 2)
	updated := NewRecord().Scalar("b", 3).Scalar("c", 4)

	assert.Equal(t, []Entry{
		{Key: "a", Kind: KindDeleted, LHS: []any{1}},
		{Key: "b", Kind: KindEdited, LHS: []any{2}, RHS: []any{3}},
		{Key: "c", Kind: KindNew, RHS: []any{4}},
	}, Diff(old, updated))
}
