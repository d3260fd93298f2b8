// Package diff computes structural change lists between two snapshots of the
// same entity's displayed fields.
package diff

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

type Kind string

const (
	KindNew     Kind = "N"
	KindEdited  Kind = "E"
	KindDeleted Kind = "D"
)

// Entry describes one changed field. LHS holds the old value(s), RHS the new.
// Scalars are wrapped in a single element list.
type Entry struct {
	Key  string `json:"key"`
	Kind Kind   `json:"kind"`
	LHS  []any  `json:"lhs,omitempty"`
	RHS  []any  `json:"rhs,omitempty"`
}

// Field is one displayed field of a snapshot. List fields are compared as
// unordered collections.
type Field struct {
	Key   string
	Value any
	List  bool
	Items []any
}

func (f Field) values() []any {
	if f.List {
		return append([]any(nil), f.Items...)
	}
	return []any{f.Value}
}

// Snapshot is a flat record of named fields in display order.
type Snapshot interface {
	Fields() []Field
}

// Diff compares old and new. Keys are reported in the order they appear in old,
// followed by keys that only appear in new. Equal fields produce no entry.
// A nil snapshot is treated as having no fields.
func Diff(old, new Snapshot) []Entry {
	oldFields := fieldsOf(old)
	newFields := fieldsOf(new)

	newByKey := make(map[string]Field, len(newFields))
	for _, f := range newFields {
		newByKey[f.Key] = f
	}
	oldByKey := make(map[string]struct{}, len(oldFields))

	entries := make([]Entry, 0)
	for _, o := range oldFields {
		oldByKey[o.Key] = struct{}{}

		n, ok := newByKey[o.Key]
		if !ok {
			entries = append(entries, Entry{Key: o.Key, Kind: KindDeleted, LHS: o.values()})
			continue
		}

		if !equal(o, n) {
			entries = append(entries, Entry{Key: o.Key, Kind: KindEdited, LHS: o.values(), RHS: n.values()})
		}
	}

	for _, n := range newFields {
		if _, ok := oldByKey[n.Key]; ok {
			continue
		}
		entries = append(entries, Entry{Key: n.Key, Kind: KindNew, RHS: n.values()})
	}

	return entries
}

func fieldsOf(s Snapshot) []Field {
	if s == nil || reflect.ValueOf(s).Kind() == reflect.Ptr && reflect.ValueOf(s).IsNil() {
		return nil
	}
	return s.Fields()
}

func equal(a, b Field) bool {
	if a.List != b.List {
		return false
	}
	if !a.List {
		return reflect.DeepEqual(a.Value, b.Value)
	}
	if len(a.Items) != len(b.Items) {
		return false
	}

	left, right := canonical(a.Items), canonical(b.Items)
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

// canonical encodes every item and sorts the encodings so that two lists with
// the same members compare equal regardless of order.
func canonical(items []any) []string {
	keys := make([]string, len(items))
	for i, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			keys[i] = fmt.Sprintf("%#v", item)
			continue
		}
		keys[i] = string(data)
	}
	sort.Strings(keys)
	return keys
}
