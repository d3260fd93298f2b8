package diff

import "reflect"

// Record is a Snapshot built field by field. Empty scalars and empty lists are
// left out so that an unset field reads as absent rather than blank.
type Record struct {
	fields []Field
}

func NewRecord() *Record {
	return &Record{}
}

func (r *Record) Fields() []Field {
	return r.fields
}

// Scalar adds a single valued field. Nil pointers and empty strings are skipped,
// non-nil pointers are dereferenced.
func (r *Record) Scalar(key string, value any) *Record {
	value, ok := present(value)
	if !ok {
		return r
	}
	r.fields = append(r.fields, Field{Key: key, Value: value})
	return r
}

// Strings adds a list valued field of strings.
func (r *Record) Strings(key string, items []string) *Record {
	if len(items) == 0 {
		return r
	}
	values := make([]any, len(items))
	for i, item := range items {
		values[i] = item
	}
	return r.List(key, values)
}

// List adds a list valued field.
func (r *Record) List(key string, items []any) *Record {
	if len(items) == 0 {
		return r
	}
	r.fields = append(r.fields, Field{Key: key, List: true, Items: items})
	return r
}

func present(value any) (any, bool) {
	if value == nil {
		return nil, false
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false
		}
		value = v.Elem().Interface()
		v = v.Elem()
	}

	if v.Kind() == reflect.String && v.Len() == 0 {
		return nil, false
	}

	return value, true
}
