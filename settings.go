package htmltox

// Settings is a node of a settings graph. Fields declares the node's schema:
// the configuration key and current value of every field, in order.
// Implementations must tolerate a nil receiver and return no fields.
type Settings interface {
	Fields() []Field
}

// Field is one declared field of a settings node.
// An empty Key marks an untagged field; only untagged nested settings are
// traversed. A nil Value is never emitted.
type Field struct {
	Key   string
	Value any
}

// String declares a string field.
func String(key string, v *string) Field {
	if v == nil {
		return Field{Key: key}
	}
	return Field{Key: key, Value: *v}
}

// Text declares a field holding a string-kinded enum.
func Text[T ~string](key string, v *T) Field {
	if v == nil {
		return Field{Key: key}
	}
	return Field{Key: key, Value: string(*v)}
}

// Bool declares a boolean field.
func Bool(key string, v *bool) Field {
	if v == nil {
		return Field{Key: key}
	}
	return Field{Key: key, Value: *v}
}

// Float declares a double field.
func Float(key string, v *float64) Field {
	if v == nil {
		return Field{Key: key}
	}
	return Field{Key: key, Value: *v}
}

// Int declares an integer field.
func Int(key string, v *int) Field {
	if v == nil {
		return Field{Key: key}
	}
	return Field{Key: key, Value: *v}
}

// Dict declares a string dictionary field, emitted with append semantics.
func Dict(key string, v map[string]string) Field {
	if v == nil {
		return Field{Key: key}
	}
	return Field{Key: key, Value: v}
}

// Nested declares a tagged settings field: its fields are emitted under key.
func Nested(key string, s Settings) Field {
	if s == nil {
		return Field{Key: key}
	}
	return Field{Key: key, Value: s}
}

// Embed declares an untagged settings field flattened under the parent's prefix.
func Embed(s Settings) Field {
	if s == nil {
		return Field{}
	}
	return Field{Value: s}
}

// Ptr returns a pointer to v. Handy for filling optional settings.
func Ptr[T any](v T) *T {
	return &v
}

// Scope selects which settings block an operation targets.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeObject
)

func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Operation is one flat configuration call. Value is nil only for the
// ".append" marker of dictionary fields.
type Operation struct {
	Scope Scope
	Key   string
	Value *string
}
