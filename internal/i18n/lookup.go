// Package i18n holds the translation catalogs the résumé is localized with.
package i18n

// Lookup resolves a dot-separated key path for one locale. ok is false when
// the key has no translation; an empty value with ok true is a deliberate
// empty translation.
type Lookup interface {
	Lookup(key string) (value string, ok bool)
}

// LookupFunc adapts a plain function to Lookup.
type LookupFunc func(key string) (string, bool)

func (f LookupFunc) Lookup(key string) (string, bool) { return f(key) }

// FromEcho adapts a translate function that signals a miss by returning the
// key path unchanged.
func FromEcho(t func(key string) string) Lookup {
	return LookupFunc(func(key string) (string, bool) {
		v := t(key)
		if v == key {
			return "", false
		}
		return v, true
	})
}

// Map is a flat key/value Lookup, mostly useful in tests.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Empty never resolves anything.
var Empty Lookup = Map(nil)

// Text resolves key, returning def when the key is missing.
func Text(l Lookup, key, def string) string {
	if l == nil {
		return def
	}
	if v, ok := l.Lookup(key); ok {
		return v
	}
	return def
}
