package observable

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"
)

// Entity is the surface edit sessions depend on. T is the concrete entity
// type, usually a pointer.
type Entity[T any] interface {
	OnPropertyChanged(fn func(name string)) Subscription
	NotifyPropertyChanged(name string)
	ErrorsFor(name string) []string
	HasErrors() bool

	// Clone returns an independent copy with its own notifier and errors.
	Clone() T
	// CopyValuesTo assigns every writable property of the receiver to dst.
	CopyValuesTo(dst T)
	// Properties lists every property value, meta-properties included.
	Properties() []Property
}

// Property is a named property value.
type Property struct {
	Name  string
	Value any
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Equal reports whether a and b hold equal values for every property not in
// excluded. Values are compared structurally.
func Equal(a, b []Property, excluded map[string]struct{}) bool {
	return cmp.Equal(index(a, excluded), index(b, excluded), exportAll)
}

// Fingerprint combines the hashes of every property not in excluded. Equal
// fingerprints do not guarantee equal properties.
func Fingerprint(props []Property, excluded map[string]struct{}) uint64 {
	var h uint64
	for _, p := range props {
		if _, skip := excluded[p.Name]; skip {
			continue
		}
		// Order independent combination.
		h ^= xxhash.Sum64String(fmt.Sprintf("%s=%#v", p.Name, p.Value))
	}
	return h
}

func index(props []Property, excluded map[string]struct{}) map[string]any {
	m := make(map[string]any, len(props))
	for _, p := range props {
		if _, skip := excluded[p.Name]; skip {
			continue
		}
		m[p.Name] = p.Value
	}
	return m
}
