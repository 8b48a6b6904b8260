package ontology

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultFactorySize bounds the shared object cache.
const DefaultFactorySize = 4096

// DataFactory shares structurally equal sub-objects so repeated references
// to the same expression resolve to the same instance. It is safe for
// concurrent use.
type DataFactory struct {
	cache *lru.Cache[string, Keyed]
}

// NewDataFactory creates a factory caching up to size objects.
func NewDataFactory(size int) (*DataFactory, error) {
	if size <= 0 {
		size = DefaultFactorySize
	}
	cache, err := lru.New[string, Keyed](size)
	if err != nil {
		return nil, err
	}
	return &DataFactory{cache: cache}, nil
}

func share[T Keyed](f *DataFactory, prefix string, v T) T {
	if f == nil {
		return v
	}
	key := prefix + v.Key()
	if cached, ok := f.cache.Get(key); ok {
		if t, ok := cached.(T); ok {
			return t
		}
	}
	f.cache.Add(key, v)
	return v
}

// ClassExpression returns the shared instance equal to ce.
func (f *DataFactory) ClassExpression(ce ClassExpression) ClassExpression {
	return share(f, "C:", ce)
}

// DataRange returns the shared instance equal to dr.
func (f *DataFactory) DataRange(dr DataRange) DataRange {
	return share(f, "D:", dr)
}

// ObjectProperty returns the shared instance equal to p.
func (f *DataFactory) ObjectProperty(p ObjectPropertyExpression) ObjectPropertyExpression {
	return share(f, "P:", p)
}

// Len returns the number of cached objects.
func (f *DataFactory) Len() int { return f.cache.Len() }

// Purge drops every cached object.
func (f *DataFactory) Purge() { f.cache.Purge() }
