package sensitive

import (
	"reflect"
	"sync"
)

// processorKey identifies a cached processor. Processors bound to different
// Sealers never share an entry, so key rotation through a new Sealer builds
// fresh plans.
type processorKey struct {
	typ         reflect.Type
	contentType string
	sealer      *Sealer
}

type processorCache struct {
	mu      sync.RWMutex
	entries map[processorKey]any
}

func (c *processorCache) lookup(key processorKey) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[key]
	return p, ok
}

var processors = &processorCache{entries: make(map[processorKey]any)}

// Use returns the processor for T, codec and sealer, building it on first
// use. T must implement Cloner[T].
func Use[T Cloner[T]](codec Codec, sealer *Sealer) (*Processor[T], error) {
	key := processorKey{typ: reflect.TypeFor[T](), contentType: codec.ContentType(), sealer: sealer}

	if p, ok := processors.lookup(key); ok {
		return p.(*Processor[T]), nil
	}

	processors.mu.Lock()
	defer processors.mu.Unlock()

	// another caller may have built it while we waited
	if p, ok := processors.entries[key]; ok {
		return p.(*Processor[T]), nil
	}

	p, err := NewProcessor[T](codec, sealer)
	if err != nil {
		return nil, err
	}
	processors.entries[key] = p
	return p, nil
}

// Forget drops every cached processor bound to sealer.
func Forget(sealer *Sealer) {
	processors.mu.Lock()
	defer processors.mu.Unlock()
	for key := range processors.entries {
		if key.sealer == sealer {
			delete(processors.entries, key)
		}
	}
}

// Reset clears the processor cache. Mostly useful between tests.
func Reset() {
	processors.mu.Lock()
	defer processors.mu.Unlock()
	processors.entries = make(map[processorKey]any)
}
