package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry   = make(map[string]Definition)
	registryMu sync.RWMutex
)

// Register adds a dataset definition to the registry.
// Panics if a dataset with the same key is already registered.
func Register(def Definition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("dataset already registered: %s", def.Info.Key))
	}
	registry[def.Info.Key] = def
}

// Get returns a dataset definition by key.
func Get(key string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered datasets in import order: parents (orders,
// products) before dependents (items, returns).
func All() []Definition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Definition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Sequence != result[j].Info.Sequence {
			return result[i].Info.Sequence < result[j].Info.Sequence
		}
		return result[i].Info.Key < result[j].Info.Key
	})
	return result
}

// Match returns the dataset whose file patterns match the given base file
// name. Longer patterns win so "Digital Orders Monetary" beats "Digital
// Orders". Disabled datasets never match.
func Match(fileName string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	lower := strings.ToLower(fileName)
	var best Definition
	bestLen := -1
	for _, def := range registry {
		if def.Info.Disabled {
			continue
		}
		for _, pattern := range def.Info.FilePatterns {
			p := strings.ToLower(pattern)
			if strings.HasPrefix(lower, p) && len(p) > bestLen {
				best = def
				bestLen = len(p)
			}
		}
	}
	return best, bestLen >= 0
}

// Override adjusts a registered dataset's file matching: extra patterns
// are appended to the built-in ones, and disabled excludes the dataset
// from directory scans. Returns an error for an unknown key.
func Override(key string, extraPatterns []string, disabled bool) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	def, ok := registry[key]
	if !ok {
		return fmt.Errorf("unknown dataset: %s", key)
	}
	def.Info.FilePatterns = append(def.Info.FilePatterns, extraPatterns...)
	def.Info.Disabled = disabled
	registry[key] = def
	return nil
}

// Count returns the number of registered datasets.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered datasets. Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Definition)
}
