// Package category holds the static category reference data.
package category

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultCategoriesYAML []byte

type registryFile struct {
	Categories []domain.Category `yaml:"categories"`
}

// Registry is an immutable key -> category lookup. It is safe for
// concurrent use.
type Registry struct {
	ordered []domain.Category
	byKey   map[domain.CategoryKey]domain.Category
}

var _ domain.CategoryRegistry = (*Registry)(nil)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Parse(defaultCategoriesYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded categories are invalid: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// LoadFile reads a registry from a YAML file. An empty path returns Default.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return New(file.Categories)
}

// New builds a registry, rejecting blank or duplicate keys.
func New(categories []domain.Category) (*Registry, error) {
	reg := &Registry{
		ordered: make([]domain.Category, 0, len(categories)),
		byKey:   make(map[domain.CategoryKey]domain.Category, len(categories)),
	}
	for i, c := range categories {
		c.Key = domain.CategoryKey(strings.TrimSpace(string(c.Key)))
		if c.Key == "" {
			return nil, fmt.Errorf("category %d has no key", i)
		}
		if _, dup := reg.byKey[c.Key]; dup {
			return nil, fmt.Errorf("duplicate category key %q", c.Key)
		}
		reg.byKey[c.Key] = c
		reg.ordered = append(reg.ordered, c)
	}
	return reg, nil
}

// Lookup returns the category for key.
func (r *Registry) Lookup(key domain.CategoryKey) (domain.Category, bool) {
	c, ok := r.byKey[key]
	return c, ok
}

// All returns the categories in declared order. The slice is a copy.
func (r *Registry) All() []domain.Category {
	out := make([]domain.Category, len(r.ordered))
	copy(out, r.ordered)
	return out
}
