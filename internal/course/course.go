// Package course loads the content layer's item catalog: which practice
// items exist, what they are called, and which module and concept each
// belongs to.
package course

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/queue"
)

// Item is one practice item.
type Item struct {
	Key     string `yaml:"key"`
	Label   string `yaml:"label"`
	Module  string `yaml:"-"`
	Concept string `yaml:"concept"`
}

// Module groups items.
type Module struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Items []Item `yaml:"items"`
}

// Course is a loaded catalog.
type Course struct {
	ID      string   `yaml:"course"`
	Title   string   `yaml:"title"`
	Modules []Module `yaml:"modules"`

	byKey map[string]Item
}

// Load reads a catalog from a .yaml/.yml manifest or an .xlsx sheet.
func Load(path string) (*Course, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read course manifest: %w", err)
		}
		return Parse(data)
	case ".xlsx":
		return ImportXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported course file %q", ext)
	}
}

// finish fills in derived fields and checks keys are unique.
func (c *Course) finish() error {
	c.byKey = make(map[string]Item)
	for mi := range c.Modules {
		m := &c.Modules[mi]
		for ii := range m.Items {
			it := &m.Items[ii]
			it.Module = m.ID
			if _, dup := c.byKey[it.Key]; dup {
				return fmt.Errorf("duplicate item key %q", it.Key)
			}
			c.byKey[it.Key] = *it
		}
	}
	return nil
}

// Items returns every item in manifest order.
func (c *Course) Items() []Item {
	var out []Item
	for _, m := range c.Modules {
		out = append(out, m.Items...)
	}
	return out
}

// Item looks up one item by key.
func (c *Course) Item(key string) (Item, bool) {
	it, ok := c.byKey[key]
	return it, ok
}

// Label returns the display label for key, or "" if unknown.
func (c *Course) Label(key string) string {
	return c.byKey[key].Label
}

// ModuleIDs returns the module ids in manifest order.
func (c *Course) ModuleIDs() []string {
	ids := make([]string, len(c.Modules))
	for i, m := range c.Modules {
		ids[i] = m.ID
	}
	return ids
}

// ConceptIndex maps every item with a concept to its module and concept.
func (c *Course) ConceptIndex() mastery.Index {
	idx := make(mastery.Index)
	for key, it := range c.byKey {
		if it.Concept == "" {
			continue
		}
		idx[key] = mastery.ConceptRef{Module: it.Module, Concept: it.Concept}
	}
	return idx
}

// ModuleFilter accepts the keys of one module. An empty id accepts every
// key in the course.
func (c *Course) ModuleFilter(id string) queue.Filter {
	if id == "" {
		return func(key string) bool {
			_, ok := c.byKey[key]
			return ok
		}
	}
	return func(key string) bool {
		return c.byKey[key].Module == id
	}
}

// Unseen returns items that have no scheduling history, in manifest order,
// restricted to filter.
func (c *Course) Unseen(seen map[string]bool, filter queue.Filter) []Item {
	var out []Item
	for _, it := range c.Items() {
		if seen[it.Key] {
			continue
		}
		if filter != nil && !filter(it.Key) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Concepts returns the distinct concepts of a module, sorted.
func (c *Course) Concepts(module string) []string {
	set := make(map[string]bool)
	for _, it := range c.byKey {
		if it.Module == module && it.Concept != "" {
			set[it.Concept] = true
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
