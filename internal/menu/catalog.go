package menu

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the restaurant's menu: canonical item names with prices, alias
// phrasings, and the keyword set that decides which items need a spice level.
// Loaded once at startup and immutable afterwards.
type Catalog struct {
	items         map[string]float64
	aliases       map[string]string
	spiceKeywords []string
}

// CatalogFile is the YAML shape of an external menu config.
type CatalogFile struct {
	Items         map[string]float64 `yaml:"items"`
	Aliases       map[string]string  `yaml:"aliases"`
	SpiceKeywords []string           `yaml:"spice_keywords"`
}

// NewCatalog validates and builds a catalog. Alias keys must not collide with
// canonical names and every alias must point at a known canonical item.
func NewCatalog(items map[string]float64, aliases map[string]string, spiceKeywords []string) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("menu: catalog has no items")
	}

	normItems := make(map[string]float64, len(items))
	for name, price := range items {
		clean := strings.ToLower(strings.TrimSpace(name))
		if clean == "" {
			return nil, fmt.Errorf("menu: empty item name")
		}
		if price <= 0 {
			return nil, fmt.Errorf("menu: item %q has non-positive price", name)
		}
		normItems[clean] = price
	}

	normAliases := make(map[string]string, len(aliases))
	for alias, target := range aliases {
		a := strings.ToLower(strings.TrimSpace(alias))
		t := strings.ToLower(strings.TrimSpace(target))
		if a == t {
			return nil, fmt.Errorf("menu: alias %q maps to itself", alias)
		}
		if _, ok := normItems[t]; !ok {
			return nil, fmt.Errorf("menu: alias %q points at unknown item %q", alias, target)
		}
		if _, ok := normItems[a]; ok {
			return nil, fmt.Errorf("menu: alias %q shadows a canonical item", alias)
		}
		normAliases[a] = t
	}

	keywords := make([]string, 0, len(spiceKeywords))
	for _, kw := range spiceKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}

	return &Catalog{
		items:         normItems,
		aliases:       normAliases,
		spiceKeywords: keywords,
	}, nil
}

// LoadCatalogFile reads a YAML menu config from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("menu: read config: %w", err)
	}

	var file CatalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("menu: parse config: %w", err)
	}

	return NewCatalog(file.Items, file.Aliases, file.SpiceKeywords)
}

// DefaultCatalog is the built-in menu used when no config file is given.
func DefaultCatalog() *Catalog {
	items := map[string]float64{
		"chicken dum biryani":  15.99,
		"goat dum biryani":     18.99,
		"shrimp biryani":       17.99,
		"butter chicken":       17.99,
		"chicken tikka masala": 16.99,
		"paneer butter masala": 15.99,
		"chicken curry":        15.99,
		"lamb curry":           17.99,
		"shrimp fry":           16.99,
		"tandoori chicken":     15.99,
		"chicken 65":           13.99,
		"garlic naan":          3.99,
		"plain naan":           2.99,
		"samosa":               5.99,
		"hot & sour soup":      6.99,
		"mango lassi":          5.99,
		"gulab jamun":          4.99,
	}
	aliases := map[string]string{
		"chicken biryani":   "chicken dum biryani",
		"dum biryani":       "chicken dum biryani",
		"goat biryani":      "goat dum biryani",
		"prawn biryani":     "shrimp biryani",
		"tikka masala":      "chicken tikka masala",
		"paneer masala":     "paneer butter masala",
		"paneer makhani":    "paneer butter masala",
		"murgh makhani":     "butter chicken",
		"shrimp fries":      "shrimp fry",
		"tandoori":          "tandoori chicken",
		"naan":              "garlic naan",
		"veg samosa":        "samosa",
		"vegetable samosa":  "samosa",
		"hot and sour soup": "hot & sour soup",
		"lassi":             "mango lassi",
	}
	spiceKeywords := []string{"biryani", "curry", "masala"}

	catalog, err := NewCatalog(items, aliases, spiceKeywords)
	if err != nil {
		// The built-in tables are static; a failure here is a programming error.
		panic(err)
	}
	return catalog
}

// Price returns the unit price for a canonical name.
func (c *Catalog) Price(canonical string) (float64, bool) {
	price, ok := c.items[strings.ToLower(canonical)]
	return price, ok
}

// SpiceRequired reports whether a canonical item needs an explicit spice
// level. Evaluated on the canonical name, never on the raw alias.
func (c *Catalog) SpiceRequired(canonical string) bool {
	name := strings.ToLower(canonical)
	for _, kw := range c.spiceKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// Names returns every canonical item name. Used to seed the AI parser prompt.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.items))
	for name := range c.items {
		names = append(names, name)
	}
	return names
}
