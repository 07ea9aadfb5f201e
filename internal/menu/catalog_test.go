package menu

import "testing"

func TestAliasRoundTrip(t *testing.T) {
	c := DefaultCatalog()

	for alias, want := range c.aliases {
		viaAlias, ok := c.Resolve(alias)
		if !ok {
			t.Fatalf("alias %q did not resolve", alias)
		}
		viaCanonical, ok := c.Resolve(want)
		if !ok {
			t.Fatalf("canonical %q did not resolve", want)
		}
		if viaAlias != viaCanonical {
			t.Fatalf("alias %q resolved to %q, canonical resolves to %q", alias, viaAlias, viaCanonical)
		}
	}
}

func TestSpiceRequiredUsesCanonicalName(t *testing.T) {
	c := DefaultCatalog()

	for name, want := range map[string]bool{
		"chicken dum biryani":  true,
		"lamb curry":           true,
		"chicken tikka masala": true,
		"butter chicken":       false,
		"mango lassi":          false,
		"garlic naan":          false,
	} {
		if got := c.SpiceRequired(name); got != want {
			t.Errorf("SpiceRequired(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewCatalogRejectsBadTables(t *testing.T) {
	items := map[string]float64{"butter chicken": 17.99}

	if _, err := NewCatalog(nil, nil, nil); err == nil {
		t.Error("expected error for empty catalog")
	}
	if _, err := NewCatalog(items, map[string]string{"x": "missing item"}, nil); err == nil {
		t.Error("expected error for alias to unknown item")
	}
	if _, err := NewCatalog(items, map[string]string{"butter chicken": "butter chicken"}, nil); err == nil {
		t.Error("expected error for self-mapping alias")
	}
	if _, err := NewCatalog(map[string]float64{"free curry": 0}, nil, nil); err == nil {
		t.Error("expected error for non-positive price")
	}
}

func TestPriceLookup(t *testing.T) {
	c := DefaultCatalog()

	price, ok := c.Price("chicken dum biryani")
	if !ok || price != 15.99 {
		t.Fatalf("Price(chicken dum biryani) = %v, %v", price, ok)
	}
	if _, ok := c.Price("flying saucer curry"); ok {
		t.Fatal("expected miss for unknown item")
	}
}
