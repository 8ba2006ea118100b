package catalog

import "fmt"

// Tier is one orderable arrangement preset. Price is the display string
// shown on the form and interpolated into messages, tax included.
type Tier struct {
	ID    string
	Name  string
	Price string
	Image string
}

var tiers = []Tier{
	{
		ID:    "type-a",
		Name:  "白菊・洋花盛り (A)",
		Price: "16,500円",
		Image: "https://images.unsplash.com/photo-1596438411234-7299387498c4?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID:    "type-b",
		Name:  "胡蝶蘭入り盛り (B)",
		Price: "22,000円",
		Image: "https://images.unsplash.com/photo-1582794543139-8ac9cb0f7b11?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID:    "type-c",
		Name:  "特選・洋花スタンド (C)",
		Price: "33,000円",
		Image: "https://images.unsplash.com/photo-1563241527-3004b7be0fab?auto=format&fit=crop&q=80&w=400",
	},
}

// Tiers returns the orderable presets in display order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Default is the preselected tier on a fresh form.
func Default() Tier {
	return tiers[0]
}

// Resolve maps a selected tier name back to its preset. The form only
// offers preset names, so an unknown name means the caller's state is off.
func Resolve(name string) (Tier, error) {
	for _, t := range tiers {
		if t.Name == name {
			return t, nil
		}
	}
	return Tier{}, fmt.Errorf("unknown flower tier: %s", name)
}
