package restaurant

import "strings"

// Restaurant is a lunch candidate. Name is the identity key: two entries
// with the same name are the same restaurant.
type Restaurant struct {
	Name        string `json:"name" yaml:"name"`
	Genre       string `json:"genre,omitempty" yaml:"genre"`
	Address     string `json:"address,omitempty" yaml:"address"`
	URL         string `json:"url,omitempty" yaml:"url"`
	OrderURL    string `json:"order_url,omitempty" yaml:"order_url"`
	Phone       string `json:"phone,omitempty" yaml:"phone"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Normalize trims whitespace from every field.
func (r Restaurant) Normalize() Restaurant {
	r.Name = strings.TrimSpace(r.Name)
	r.Genre = strings.TrimSpace(r.Genre)
	r.Address = strings.TrimSpace(r.Address)
	r.URL = strings.TrimSpace(r.URL)
	r.OrderURL = strings.TrimSpace(r.OrderURL)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Description = strings.TrimSpace(r.Description)
	return r
}

// Dedup drops entries without a name and keeps the first entry for every
// name, preserving order.
func Dedup(list []Restaurant) []Restaurant {
	seen := make(map[string]bool, len(list))
	out := make([]Restaurant, 0, len(list))
	for _, r := range list {
		r = r.Normalize()
		if r.Name == "" || seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		out = append(out, r)
	}
	return out
}

// Names returns the names of list in order.
func Names(list []Restaurant) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Name)
	}
	return out
}
