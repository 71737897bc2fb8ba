package candidates

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"lunch-bot/internal/restaurant"
)

// StaticSource serves the built-in chain list plus an optional regional list.
// The lists can grow at runtime through Add.
type StaticSource struct {
	mu       sync.RWMutex
	defaults []restaurant.Restaurant
	regional map[string][]restaurant.Restaurant
	region   string
}

func NewStaticSource(region string) *StaticSource {
	if region == "" {
		region = DefaultRegion
	}
	return &StaticSource{
		defaults: defaultRestaurants(),
		regional: regionalRestaurants(),
		region:   region,
	}
}

func (s *StaticSource) Name() string { return "static" }

// Fetch returns the default list followed by the active region's list.
func (s *StaticSource) Fetch(_ context.Context) ([]restaurant.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]restaurant.Restaurant, 0, len(s.defaults)+len(s.regional[s.region]))
	out = append(out, s.defaults...)
	out = append(out, s.regional[s.region]...)
	return out, nil
}

// Add appends r to the default list. Name and genre are required and the
// name must not already be present.
func (s *StaticSource) Add(r restaurant.Restaurant) error {
	r = r.Normalize()
	if r.Name == "" || r.Genre == "" {
		return ErrInvalidRestaurant
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.defaults {
		if existing.Name == r.Name {
			return ErrDuplicateRestaurant
		}
	}
	s.defaults = append(s.defaults, r)
	return nil
}

// Merge adds restaurants loaded from a file. Default entries with a known
// name are skipped; regional lists are appended per region.
func (s *StaticSource) Merge(f File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = restaurant.Dedup(append(s.defaults, f.Restaurants...))
	for region, list := range f.Regional {
		key := strings.ToLower(region)
		s.regional[key] = restaurant.Dedup(append(s.regional[key], list...))
	}
}

func (s *StaticSource) Defaults() []restaurant.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]restaurant.Restaurant(nil), s.defaults...)
}

func (s *StaticSource) Region() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.region
}

func (s *StaticSource) SetRegion(region string) {
	region = strings.ToLower(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.region = region
}

// RegionSizes reports how many restaurants each regional list holds.
func (s *StaticSource) RegionSizes() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.regional))
	for k, v := range s.regional {
		out[k] = len(v)
	}
	return out
}

func (s *StaticSource) Regions() []string {
	sizes := s.RegionSizes()
	out := make([]string, 0, len(sizes))
	for k := range sizes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// File is the YAML layout of an extra restaurants file.
type File struct {
	Restaurants []restaurant.Restaurant            `yaml:"restaurants"`
	Regional    map[string][]restaurant.Restaurant `yaml:"regional"`
}

func LoadRestaurantsFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read restaurants file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse restaurants file: %w", err)
	}
	for i, r := range f.Restaurants {
		f.Restaurants[i] = r.Normalize()
	}
	for region, list := range f.Regional {
		for i, r := range list {
			list[i] = r.Normalize()
		}
		f.Regional[region] = list
	}
	return f, nil
}
