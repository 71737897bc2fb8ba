package candidates

import (
	"context"
	"log"
	"sync"

	"lunch-bot/internal/restaurant"
)

// Settings switch the candidate sources at runtime.
type Settings struct {
	UseGoogleSheets bool   `json:"use_google_sheets"`
	UseDefaultData  bool   `json:"use_default_data"`
	Region          string `json:"region"`
}

// SettingsUpdate changes only the fields that are set.
type SettingsUpdate struct {
	UseGoogleSheets *bool   `json:"use_google_sheets"`
	UseDefaultData  *bool   `json:"use_default_data"`
	Region          *string `json:"region"`
}

type ProviderOption func(*Provider)

func WithSheets(src Source) ProviderOption {
	return func(p *Provider) { p.sheets = src }
}

func WithSearch(src Source) ProviderOption {
	return func(p *Provider) { p.search = src }
}

// Provider merges all enabled sources into one deduplicated list.
type Provider struct {
	mu       sync.RWMutex
	static   *StaticSource
	sheets   Source
	search   Source
	settings Settings
}

func NewProvider(static *StaticSource, settings Settings, opts ...ProviderOption) *Provider {
	p := &Provider{static: static, settings: settings}
	for _, opt := range opts {
		opt(p)
	}
	if settings.Region != "" {
		static.SetRegion(settings.Region)
	}
	p.settings.Region = static.Region()
	return p
}

// Candidates fetches from the spreadsheet, the static lists and the search
// source in that order. A failing source is logged and skipped; the first
// occurrence of a name wins.
func (p *Provider) Candidates(ctx context.Context) ([]restaurant.Restaurant, error) {
	p.mu.RLock()
	settings := p.settings
	p.mu.RUnlock()

	var sources []Source
	if settings.UseGoogleSheets && p.sheets != nil {
		sources = append(sources, p.sheets)
	}
	if settings.UseDefaultData {
		sources = append(sources, p.static)
	}
	if p.search != nil {
		sources = append(sources, p.search)
	}

	var all []restaurant.Restaurant
	for _, src := range sources {
		list, err := src.Fetch(ctx)
		if err != nil {
			log.Printf("⚠️ candidate source %s failed: %v", src.Name(), err)
			continue
		}
		all = append(all, list...)
	}

	merged := restaurant.Dedup(all)
	if len(merged) == 0 {
		return nil, ErrNoCandidates
	}
	return merged, nil
}

func (p *Provider) Settings() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

func (p *Provider) UpdateSettings(u SettingsUpdate) Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u.UseGoogleSheets != nil {
		p.settings.UseGoogleSheets = *u.UseGoogleSheets
	}
	if u.UseDefaultData != nil {
		p.settings.UseDefaultData = *u.UseDefaultData
	}
	if u.Region != nil {
		p.static.SetRegion(*u.Region)
		p.settings.Region = p.static.Region()
	}
	return p.settings
}

func (p *Provider) Static() *StaticSource { return p.static }

func (p *Provider) SheetsConfigured() bool { return p.sheets != nil }
