package candidates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lunch-bot/internal/llm"
	"lunch-bot/internal/restaurant"
)

const searchSystemPrompt = `You suggest real lunch restaurants near an office.
Answer with a JSON array only. Each element is an object with the keys
"name", "genre", "address", "url" and "description". Omit unknown values.`

// SearchSource asks an LLM for restaurants matching a query near a location.
type SearchSource struct {
	client   llm.Client
	query    string
	location string
	limit    int
}

func NewSearchSource(client llm.Client, query, location string) *SearchSource {
	return &SearchSource{client: client, query: query, location: location, limit: 5}
}

func (s *SearchSource) Name() string { return "llm-search" }

func (s *SearchSource) Fetch(ctx context.Context) ([]restaurant.Restaurant, error) {
	prompt := fmt.Sprintf("List up to %d places for %q", s.limit, s.query)
	if s.location != "" {
		prompt += fmt.Sprintf(" in %s", s.location)
	}
	resp, err := s.client.Generate(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: searchSystemPrompt},
		{Role: llm.RoleUser, Content: prompt + "."},
	})
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	list, err := parseSearchResponse(resp.Content)
	if err != nil {
		return nil, err
	}
	if len(list) > s.limit {
		list = list[:s.limit]
	}
	return list, nil
}

// parseSearchResponse extracts the JSON array from the model output, which
// may be wrapped in prose or a code fence.
func parseSearchResponse(content string) ([]restaurant.Restaurant, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return nil, errors.New("search response contains no JSON array")
	}
	var list []restaurant.Restaurant
	if err := json.Unmarshal([]byte(content[start:end+1]), &list); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return restaurant.Dedup(list), nil
}
