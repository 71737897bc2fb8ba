package candidates

import (
	"context"
	"errors"

	"lunch-bot/internal/restaurant"
)

var (
	ErrNoCandidates        = errors.New("no restaurant candidates available")
	ErrInvalidRestaurant   = errors.New("restaurant name and genre are required")
	ErrDuplicateRestaurant = errors.New("restaurant with the same name already exists")
)

// Source produces restaurant candidates.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]restaurant.Restaurant, error)
}
