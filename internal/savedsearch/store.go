// Package savedsearch persists the user's past searches as a single
// newest-first list, capped at the most recent entries. The list is small
// and single-user, so every mutation is a whole-document read-modify-write.
package savedsearch

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ticketscan/ticketscan/internal/models"
)

const (
	// MaxEntries is the save cap; older entries fall off the end.
	MaxEntries = 50

	redisKey = "ticketscan:saved_searches"
)

var ErrNotFound = errors.New("saved search not found")

type Store interface {
	List(ctx context.Context) ([]models.SavedSearch, error)
	Save(ctx context.Context, search models.SavedSearch) (models.SavedSearch, error)
	Delete(ctx context.Context, id string) error
	UpdateNote(ctx context.Context, id, note string) error
}

// SummarizeResults digests per-destination offer lists into the compact
// form kept with a saved search.
func SummarizeResults(destinations []string, offersByDestination map[string][]models.FlightOffer) []models.DestinationSummary {
	summaries := make([]models.DestinationSummary, 0, len(destinations))
	for _, dest := range destinations {
		offers := offersByDestination[dest]

		summary := models.DestinationSummary{
			Destination: dest,
			FlightCount: len(offers),
		}
		if len(offers) > 0 {
			sorted := make([]models.FlightOffer, len(offers))
			copy(sorted, offers)
			sort.SliceStable(sorted, func(i, j int) bool {
				return sorted[i].Price.Total < sorted[j].Price.Total
			})

			price := sorted[0].Price.Total
			airline := sorted[0].Airline
			summary.CheapestPrice = &price
			summary.Airline = &airline
		}

		summaries = append(summaries, summary)
	}
	return summaries
}

func stamp(search models.SavedSearch) models.SavedSearch {
	search.ID = "search-" + uuid.NewString()
	search.SavedAt = time.Now().UTC()
	return search
}

type RedisStore struct {
	client *redis.Client
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) List(ctx context.Context) ([]models.SavedSearch, error) {
	data, err := s.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.SavedSearch{}, nil
	}
	if err != nil {
		return nil, err
	}

	var searches []models.SavedSearch
	if err := json.Unmarshal(data, &searches); err != nil {
		return nil, err
	}
	return searches, nil
}

func (s *RedisStore) write(ctx context.Context, searches []models.SavedSearch) error {
	data, err := json.Marshal(searches)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKey, data, 0).Err()
}

func (s *RedisStore) Save(ctx context.Context, search models.SavedSearch) (models.SavedSearch, error) {
	searches, err := s.List(ctx)
	if err != nil {
		return models.SavedSearch{}, err
	}

	search = stamp(search)
	searches = append([]models.SavedSearch{search}, searches...)
	if len(searches) > MaxEntries {
		searches = searches[:MaxEntries]
	}

	if err := s.write(ctx, searches); err != nil {
		return models.SavedSearch{}, err
	}
	return search, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	searches, err := s.List(ctx)
	if err != nil {
		return err
	}

	filtered := searches[:0]
	for _, sr := range searches {
		if sr.ID != id {
			filtered = append(filtered, sr)
		}
	}

	return s.write(ctx, filtered)
}

func (s *RedisStore) UpdateNote(ctx context.Context, id, note string) error {
	searches, err := s.List(ctx)
	if err != nil {
		return err
	}

	for i := range searches {
		if searches[i].ID == id {
			searches[i].Note = note
			return s.write(ctx, searches)
		}
	}

	return ErrNotFound
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
