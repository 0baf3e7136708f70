package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/harvestly/harvestly-backend/pkg/db/models"
	"github.com/harvestly/harvestly-backend/pkg/enums"
	pkgerrors "github.com/harvestly/harvestly-backend/pkg/errors"
	"github.com/harvestly/harvestly-backend/pkg/metrics"
)

const snapshotScope = "catalog"

// Service exposes the buyer-facing browse operations.
type Service interface {
	Browse(ctx context.Context, input BrowseInput) (*BrowseResult, error)
	Categories(ctx context.Context) ([]CategorySummary, error)
}

// BrowseInput carries the explicit ranking parameters for one browse request.
type BrowseInput struct {
	Category      string
	Search        string
	Sort          enums.SortMode
	BuyerLocation *LatLng
	Limit         int
}

// CatalogSource is the external data-access collaborator: it supplies the
// already-fetched records the engine ranks. The engine itself never touches
// storage.
type CatalogSource interface {
	ActiveProducts(ctx context.Context) ([]models.Product, error)
	ReviewAggregates(ctx context.Context) (map[uuid.UUID]ReviewAggregate, error)
}

// SnapshotCache is the optional short-TTL cache in front of the catalog fetch.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SnapshotKey(scope string) string
}

// ServiceParams wires the service dependencies. Cache and Metrics are optional.
type ServiceParams struct {
	Repo         CatalogSource
	Cache        SnapshotCache
	Metrics      *metrics.RankingMetrics
	SnapshotTTL  time.Duration
	DefaultLimit int
	MaxLimit     int
}

type service struct {
	repo         CatalogSource
	cache        SnapshotCache
	metrics      *metrics.RankingMetrics
	snapshotTTL  time.Duration
	defaultLimit int
	maxLimit     int
}

// NewService constructs the marketplace browse service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if params.DefaultLimit <= 0 {
		params.DefaultLimit = 50
	}
	if params.MaxLimit <= 0 {
		params.MaxLimit = 200
	}
	return &service{
		repo:         params.Repo,
		cache:        params.Cache,
		metrics:      params.Metrics,
		snapshotTTL:  params.SnapshotTTL,
		defaultLimit: params.DefaultLimit,
		maxLimit:     params.MaxLimit,
	}, nil
}

// Browse materializes the enriched snapshot, recomputes the category averages,
// and runs a full ranking pass. Ranking recomputes from scratch on every call;
// at single-city catalog size that is cheaper and simpler than maintaining an
// incremental index.
func (s *service) Browse(ctx context.Context, input BrowseInput) (*BrowseResult, error) {
	offers, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	mode := input.Sort
	if mode == "" {
		mode = enums.SortModeSmart
	}

	averages := CategoryAverages(offers)

	start := time.Now()
	ranked := Rank(offers, RankInput{
		Category:      input.Category,
		Search:        input.Search,
		Sort:          mode,
		BuyerLocation: input.BuyerLocation,
	}, averages)
	s.metrics.ObserveRanking(mode.String(), time.Since(start), len(ranked))

	total := len(ranked)
	limit := s.normalizeLimit(input.Limit)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	scoredPass := mode == enums.SortModeSmart
	dtos := make([]OfferDTO, 0, len(ranked))
	for _, entry := range ranked {
		dtos = append(dtos, NewOfferDTO(entry, scoredPass))
	}

	category := input.Category
	if category == "" {
		category = enums.CategoryAll
	}

	return &BrowseResult{
		Offers:   dtos,
		Total:    total,
		Category: category,
		Sort:     mode.String(),
	}, nil
}

// Categories summarizes active offer counts per category key.
func (s *service) Categories(ctx context.Context) ([]CategorySummary, error) {
	offers, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[enums.ProduceCategory]int)
	for _, offer := range offers {
		if !offer.Active() {
			continue
		}
		counts[offer.Category]++
	}

	summaries := make([]CategorySummary, 0, len(counts))
	for category, count := range counts {
		summaries = append(summaries, CategorySummary{Category: category.String(), Offers: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Category < summaries[j].Category
	})
	return summaries, nil
}

// snapshot returns the enriched catalog, consulting the short-TTL cache when
// one is wired. Cache failures degrade to a direct fetch, never to an error.
func (s *service) snapshot(ctx context.Context) ([]Offer, error) {
	if s.cache == nil || s.snapshotTTL <= 0 {
		return s.fetch(ctx)
	}

	key := s.cache.SnapshotKey(snapshotScope)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var offers []Offer
		if unmarshalErr := json.Unmarshal([]byte(raw), &offers); unmarshalErr == nil {
			return offers, nil
		}
	}

	offers, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if buf, marshalErr := json.Marshal(offers); marshalErr == nil {
		_ = s.cache.Set(ctx, key, string(buf), s.snapshotTTL)
	}
	return offers, nil
}

func (s *service) fetch(ctx context.Context) ([]Offer, error) {
	products, err := s.repo.ActiveProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}
	reviews, err := s.repo.ReviewAggregates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review aggregates")
	}
	return BuildOffers(products, reviews), nil
}

func (s *service) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
