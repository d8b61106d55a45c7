package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"travelers/internal/domain"
)

// QueryService serves read paths over the immutable catalog. Every query is
// a pure function of the catalog, so results are safe to cache and to serve
// concurrently. Only the explore composition goes through the cache; detail
// lookups hit the in-memory index directly.
type QueryService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
	group    singleflight.Group
}

func NewQueryService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func filterKey(f domain.Filter) string {
	return fmt.Sprintf("explore:%s|%s|%s|%s|%s", f.Search, f.Type, f.Region, f.Budget, f.Rating)
}

// Explore runs the AND composition of search and categorical filters.
// Concurrent misses for the same filter are collapsed to one computation.
func (s *QueryService) Explore(ctx context.Context, f domain.Filter) ([]domain.ItemView, error) {
	key := filterKey(f)
	var cached []domain.ItemView
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		views := domain.NewItemViews(domain.ApplyFilter(f, s.repo.All()))
		_ = s.cache.Set(ctx, key, views, int(s.cacheTTL.Seconds()))
		return views, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.ItemView), nil
}

// Item returns the detail view for one catalog entry. Absence is ok=false,
// never an error; callers render "not found" themselves.
func (s *QueryService) Item(id string) (domain.ItemView, bool) {
	it, ok := s.repo.ByID(id)
	if !ok {
		return domain.ItemView{}, false
	}
	return domain.NewItemView(it), true
}

func (s *QueryService) Reviews(id string) ([]domain.Review, bool) {
	it, ok := s.repo.ByID(id)
	if !ok {
		return nil, false
	}
	return it.Reviews, true
}

func (s *QueryService) Similar(id string, limit int) []domain.ItemView {
	return domain.NewItemViews(domain.SimilarItems(s.repo, id, limit))
}

func (s *QueryService) Nearby(id string, radiusKm float64, limit int) []domain.ItemView {
	return domain.NewItemViews(domain.NearbyItems(s.repo, id, radiusKm, limit))
}

// Destinations returns the home-page suggestions; an empty query returns
// every destination.
func (s *QueryService) Destinations(query string) []domain.Destination {
	all := s.repo.Destinations()
	if query == "" {
		return all
	}
	return domain.SearchDestinations(query, all)
}

func (s *QueryService) Testimonials() []domain.Testimonial { return s.repo.Testimonials() }

func (s *QueryService) Regions() []string { return s.repo.Regions() }
