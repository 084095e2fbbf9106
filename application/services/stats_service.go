package services

import (
	"context"
	"math"
	"sort"
	"time"

	"railrouter/application/ports"
)

// GroupBy selects the period granularity for distance aggregation.
type GroupBy string

const (
	GroupByNone  GroupBy = "none"
	GroupByDay   GroupBy = "day"
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"
)

// Valid reports whether g is one of the supported granularities.
func (g GroupBy) Valid() bool {
	switch g {
	case GroupByNone, GroupByDay, GroupByMonth, GroupByYear:
		return true
	}
	return false
}

func (g GroupBy) layout() string {
	switch g {
	case GroupByDay:
		return "2006-01-02"
	case GroupByMonth:
		return "2006-01"
	case GroupByYear:
		return "2006"
	}
	return ""
}

// DistanceStatItem is one aggregation bucket: total kilometers recorded
// for an analytic code, optionally within one period group.
type DistanceStatItem struct {
	AnalyticCode    string  `json:"analyticCode"`
	TotalDistanceKm float64 `json:"totalDistanceKm"`
	PeriodStart     string  `json:"periodStart"`
	PeriodEnd       string  `json:"periodEnd"`
	Group           string  `json:"group,omitempty"`
}

// RouteStatsService aggregates persisted routes for the analytics API.
// Aggregation runs in memory over a date-filtered fetch from the route
// store; volumes here are small (one record per calculation).
type RouteStatsService struct {
	routes ports.RouteRepository
}

// NewRouteStatsService creates a stats service.
func NewRouteStatsService(routes ports.RouteRepository) *RouteStatsService {
	return &RouteStatsService{routes: routes}
}

// DistancesByAnalyticCode sums route distances per analytic code, grouped
// by the requested period. from and to are inclusive date bounds; either
// may be nil.
func (s *RouteStatsService) DistancesByAnalyticCode(
	ctx context.Context,
	from, to *time.Time,
	groupBy GroupBy,
) ([]DistanceStatItem, error) {
	var until *time.Time
	if to != nil {
		// Inclusive "to" date becomes an exclusive next-day bound.
		u := to.AddDate(0, 0, 1)
		until = &u
	}

	routes, err := s.routes.ListCreatedBetween(ctx, from, until)
	if err != nil {
		return nil, err
	}

	type bucketKey struct {
		code  string
		group string
	}
	type bucket struct {
		total float64
		first time.Time
		last  time.Time
	}

	buckets := make(map[bucketKey]*bucket)
	for _, route := range routes {
		key := bucketKey{code: route.AnalyticCode}
		if layout := groupBy.layout(); layout != "" {
			key.group = route.CreatedAt.Format(layout)
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{first: route.CreatedAt, last: route.CreatedAt}
			buckets[key] = b
		}
		b.total += route.DistanceKm
		if route.CreatedAt.Before(b.first) {
			b.first = route.CreatedAt
		}
		if route.CreatedAt.After(b.last) {
			b.last = route.CreatedAt
		}
	}

	items := make([]DistanceStatItem, 0, len(buckets))
	for key, b := range buckets {
		items = append(items, DistanceStatItem{
			AnalyticCode:    key.code,
			TotalDistanceKm: math.Round(b.total*100) / 100,
			PeriodStart:     b.first.Format("2006-01-02"),
			PeriodEnd:       b.last.Format("2006-01-02"),
			Group:           key.group,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].AnalyticCode != items[j].AnalyticCode {
			return items[i].AnalyticCode < items[j].AnalyticCode
		}
		return items[i].Group < items[j].Group
	})

	return items, nil
}
