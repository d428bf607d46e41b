// Package nodes scores RPC endpoints by their recent behavior and picks the
// healthiest one for each outbound request.
package nodes

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// Scoring constants. An endpoint's weight blends its error rate, its average
// response time against the worst tolerable one, and how loaded it has been
// inside the stats window.
const (
	maxAvgResponseTime = 8000 * time.Millisecond
	maxWindowRequests  = 100

	errorRateShare    = 0.4
	responseTimeShare = 0.3
	loadShare         = 0.3
)

// StatsStore persists per-endpoint request statistics.
type StatsStore interface {
	Get(url string) (model.NodeStats, error)
	Put(url string, stats model.NodeStats) error
}

// Selector picks the best endpoint from a fixed URL list using stored stats.
type Selector struct {
	store  StatsStore
	urls   []string
	logger *zap.Logger

	randFloat func() float64
}

func NewSelector(store StatsStore, urls []string, logger *zap.Logger) (*Selector, error) {
	if store == nil {
		return nil, errors.New("stats store is required")
	}
	if len(urls) == 0 {
		return nil, errors.New("at least one endpoint url is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Selector{
		store:     store,
		urls:      urls,
		logger:    logger.Named("node-selector"),
		randFloat: rand.Float64,
	}, nil
}

// BestURL returns the endpoint with the highest current weight. Endpoints
// with no recorded traffic get the full default weight, and ties are broken
// by sampling the tied candidates' weights.
func (s *Selector) BestURL() (string, error) {
	best := -1.0
	var candidates []string
	var weights []float64

	for _, url := range s.urls {
		stats, err := s.store.Get(url)
		if err != nil {
			return "", err
		}
		weight := stats.Weight
		if stats.TotalRequests == 0 {
			weight = 1
		}
		switch {
		case weight > best:
			best = weight
			candidates = candidates[:0]
			weights = weights[:0]
			candidates = append(candidates, url)
			weights = append(weights, weight)
		case weight == best:
			candidates = append(candidates, url)
			weights = append(weights, weight)
		}
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return candidates[s.pick(weights)], nil
}

// pick samples an index from the cumulative distribution of weights. All-zero
// weights degrade to a uniform choice.
func (s *Selector) pick(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return int(s.randFloat() * float64(len(weights)))
	}
	target := s.randFloat() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// RecordRequest folds one request outcome into the endpoint's stats. Stats
// are advisory; storage failures are logged and swallowed so they never fail
// the request that produced them.
func (s *Selector) RecordRequest(url string, elapsed time.Duration, failed bool) {
	stats, err := s.store.Get(url)
	if err != nil {
		s.logger.Warn("read node stats failed", zap.String("url", url), zap.Error(err))
		return
	}

	stats.TotalRequests++
	if failed {
		stats.Errors++
	}
	stats.TotalResponseTime += elapsed.Milliseconds()
	stats.AvgResponseTime = float64(stats.TotalResponseTime) / float64(stats.TotalRequests)
	stats.AvgErrors = float64(stats.Errors) / float64(stats.TotalRequests)
	stats.Weight = weigh(stats)

	if err := s.store.Put(url, stats); err != nil {
		s.logger.Warn("write node stats failed", zap.String("url", url), zap.Error(err))
	}
}

func weigh(stats model.NodeStats) float64 {
	errScore := clamp01(1 - stats.AvgErrors)
	rtScore := clamp01(1 - stats.AvgResponseTime/float64(maxAvgResponseTime.Milliseconds()))
	loadScore := clamp01(1 - float64(stats.TotalRequests)/maxWindowRequests)
	return errScore*errorRateShare + rtScore*responseTimeShare + loadScore*loadShare
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
