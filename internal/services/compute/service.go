// Package compute runs aggregation passes off the UI goroutine.
package compute

import (
	"sync/atomic"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/aggregate"
	"github.com/a-mhatre/studylog-tui/internal/models"
)

// Result is one finished aggregation pass.
type Result struct {
	Token    uint64
	Interval models.Interval
	Bundle   *models.ComputedBundle
	Rollups  []models.BookRollup
	Totals   models.Totals
}

// Service computes bundles and rollups asynchronously. Each request gets a
// monotonically increasing token; a pass whose token is no longer the latest
// when it finishes is dropped, so a slow pass over an old snapshot can never
// overwrite the result of a newer one.
type Service struct {
	cache      *aggregate.Cache
	token      atomic.Uint64
	resultChan chan Result
}

// New creates a compute service with an empty memoization cache.
func New() *Service {
	return &Service{
		cache:      aggregate.NewCache(),
		resultChan: make(chan Result, 16),
	}
}

// Results returns the channel finished passes are delivered on.
func (s *Service) Results() <-chan Result {
	return s.resultChan
}

// Request schedules an aggregation pass and returns its token. The pass runs
// on its own goroutine; repeated requests for an unchanged dataset are served
// from the memoization cache.
func (s *Service) Request(
	sheet *models.Sheet,
	master map[string]models.BookMaster,
	interval models.Interval,
	now time.Time,
) uint64 {
	token := s.token.Add(1)
	go s.run(token, sheet, master, interval, now)
	return token
}

// run executes one pass and delivers it unless a newer request superseded it.
func (s *Service) run(
	token uint64,
	sheet *models.Sheet,
	master map[string]models.BookMaster,
	interval models.Interval,
	now time.Time,
) {
	bundle := s.cache.Bundle(sheet, interval, now)
	rollups := s.cache.Rollups(sheet, master)

	if s.token.Load() != token {
		return
	}

	s.deliver(Result{
		Token:    token,
		Interval: interval,
		Bundle:   bundle,
		Rollups:  rollups,
		Totals:   aggregate.ComputeTotals(rollups),
	})
}

// Latest reports whether a token still belongs to the most recent request.
func (s *Service) Latest(token uint64) bool {
	return s.token.Load() == token
}

// deliver sends a result without blocking, dropping the oldest queued result
// when the channel is full.
func (s *Service) deliver(result Result) {
	select {
	case s.resultChan <- result:
	default:
		select {
		case <-s.resultChan:
		default:
		}
		select {
		case s.resultChan <- result:
		default:
		}
	}
}
