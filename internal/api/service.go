package api

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/xtding233/legend-sim/internal/climb"
	"github.com/xtding233/legend-sim/internal/config"
)

// MaxRuns bounds the climbs one request may ask for.
const MaxRuns = 10000

var (
	ErrInvalidWinRate    = errors.New("invalid win_rate; must be 0..1")
	ErrInvalidRuns       = errors.New("invalid runs; must be 1..10000")
	ErrInvalidStartStars = errors.New("invalid start_stars; must be >= 0")
)

// Request asks for one batch of climbs. Unset fields use the current settings.
type Request struct {
	WinRate    float64
	Runs       int
	StartStars *int
	Seed       *uint64
}

type Result struct {
	RequestID string  `json:"request_id"`
	WinRate   float64 `json:"win_rate"`
	Runs      int     `json:"runs"`
	Mean      float64 `json:"mean"`
	Games     int     `json:"games"` // mean rounded up
	Capped    int     `json:"capped"`
	Err       string  `json:"err,omitempty"`
}

// Service runs simulations against settings that may be swapped at runtime.
type Service struct {
	mu       sync.RWMutex
	settings config.Settings
}

func NewService(s config.Settings) *Service {
	return &Service{settings: s}
}

func (s *Service) Settings() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings used by later requests.
func (s *Service) Update(cfg config.Settings) {
	s.mu.Lock()
	s.settings = cfg
	s.mu.Unlock()
}

func validateWinRate(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidWinRate
	}
	if p < 0 || p > 1 {
		return ErrInvalidWinRate
	}
	return nil
}

// isBadRequest reports whether err was caused by the caller's input.
func isBadRequest(err error) bool {
	return errors.Is(err, ErrInvalidWinRate) ||
		errors.Is(err, ErrInvalidRuns) ||
		errors.Is(err, ErrInvalidStartStars)
}

// Simulate runs one batch and tags it with a request id.
func (s *Service) Simulate(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := validateWinRate(req.WinRate); err != nil {
		return Result{}, err
	}

	cur := s.Settings()
	runs := req.Runs
	if runs == 0 {
		runs = cur.Runs
	}
	if runs < 1 || runs > MaxRuns {
		return Result{}, ErrInvalidRuns
	}
	params := cur.Params
	if req.StartStars != nil {
		if *req.StartStars < 0 {
			return Result{}, ErrInvalidStartStars
		}
		params.StartStars = *req.StartStars
	}
	if req.Seed != nil {
		cur.Seed = req.Seed
	}

	id := uuid.NewString()
	sum, err := climb.RunMonteCarloContext(ctx, runs, req.WinRate, params, cur.RNG())
	if err != nil {
		log.Printf("simulate %s: %v", id, err)
		return Result{}, err
	}
	log.Printf("simulate %s: win_rate=%g runs=%d mean=%.2f capped=%d", id, req.WinRate, runs, sum.Mean, sum.Capped)

	return Result{
		RequestID: id,
		WinRate:   req.WinRate,
		Runs:      sum.Runs,
		Mean:      sum.Mean,
		Games:     int(math.Ceil(sum.Mean)),
		Capped:    sum.Capped,
	}, nil
}
