// Package lock provides the seat lock backends selectable per booking
// request through the "strategy" field.
package lock

import (
	"fmt"
	"sort"
	"strings"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/ports"
)

const (
	StrategyRedis    = "REDIS"
	StrategyDatabase = "DATABASE"
	StrategyLocal    = "LOCAL"
)

var knownStrategies = map[string]bool{
	StrategyRedis:    true,
	StrategyDatabase: true,
	StrategyLocal:    true,
}

type Registry struct {
	lockers         map[string]ports.SeatLocker
	defaultStrategy string
}

func NewRegistry(defaultStrategy string) *Registry {
	return &Registry{
		lockers:         make(map[string]ports.SeatLocker),
		defaultStrategy: normalize(defaultStrategy),
	}
}

// Register must be called before the registry is shared between goroutines.
func (r *Registry) Register(strategy string, locker ports.SeatLocker) {
	r.lockers[normalize(strategy)] = locker
}

// Resolve maps a request's strategy to its locker. An empty name means the
// default. Names outside REDIS, DATABASE and LOCAL fail with
// ErrUnknownStrategy; a known name without a backend on this instance fails
// with ErrStrategyDisabled.
func (r *Registry) Resolve(strategy string) (string, ports.SeatLocker, error) {
	name := normalize(strategy)
	if name == "" {
		name = r.defaultStrategy
	}

	locker, ok := r.lockers[name]
	if !ok {
		available := strings.Join(r.Strategies(), ", ")
		if knownStrategies[name] {
			return "", nil, fmt.Errorf("%w: %s (available: %s)", domain.ErrStrategyDisabled, name, available)
		}
		return "", nil, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownStrategy, strategy, available)
	}

	return name, locker, nil
}

func (r *Registry) Default() string {
	return r.defaultStrategy
}

// SetDefault switches the strategy used when a request names none.
func (r *Registry) SetDefault(strategy string) {
	r.defaultStrategy = normalize(strategy)
}

func (r *Registry) Strategies() []string {
	names := make([]string, 0, len(r.lockers))
	for name := range r.lockers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func normalize(strategy string) string {
	return strings.ToUpper(strings.TrimSpace(strategy))
}
