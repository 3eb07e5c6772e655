package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/eventtools/internal/dice Roller

// Roller draws the random numbers used by guess rounds and team shuffles
type Roller interface {
	// Roll returns a uniformly random integer in [1, sides]
	Roll(sides int) int

	// Shuffle randomizes the order of n elements using swap
	Shuffle(n int, swap func(i, j int))
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// roller is safe for concurrent use; rand.Rand is not
type roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random number between 1 and sides
func (r *roller) Roll(sides int) int {
	if sides < 1 {
		sides = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}

// Shuffle randomizes the order of n elements
func (r *roller) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.random.Shuffle(n, swap)
}
