package generator

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vanshika/herograph/backend/internal/domain"
)

// DisplayDecorator fills the presentation-only fields of overlay nodes with
// seeded pseudo-random values. The values carry no meaning; a fixed seed makes
// responses reproducible.
type DisplayDecorator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewDisplayDecorator returns a decorator seeded with seed, or with the clock
// when seed is zero.
func NewDisplayDecorator(seed int64) *DisplayDecorator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DisplayDecorator{rand: rand.New(rand.NewSource(seed))}
}

// Decorate sets ScreenTime to degree*15 plus 10..50, FirstAppearance to a year
// in 2008..2023 and Alignment to "hero".
func (d *DisplayDecorator) Decorate(node *domain.OverlayNode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	node.ScreenTime = node.Degree*15 + 10 + d.rand.Intn(41)
	node.FirstAppearance = 2008 + d.rand.Intn(16)
	node.Alignment = "hero"
}
