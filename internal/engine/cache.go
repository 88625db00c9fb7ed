package engine

import (
	"sync"

	"github.com/lk16/cubello/internal/models"
)

// cacheKey identifies a decision. Boards are comparable values.
type cacheKey struct {
	board  models.Board
	player models.Player
}

// Cache implements a simple cache for decisions. Once full, new decisions are not stored.
type Cache struct {
	// data stores the underlying map
	data map[cacheKey]Decision

	// maxSize is the maximum number of stored decisions
	maxSize int

	// dataMutex protects data
	dataMutex sync.Mutex
}

// NewCache creates a new cache that holds at most maxSize decisions.
func NewCache(maxSize int) *Cache {
	return &Cache{
		data:    make(map[cacheKey]Decision),
		maxSize: maxSize,
	}
}

// Upsert will add or update an entry in the cache if there is room for it.
func (c *Cache) Upsert(board models.Board, player models.Player, decision Decision) {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	key := cacheKey{board: board, player: player}

	if _, ok := c.data[key]; !ok && len(c.data) >= c.maxSize {
		return
	}

	c.data[key] = decision
}

// Lookup looks up the decision for player on board.
func (c *Cache) Lookup(board models.Board, player models.Player) (Decision, bool) {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	decision, ok := c.data[cacheKey{board: board, player: player}]
	return decision, ok
}

// Len returns the number of items in the cache.
func (c *Cache) Len() int {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	return len(c.data)
}
