package mem

import (
	"sync"

	"voya/internal/models/db_models"
)

// TikTokCollection holds extracted TikTok activities per user for the life
// of the process.
type TikTokCollection struct {
	mu    sync.RWMutex
	items map[string][]db_models.TikTokActivity
}

func NewTikTokCollection() *TikTokCollection {
	return &TikTokCollection{items: make(map[string][]db_models.TikTokActivity)}
}

func (c *TikTokCollection) Append(user string, activity db_models.TikTokActivity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[user] = append(c.items[user], activity)
}

// List returns a copy of the user's activities in insertion order.
func (c *TikTokCollection) List(user string) []db_models.TikTokActivity {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]db_models.TikTokActivity, len(c.items[user]))
	copy(out, c.items[user])
	return out
}
