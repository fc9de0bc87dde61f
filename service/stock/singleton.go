package stock

import (
	"sync"

	"gorm.io/gorm"
)

var (
	enginesMu sync.Mutex
	engines   = make(map[*gorm.DB]*Engine)
)

// GetEngine returns the engine bound to a DB handle, creating it on
// first use. All API modules sharing one handle share one engine, so
// the per-item locks actually serialize across them.
func GetEngine(db *gorm.DB) (*Engine, error) {
	enginesMu.Lock()
	defer enginesMu.Unlock()
	if e, ok := engines[db]; ok {
		return e, nil
	}
	e, err := NewEngine(db)
	if err != nil {
		return nil, err
	}
	engines[db] = e
	return e, nil
}
