// Package persistence stores run progress between sessions. The only state
// the dungeon keeps across restarts is the current floor index and the seed
// it was generated from.
package persistence

// Progress is the persisted run state.
type Progress struct {
	Floor int   `json:"floor"`
	Seed  int64 `json:"seed"`
}

// Storage defines the interface for progress persistence
type Storage interface {
	SaveProgress(p Progress) error
	LoadProgress() (Progress, error)
	Close() error
}
