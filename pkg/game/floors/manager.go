// Package floors owns floor transitions: one live layout at a time, torn
// down before the next is generated, with the floor index persisted across
// sessions.
package floors

import (
	"fmt"

	"go.uber.org/zap"

	"darkdepths/pkg/engine/tiles"
	"darkdepths/pkg/game/layout"
	"darkdepths/pkg/persistence"
)

// Manager holds the live layout for the current floor.
type Manager struct {
	params layout.Params
	layer  *tiles.Layer
	store  persistence.Storage
	log    *zap.Logger

	current *layout.Layout
	floor   int
	seed    int64
}

// NewManager creates a floor manager. The store may be nil for ephemeral
// runs; with a store attached, the previously saved floor index is restored.
func NewManager(params layout.Params, layer *tiles.Layer, store persistence.Storage, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		params: params,
		layer:  layer,
		store:  store,
		log:    log,
	}
	if store != nil {
		progress, err := store.LoadProgress()
		if err != nil {
			log.Warn("could not restore progress, starting at floor 0", zap.Error(err))
		} else {
			m.floor = progress.Floor
			m.seed = progress.Seed
			log.Info("restored progress", zap.Int("floor", progress.Floor))
		}
	}
	return m
}

// Current returns the live layout, or nil before the first generation.
func (m *Manager) Current() *layout.Layout {
	return m.current
}

// Floor returns the current floor index.
func (m *Manager) Floor() int {
	return m.floor
}

// Seed returns the seed of the live layout.
func (m *Manager) Seed() int64 {
	return m.seed
}

// Generate tears down the previous layout and builds a new one for the
// current floor from the given seed.
func (m *Manager) Generate(seed int64) (*layout.Layout, error) {
	m.Clear()

	l, err := layout.Generate(m.params, seed, m.layer, m.log)
	if err != nil {
		return nil, fmt.Errorf("generate floor %d: %w", m.floor, err)
	}
	m.current = l
	m.seed = seed
	m.saveProgress()
	return l, nil
}

// Advance moves to the next floor and generates it.
func (m *Manager) Advance(seed int64) (*layout.Layout, error) {
	m.floor++
	return m.Generate(seed)
}

// Clear tears down the live layout, removing its tiles from the shared
// layer. Safe to call with no layout live.
func (m *Manager) Clear() {
	if m.current == nil {
		return
	}
	m.current.Clear()
	m.current = nil
	m.log.Debug("cleared previous layout", zap.Int("floor", m.floor))
}

func (m *Manager) saveProgress() {
	if m.store == nil {
		return
	}
	err := m.store.SaveProgress(persistence.Progress{Floor: m.floor, Seed: m.seed})
	if err != nil {
		m.log.Warn("could not save progress", zap.Error(err))
	}
}
