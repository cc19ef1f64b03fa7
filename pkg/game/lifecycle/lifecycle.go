// Package lifecycle drives per-room runtime state: lock-on-entry, wave
// spawning handoff and unlock-on-clear, as an explicit state machine stepped
// by discrete ticks.
package lifecycle

import (
	"go.uber.org/zap"

	"darkdepths/pkg/engine/dungeon"
	"darkdepths/pkg/game/layout"
)

// Phase is a room's position in the encounter state machine.
type Phase int

// Room phases, in the order a fight room moves through them.
const (
	PhaseIdle Phase = iota
	PhaseLocking
	PhaseSpawningWave
	PhaseAwaitingClear
	PhaseUnlocked
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseLocking:
		return "Locking"
	case PhaseSpawningWave:
		return "SpawningWave"
	case PhaseAwaitingClear:
		return "AwaitingClear"
	case PhaseUnlocked:
		return "Unlocked"
	default:
		return "Unknown"
	}
}

// Policy is the per-category behavior table: what happens when the player
// first enters a room of that category.
type Policy struct {
	// LockOnEntry locks the doors when the player first enters.
	LockOnEntry bool
	// SpawnWaves requests an encounter wave after locking.
	SpawnWaves bool
	// AutoClear marks the room cleared on entry without a fight.
	AutoClear bool
}

// PolicyFor returns the behavior policy for a room category.
func PolicyFor(c dungeon.Category) Policy {
	switch c {
	case dungeon.CategoryNormal, dungeon.CategoryBoss:
		return Policy{LockOnEntry: true, SpawnWaves: true}
	default:
		return Policy{AutoClear: true}
	}
}

// controller holds one room's machine state.
type controller struct {
	room         *dungeon.Room
	policy       Policy
	phase        Phase
	playerInRoom bool
}

// Supervisor owns a controller per room of one layout and dispatches
// entry/exit/clear events into the state machines. All methods are meant to
// be called from the host engine's frame loop; none of them re-run
// generation.
type Supervisor struct {
	layout *layout.Layout
	log    *zap.Logger

	controllers map[dungeon.Coord]*controller

	onSpawn   []func(*dungeon.Room)
	onCleared []func(*dungeon.Room)
}

// NewSupervisor builds the controllers for every room of the layout.
func NewSupervisor(l *layout.Layout, log *zap.Logger) *Supervisor {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Supervisor{
		layout:      l,
		log:         log,
		controllers: make(map[dungeon.Coord]*controller),
	}
	for _, r := range l.AllRooms() {
		s.controllers[r.Coord] = &controller{
			room:   r,
			policy: PolicyFor(r.Category),
			phase:  PhaseIdle,
		}
	}
	return s
}

// OnSpawnWave registers an encounter collaborator called when a room wants
// a hostile wave.
func (s *Supervisor) OnSpawnWave(fn func(*dungeon.Room)) {
	s.onSpawn = append(s.onSpawn, fn)
}

// OnRoomCleared registers a collaborator called after a room is cleared and
// unlocked.
func (s *Supervisor) OnRoomCleared(fn func(*dungeon.Room)) {
	s.onCleared = append(s.onCleared, fn)
}

// PhaseOf returns the current phase of a room's controller.
func (s *Supervisor) PhaseOf(r *dungeon.Room) Phase {
	if c := s.controller(r); c != nil {
		return c.phase
	}
	return PhaseIdle
}

func (s *Supervisor) controller(r *dungeon.Room) *controller {
	if r == nil {
		return nil
	}
	return s.controllers[r.Coord]
}

// OnPlayerEntered starts the room's encounter sequence. Re-entering a room
// the player is already in, or one that was already cleared, is a no-op.
func (s *Supervisor) OnPlayerEntered(r *dungeon.Room) {
	c := s.controller(r)
	if c == nil || c.playerInRoom {
		return
	}
	c.playerInRoom = true

	if c.room.Cleared || c.phase != PhaseIdle {
		return
	}

	if c.policy.AutoClear {
		c.room.Cleared = true
		c.phase = PhaseUnlocked
		s.fireCleared(c.room)
		return
	}
	if c.policy.LockOnEntry {
		c.phase = PhaseLocking
		s.log.Debug("room entered, locking",
			zap.Int("row", r.Coord.Row),
			zap.Int("col", r.Coord.Col),
			zap.String("category", r.Category.String()))
	}
}

// OnPlayerExited records that the player left the room. The encounter
// machine keeps running; only the presence flag resets.
func (s *Supervisor) OnPlayerExited(r *dungeon.Room) {
	if c := s.controller(r); c != nil {
		c.playerInRoom = false
	}
}

// MarkCleared is called by the combat collaborator once a room's hostile
// count reaches zero. The room unlocks immediately; calling it again is a
// no-op.
func (s *Supervisor) MarkCleared(r *dungeon.Room) {
	c := s.controller(r)
	if c == nil || c.room.Cleared {
		return
	}
	c.room.Cleared = true
	s.unlock(c)
}

// Tick advances every controller one discrete step.
func (s *Supervisor) Tick() {
	for _, r := range s.layout.AllRooms() {
		s.tickRoom(s.controllers[r.Coord])
	}
}

func (s *Supervisor) tickRoom(c *controller) {
	if c == nil {
		return
	}
	switch c.phase {
	case PhaseLocking:
		c.room.Locked = true
		if layer := s.layout.Layer(); layer != nil {
			p := s.layout.Params()
			layer.LockRoom(c.room, p.InteriorWidth, p.InteriorHeight)
		}
		if c.policy.SpawnWaves {
			c.phase = PhaseSpawningWave
		} else {
			c.phase = PhaseAwaitingClear
		}
	case PhaseSpawningWave:
		for _, fn := range s.onSpawn {
			fn(c.room)
		}
		c.phase = PhaseAwaitingClear
	}
}

// unlock restores the room's door tiles and finishes its machine.
func (s *Supervisor) unlock(c *controller) {
	c.room.Locked = false
	if layer := s.layout.Layer(); layer != nil {
		p := s.layout.Params()
		layer.UnlockRoom(c.room, p.InteriorWidth, p.InteriorHeight)
	}
	c.phase = PhaseUnlocked
	s.log.Debug("room cleared, unlocked",
		zap.Int("row", c.room.Coord.Row),
		zap.Int("col", c.room.Coord.Col))
	s.fireCleared(c.room)
}

func (s *Supervisor) fireCleared(r *dungeon.Room) {
	for _, fn := range s.onCleared {
		fn(r)
	}
}
