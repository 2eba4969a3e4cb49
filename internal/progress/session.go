// Package progress owns a player's session: the current level, the
// parameters of every visited level and the set of solved levels. State is
// read from a Backend when the session starts or changes level and written
// back after every change.
package progress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/affine-affinity/internal/affine"
)

// ErrLevelNotFound is returned for levels outside 1..affine.LevelCount.
var ErrLevelNotFound = errors.New("progress: level not found")

// Backend is a string key-value store scoped to one player.
type Backend interface {
	// Get returns the stored value; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Session is the state of one player. It is not safe for concurrent use;
// each host owns its sessions.
type Session struct {
	backend Backend
	logger  *log.Logger

	level  int
	params affine.Params
	values map[int]affine.Params
	solved map[int]bool
}

// NewSession creates a session positioned on level and loads persisted
// progress. A nil backend keeps everything in memory; a nil logger discards.
func NewSession(ctx context.Context, backend Backend, logger *log.Logger, level int) (*Session, error) {
	if !affine.ValidLevel(level) {
		return nil, fmt.Errorf("%w: %d", ErrLevelNotFound, level)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		backend: backend,
		logger:  logger,
		level:   level,
	}
	if err := s.Load(ctx); err != nil {
		logger.Warn("progress loaded but not saved", "error", err)
	}
	return s, nil
}

// Load reads the solved set and the stored parameters from the backend,
// replacing in-memory state. Read failures fall back to defaults. When the
// stored parameters already match the target of a level missing from the
// solved set, the mark is written back; a failed write is returned.
func (s *Session) Load(ctx context.Context) error {
	s.solved = make(map[int]bool)
	s.values = make(map[int]affine.Params)

	if raw, ok := s.read(ctx, KeySolvedLevels); ok {
		levels, err := DecodeSolved(raw)
		if err != nil {
			s.logger.Warn("ignoring corrupted solved levels", "error", err)
		}
		for _, lv := range levels {
			s.solved[lv] = true
		}
	}

	if raw, ok := s.read(ctx, KeyValues); ok {
		values, err := DecodeValues(raw)
		if err != nil {
			s.logger.Warn("ignoring corrupted level values", "error", err)
		}
		for lv, p := range values {
			s.values[lv] = p
		}
	}

	s.params = s.storedParams(s.level)
	err := s.markSolved(ctx)
	s.logger.Debug("session loaded", "level", s.level, "solved", len(s.solved))
	return err
}

func (s *Session) read(ctx context.Context, key string) (string, bool) {
	if s.backend == nil {
		return "", false
	}
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cannot read progress", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}

func (s *Session) storedParams(level int) affine.Params {
	if p, ok := s.values[level]; ok {
		return p
	}
	return affine.DefaultParams()
}

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// Params returns the parameters of the current level.
func (s *Session) Params() affine.Params { return s.params }

// ParamsFor returns the stored parameters of level, or the identity set.
func (s *Session) ParamsFor(level int) affine.Params {
	if level == s.level {
		return s.params
	}
	return s.storedParams(level)
}

// Solved reports whether level is in the solved set.
func (s *Session) Solved(level int) bool { return s.solved[level] }

// SolvedLevels returns the solved set in ascending order.
func (s *Session) SolvedLevels() []int {
	levels := make([]int, 0, len(s.solved))
	for lv := range s.solved {
		levels = append(levels, lv)
	}
	slices.Sort(levels)
	return levels
}

// AllSolved reports whether every level has been solved.
func (s *Session) AllSolved() bool {
	return len(s.solved) == affine.LevelCount
}

// CurrentSolved reports whether the current parameters solve the level.
func (s *Session) CurrentSolved() bool {
	return affine.IsSolved(s.level, s.params)
}

// CanAdvance reports whether Advance would move to another level.
func (s *Session) CanAdvance() bool {
	return s.CurrentSolved() && !affine.IsTerminal(s.level)
}

// SetParam updates one field of the current level and persists it.
func (s *Session) SetParam(ctx context.Context, f affine.Field, v float64) error {
	return s.SetParams(ctx, f.Set(s.params, v))
}

// SetParams replaces the parameters of the current level and persists them.
// Values are clamped to their slider ranges.
func (s *Session) SetParams(ctx context.Context, p affine.Params) error {
	s.params = p.Clamped()
	return s.save(ctx)
}

// ResetLevel puts the current level back to the identity parameters.
// The solved set is left alone.
func (s *Session) ResetLevel(ctx context.Context) error {
	return s.SetParams(ctx, affine.DefaultParams())
}

// GoTo saves the current level and switches to level.
func (s *Session) GoTo(ctx context.Context, level int) error {
	if !affine.ValidLevel(level) {
		return fmt.Errorf("%w: %d", ErrLevelNotFound, level)
	}
	if level == s.level {
		return nil
	}
	err := s.save(ctx)
	s.level = level
	s.params = s.storedParams(level)
	if markErr := s.markSolved(ctx); markErr != nil && err == nil {
		err = markErr
	}
	return err
}

// Prev moves one level back; it does nothing on the first level.
func (s *Session) Prev(ctx context.Context) error {
	if s.level <= 1 {
		return nil
	}
	return s.GoTo(ctx, s.level-1)
}

// Next moves one level forward; it does nothing on the last level.
func (s *Session) Next(ctx context.Context) error {
	if s.level >= affine.LevelCount {
		return nil
	}
	return s.GoTo(ctx, s.level+1)
}

// Advance follows the level's NextLevel link once it is solved.
// It reports whether the session moved.
func (s *Session) Advance(ctx context.Context) (bool, error) {
	if !s.CanAdvance() {
		return false, nil
	}
	target, _ := affine.TargetFor(s.level)
	return true, s.GoTo(ctx, target.NextLevel)
}

// ResetAll forgets every solved level and stored parameter set.
func (s *Session) ResetAll(ctx context.Context) error {
	s.solved = make(map[int]bool)
	s.values = make(map[int]affine.Params)
	s.params = affine.DefaultParams()
	s.logger.Info("progress reset")

	if s.backend == nil {
		return nil
	}
	var errs []error
	for _, key := range []string{KeySolvedLevels, KeyValues} {
		if err := s.backend.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("progress: cannot delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// save stores the current parameters and marks the level solved if they match.
func (s *Session) save(ctx context.Context) error {
	s.values[s.level] = s.params
	var errs []error
	if s.backend != nil {
		if err := s.backend.Set(ctx, KeyValues, EncodeValues(s.values)); err != nil {
			s.logger.Warn("cannot save level values", "level", s.level, "error", err)
			errs = append(errs, fmt.Errorf("progress: cannot save values: %w", err))
		}
	}
	if err := s.markSolved(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// markSolved adds the current level to the solved set when its parameters
// match the target. Solved marks are never removed by later edits.
func (s *Session) markSolved(ctx context.Context) error {
	if s.solved[s.level] || !s.CurrentSolved() {
		return nil
	}
	s.solved[s.level] = true
	s.logger.Info("level solved", "level", s.level)

	if s.backend == nil {
		return nil
	}
	if err := s.backend.Set(ctx, KeySolvedLevels, EncodeSolved(s.SolvedLevels())); err != nil {
		return fmt.Errorf("progress: cannot save solved levels: %w", err)
	}
	return nil
}
