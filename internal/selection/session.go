// Package selection implements the ordered, role-tagged selection set
// assembled before each composite feature operation.
//
// The external engine's selection state is ambient and persists across
// unrelated commands, so every assembly must begin with an explicit Clear;
// a forgotten clear leaks the previous command's selection into the next
// and produces silently wrong role assignments. Entries are replayed
// strictly in Add order — for operations where the engine infers meaning
// purely from order (loft profile order), callers pass locators in the
// exact desired order.
package selection

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/locator"
)

// Entry is one role-tagged pick in the session.
type Entry struct {
	Locator locator.Locator
	Mark    engine.Mark
	Append  bool
}

// Session accumulates and replays picks against one document. A Session
// is single-use per composite operation: Clear, a series of Adds, then
// the feature call.
type Session struct {
	doc     engine.Document
	entries []Entry
	log     *zap.Logger
}

// New returns an empty session bound to doc.
func New(doc engine.Document, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{doc: doc, log: log}
}

// Clear unconditionally empties the engine's ambient selection and this
// session's entry list. Call it before assembling a composite selection.
func (s *Session) Clear() error {
	s.entries = s.entries[:0]
	return s.doc.ClearSelection()
}

// Add resolves loc and replays it against the engine with the given role
// tag and append flag. Each locator is resolved at most once; a resolution
// failure is terminal for the command. On failure the engine's partial
// selection is cleared before the fault is surfaced, so the next command
// never sees a stale partial selection; the entry list keeps the
// successful adds for diagnostics.
func (s *Session) Add(loc locator.Locator, mark engine.Mark, appendSel bool) error {
	if err := loc.Resolve(s.doc, mark, appendSel); err != nil {
		s.log.Warn("selection add failed",
			zap.String("locator", loc.String()),
			zap.Int("mark", int(mark)),
			zap.Int("added", len(s.entries)),
			zap.Error(err))
		if clearErr := s.doc.ClearSelection(); clearErr != nil {
			// The pick fault carries the context the agent corrects from;
			// a failed cleanup must not displace it.
			return fmt.Errorf("%w (selection cleanup also failed: %v)", err, clearErr)
		}
		return err
	}
	s.entries = append(s.entries, Entry{Locator: loc, Mark: mark, Append: appendSel})
	return nil
}

// AddAll adds a sequence of same-role locators, appending after the first
// when appendFirst is false. This is the common shape for multi-entity
// roles (fillet edges, loft profiles, pattern seeds).
func (s *Session) AddAll(locs []locator.Locator, mark engine.Mark, appendFirst bool) error {
	for i, loc := range locs {
		if err := s.Add(loc, mark, appendFirst || i > 0); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of entries successfully added so far. Callers
// validate operation minimums against it before the feature call.
func (s *Session) Count() int { return len(s.entries) }
