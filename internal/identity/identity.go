// Package identity recovers sketch and feature identity when the caller
// does not supply it explicitly.
//
// The session remembers the name of the sketch it believes is active, but
// some engine operations silently invalidate that memory (exiting sketch
// edit mode may or may not finalize under the expected name). The reverse
// scan of the feature history is the authoritative source of truth when in
// doubt, and callers re-verify remembered identity against it after any
// operation that toggles sketch edit mode.
package identity

import (
	"fmt"

	"github.com/parametriclabs/swmcp/internal/engine"
)

// ProfileTypeName is the feature-history type tag marking a 2D profile
// container (a sketch).
const ProfileTypeName = "ProfileFeature"

// FallbackSketchName is returned when neither session memory nor the
// feature history yields a sketch: the engine names the first sketch of a
// document this way.
const FallbackSketchName = "Sketch1"

// State is the session-owned sketch identity: how many sketches this
// session has opened in the current document, and the name it believes
// the active sketch has. Both reset when a new document is created.
type State struct {
	Ordinal    int
	Remembered string
}

// NextOrdinalName advances the ordinal counter and returns the name the
// engine will assign the sketch being opened. Used only when creating a
// brand-new session-owned sketch.
func (s *State) NextOrdinalName() string {
	s.Ordinal++
	return fmt.Sprintf("Sketch%d", s.Ordinal)
}

// ResetDocument clears identity state for a fresh document.
func (s *State) ResetDocument() {
	s.Ordinal = 0
	s.Remembered = ""
}

// Resolver determines "the current sketch" from session memory with a
// feature-history fallback.
type Resolver struct {
	state *State
}

// NewResolver returns a resolver over the given session state.
func NewResolver(state *State) *Resolver { return &Resolver{state: state} }

// CurrentSketchName returns the active sketch's name. Preference order:
// the session-remembered name; else the newest profile container in the
// feature history; else the fixed fallback for ordinal 1.
func (r *Resolver) CurrentSketchName(doc engine.Document) string {
	if r.state.Remembered != "" {
		return r.state.Remembered
	}
	if name, ok := LatestProfile(doc); ok {
		return name
	}
	return FallbackSketchName
}

// Reverify re-checks the remembered name against the reverse scan and
// corrects it when they disagree. Called after operations that toggle
// sketch edit mode. Returns the (possibly corrected) name.
func (r *Resolver) Reverify(doc engine.Document) string {
	name, ok := LatestProfile(doc)
	if !ok {
		// Nothing in the history to trust more than memory.
		if r.state.Remembered != "" {
			return r.state.Remembered
		}
		return FallbackSketchName
	}
	r.state.Remembered = name
	return name
}

// LatestProfile scans the feature history in reverse creation order and
// returns the name of the newest profile container. A history read
// failure reports not-found rather than guessing.
func LatestProfile(doc engine.Document) (string, bool) {
	features, err := doc.Features()
	if err != nil {
		return "", false
	}
	for i := len(features) - 1; i >= 0; i-- {
		if features[i].TypeName == ProfileTypeName {
			return features[i].Name, true
		}
	}
	return "", false
}
