// Package faults defines the recoverable error taxonomy of the command
// protocol. Every fault carries enough context (requested kind, point,
// name) for the upstream agent to retry with corrected input. Faults are
// detected at the lowest layer that can distinguish them and bubble up
// unmodified; no layer retries or widens tolerance.
package faults

import (
	"fmt"
	"strings"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/geom"
)

// Code classifies a recoverable fault.
type Code string

const (
	// CodeLocatorNotFound: a point or name pick did not resolve.
	CodeLocatorNotFound Code = "LOCATOR_NOT_FOUND"
	// CodeInsufficientSelection: fewer entries than the operation's minimum.
	CodeInsufficientSelection Code = "INSUFFICIENT_SELECTION"
	// CodeFeatureRejected: the engine returned a nil handle after a fully
	// assembled selection.
	CodeFeatureRejected Code = "FEATURE_REJECTED"
	// CodeNoActiveDocument: no open document or sketch context.
	CodeNoActiveDocument Code = "NO_ACTIVE_DOCUMENT"
)

// Fault is a recoverable protocol error. It never terminates the session.
type Fault struct {
	Code    Code
	Message string

	// Locator context, set for CodeLocatorNotFound.
	Kind  engine.EntityKind
	Point *geom.Point3D
	Name  string
	// Available lists same-kind names in the feature history, when a
	// name lookup missed and the history was readable.
	Available []string
}

func (f *Fault) Error() string {
	var b strings.Builder
	b.WriteString(string(f.Code))
	b.WriteString(": ")
	b.WriteString(f.Message)
	if len(f.Available) > 0 {
		fmt.Fprintf(&b, " (available: %s)", strings.Join(f.Available, ", "))
	}
	return b.String()
}

// NotFoundAtPoint builds the fault for a missed point pick. The point is
// reported in millimeters, the unit the caller supplied it in.
func NotFoundAtPoint(kind engine.EntityKind, pt geom.Point3D) *Fault {
	return &Fault{
		Code: CodeLocatorNotFound,
		Kind: kind,
		Point: &pt,
		Message: fmt.Sprintf("no %s near (%.1f, %.1f, %.1f) mm",
			kind, geom.ToMM(pt.X), geom.ToMM(pt.Y), geom.ToMM(pt.Z)),
	}
}

// NotFoundByName builds the fault for a missed name lookup. available may
// be nil when the feature history could not be read.
func NotFoundByName(kind engine.EntityKind, name string, available []string) *Fault {
	return &Fault{
		Code:      CodeLocatorNotFound,
		Kind:      kind,
		Name:      name,
		Available: available,
		Message:   fmt.Sprintf("no %s named %q in the feature history", kind, name),
	}
}

// Insufficient builds the fault for a selection set below the operation's
// minimum entry count.
func Insufficient(op string, got, want int) *Fault {
	return &Fault{
		Code:    CodeInsufficientSelection,
		Message: fmt.Sprintf("%s requires at least %d selected item(s), got %d", op, want, got),
	}
}

// Rejected builds the fault for a feature call that returned nil after a
// fully assembled selection.
func Rejected(op, hint string) *Fault {
	msg := fmt.Sprintf("engine rejected %s", op)
	if hint != "" {
		msg += ": " + hint
	}
	return &Fault{Code: CodeFeatureRejected, Message: msg}
}

// NoDocument builds the fault for an operation attempted without an open
// document or sketch context.
func NoDocument(what string) *Fault {
	return &Fault{Code: CodeNoActiveDocument, Message: what}
}
