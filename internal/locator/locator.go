// Package locator converts semantic entity references into concrete picks.
//
// A Locator names an external entity one of three ways: by the point
// nearest to it, by its feature-history name, or implicitly ("the current
// sketch"), to be expanded by the identity resolver before resolution.
// Resolution issues exactly one pick against the engine; a miss is
// terminal for the command and reported verbatim with the kind and the
// requested point or name.
package locator

import (
	"fmt"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/faults"
	"github.com/parametriclabs/swmcp/internal/geom"
)

// Locator is a semantic reference to an external entity. Exactly one of
// Point, Name, or Implicit is set.
type Locator struct {
	Kind     engine.EntityKind
	Point    *geom.Point3D
	Name     string
	Implicit bool
}

// ByPoint references the entity of the given kind nearest to pt (meters).
func ByPoint(kind engine.EntityKind, pt geom.Point3D) Locator {
	return Locator{Kind: kind, Point: &pt}
}

// ByName references the named entity of the given kind. Plane shorthand
// ("Front", "Top", "Right") is normalized to the engine's full names;
// lookup is otherwise exact and case-sensitive.
func ByName(kind engine.EntityKind, name string) Locator {
	if kind == engine.KindPlane {
		name = NormalizePlaneName(name)
	}
	return Locator{Kind: kind, Name: name}
}

// Implicit references the most recent entity of the given kind. The
// identity resolver expands it into a ByName locator before resolution.
func Implicit(kind engine.EntityKind) Locator {
	return Locator{Kind: kind, Implicit: true}
}

// String describes the locator for logs and fault messages.
func (l Locator) String() string {
	switch {
	case l.Point != nil:
		return fmt.Sprintf("%s@(%.1f,%.1f,%.1f)mm", l.Kind,
			geom.ToMM(l.Point.X), geom.ToMM(l.Point.Y), geom.ToMM(l.Point.Z))
	case l.Implicit:
		return fmt.Sprintf("%s(implicit)", l.Kind)
	default:
		return fmt.Sprintf("%s(%q)", l.Kind, l.Name)
	}
}

// Resolve issues the single pick this locator describes, tagging the
// selected entity with mark. A miss returns a LOCATOR_NOT_FOUND fault;
// no retry or tolerance widening is performed. Implicit locators must be
// expanded before Resolve is called.
func (l Locator) Resolve(doc engine.Document, mark engine.Mark, append bool) error {
	switch {
	case l.Implicit:
		return fmt.Errorf("locator: implicit %s reference was not expanded before resolution", l.Kind)
	case l.Point != nil:
		ok, err := doc.SelectByPoint(l.Kind, *l.Point, mark, append)
		if err != nil {
			return err
		}
		if !ok {
			return faults.NotFoundAtPoint(l.Kind, *l.Point)
		}
		return nil
	default:
		ok, err := doc.SelectByName(l.Name, l.Kind, mark, append)
		if err != nil {
			return err
		}
		if !ok {
			return faults.NotFoundByName(l.Kind, l.Name, sameKindNames(doc, l.Kind))
		}
		return nil
	}
}

// sameKindNames lists feature-history names that could satisfy a miss of
// the given kind, to aid the upstream agent in self-correction. Best
// effort: a history read failure yields nil.
func sameKindNames(doc engine.Document, kind engine.EntityKind) []string {
	typeTag, ok := historyTypeTag(kind)
	if !ok {
		return nil
	}
	features, err := doc.Features()
	if err != nil {
		return nil
	}
	var names []string
	for _, f := range features {
		if f.TypeName == typeTag {
			names = append(names, f.Name)
		}
	}
	return names
}

// historyTypeTag maps a selectable entity kind to the feature-history type
// tag its candidates carry. Point-picked kinds (faces, edges, vertices)
// have no history entries and report no candidates.
func historyTypeTag(kind engine.EntityKind) (string, bool) {
	switch kind {
	case engine.KindSketch:
		return "ProfileFeature", true
	case engine.KindPlane:
		return "RefPlane", true
	case engine.KindAxis:
		return "RefAxis", true
	default:
		return "", false
	}
}

// NormalizePlaneName expands the short reference-plane names the upstream
// agent uses to the engine's feature-history names. Unknown names pass
// through untouched so custom planes keep exact-match semantics.
func NormalizePlaneName(name string) string {
	switch name {
	case "Front", "Top", "Right":
		return name + " Plane"
	}
	return name
}
