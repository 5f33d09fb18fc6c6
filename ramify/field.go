package ramify

import (
	"errors"

	"pAdic-Ramification/numfield"
)

// ErrUnsupported is returned by operations outside the implemented scope,
// such as ramification subfields.
var ErrUnsupported = errors.New("ramify: operation is not supported")

// BaseField is a finite extension of Q_p, presented through a dense number
// field model: a number field together with ramification and inertia data of
// the distinguished place over p.
type BaseField interface {
	// Prime returns p.
	Prime() uint64
	// IsBasePrimeField reports whether the field is Q_p itself.
	IsBasePrimeField() bool
	// AbsoluteDegree returns the degree over Q_p.
	AbsoluteDegree() int
	// AbsoluteRamificationDegree returns the ramification index over Q_p.
	AbsoluteRamificationDegree() int
	// AbsoluteInertiaDegree returns the residue field degree over F_p.
	AbsoluteInertiaDegree() int
	// NumberField returns the dense number field model.
	NumberField() *numfield.Field
	// Polynomial returns the defining polynomial of the model over Q; ok is
	// false for Q_p itself.
	Polynomial() (numfield.Poly, bool)
	// WeakSplittingField returns an extension over whose maximal unramified
	// extension every given polynomial splits into linear factors.
	WeakSplittingField(factors []numfield.Poly) (BaseField, error)
	// RamifiedExtension returns a totally ramified extension of degree m.
	RamifiedExtension(m int64) (BaseField, error)
}
