package engine

// Wizard hole parameter enums. The adapter maps these onto the
// automation interface's native constants.

const (
	HoleTypeSimple = iota
	HoleTypeCounterbore
	HoleTypeCountersink
	HoleTypeTap
)

const (
	HoleStandardAnsiMetric = iota
	HoleStandardAnsiInch
	HoleStandardISO
	HoleStandardDIN
)

const (
	HoleEndBlind = iota
	HoleEndThrough
)
