// Package builder implements the tile/layer/feature builder state machines
// of §4.7, enforcing that geometry commands, property tags, and feature
// finalization can only be emitted in the order the wire format requires.
package builder

// featureState tracks a FeatureBuilder's position in the per-feature state
// machine: INIT -> ID_SET -> GEOMETRY -> PROPERTIES -> {COMMITTED |
// ROLLED_BACK}. ID_SET is folded into stateInit here since both only gate
// SetID, not geometry.
type featureState uint8

const (
	stateInit featureState = iota
	stateGeometry
	stateProperties
	stateCommitted
	stateRolledBack
)

func (s featureState) String() string {
	switch s {
	case stateInit:
		return "INIT"
	case stateGeometry:
		return "GEOMETRY"
	case stateProperties:
		return "PROPERTIES"
	case stateCommitted:
		return "COMMITTED"
	case stateRolledBack:
		return "ROLLED_BACK"
	default:
		return "UNKNOWN"
	}
}
