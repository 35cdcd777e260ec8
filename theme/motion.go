// Package theme defines visual themes and notifies listeners when the active one changes.
package theme

import "strings"

// Motion selects the movement rule and drawing style of a particle set.
type Motion uint8

const (
	MotionDrift Motion = iota // Plain linear drift, also the fallback
	MotionWave
	MotionFlame
	MotionOrbit
	MotionLeaf
	MotionBlade
)

var motionNames = [...]string{
	MotionDrift: "drift",
	MotionWave:  "wave",
	MotionFlame: "flame",
	MotionOrbit: "orbit",
	MotionLeaf:  "leaf",
	MotionBlade: "blade",
}

// Alternate spellings accepted from theme files.
var motionAliases = map[string]Motion{
	"waves":   MotionWave,
	"flames":  MotionFlame,
	"planets": MotionOrbit,
	"leaves":  MotionLeaf,
	"weapons": MotionBlade,
}

func (m Motion) String() string {
	if int(m) < len(motionNames) {
		return motionNames[m]
	}
	return "drift"
}

// ParseMotion maps a profile name to a Motion. Unknown names yield MotionDrift
// with ok=false.
func ParseMotion(s string) (m Motion, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range motionNames {
		if name == s {
			return Motion(i), true
		}
	}
	if m, found := motionAliases[s]; found {
		return m, true
	}
	return MotionDrift, false
}

// Connective reports whether nearby particles are joined by lines.
func (m Motion) Connective() bool {
	return m == MotionWave || m == MotionBlade
}
