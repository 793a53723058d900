package match

import "time"

const (
	// EngineVersion is the current version of the matching engine.
	EngineVersion = "v1.0.0"

	// defaultCutoffHour is the local hour at which GoodForDay orders are
	// reaped when no WithDailyCutoff option is supplied.
	defaultCutoffHour = 16

	// reaperGrace is added to the computed cutoff before the reaper wakes,
	// to absorb scheduling jitter around the boundary.
	reaperGrace = 100 * time.Millisecond
)
