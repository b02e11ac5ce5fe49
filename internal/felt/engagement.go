package felt

// #region breakpoints

// LevelFor maps engagement pull to a discrete level via fixed breakpoints.
// No smoothing: identical pull always yields the identical level, so a
// pull oscillating around a breakpoint flips level turn to turn.
func LevelFor(pull float64) Level {
	switch {
	case pull < 0.3:
		return LevelMinimal
	case pull < 0.5:
		return LevelHelpful
	case pull < 0.7:
		return LevelThoughtful
	case pull < 0.85:
		return LevelCollaborative
	default:
		return LevelFullPresence
	}
}

// #endregion breakpoints
