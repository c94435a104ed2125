package severity

const (
	// Bounds for the net verbosity value (verbose flags minus quiet flags)
	MaxVerbose int = 3
	MinVerbose int = -3
)

// Fixed verbosity-to-threshold table. More verbose means a lower threshold.
var verbosityLevels = map[int]Level{
	-3: Disabled,
	-2: Critical,
	-1: Error,
	0:  Warning,
	1:  Info,
	2:  Debug,
	3:  Trace,
}

// Maps a net verbosity value to its severity threshold.
// Values outside [MinVerbose, MaxVerbose] clamp to the nearest bound.
func FromVerbosity(verbose int) (level Level) {
	if verbose > MaxVerbose {
		verbose = MaxVerbose
	}
	if verbose < MinVerbose {
		verbose = MinVerbose
	}
	level = verbosityLevels[verbose]
	return
}
