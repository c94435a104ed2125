package global

var (
	CmdOpts *CommandSet // Holds CLI command definition

	Hostname string // local machine name
	PID      int    // self
	RunID    string // unique identifier for this agent run, substituted into log filenames

	// Count of -v flags minus count of -q flags, fed to the severity mapper
	//
	//	 3 - Trace: everything, including per-reading sensor data
	//	 2 - Debug: internal progress detail
	//	 1 - Info: normal progress messages
	//	 0 - Warning: default, problems only
	//	-1 - Error: failures only
	//	-2 - Critical: fatal conditions only
	//	-3 - Disabled: nothing at all
	Verbose int
	Quiet   int
)
