package cli

import "fieldmon/internal/global"

func DefineOptions() (cmdOpts *global.CommandSet) {
	// Root level
	root := &global.CommandSet{
		Description:     "Field Monitoring Agent (fieldmon)",
		FullDescription: "  Collects sensor readings and aggregates log records through a queued listener",
		CommandName:     RootCLICommand,
		ChildCommands:   make(map[string]*global.CommandSet),
	}

	// Run agent
	root.ChildCommands["run"] = &global.CommandSet{
		CommandName:     "run",
		Description:     "Run Agent",
		FullDescription: "Starts sensor workers and the log listener, runs until signaled to stop",
		ChildCommands:   nil,
	}

	// Config check
	root.ChildCommands["check"] = &global.CommandSet{
		CommandName:     "check",
		Description:     "Check Configuration",
		FullDescription: "Loads and validates the configuration file without starting the agent",
		ChildCommands:   nil,
	}

	// Installation
	root.ChildCommands["install"] = &global.CommandSet{
		CommandName:     "install",
		Description:     "Install Agent",
		FullDescription: "Installs the binary, a template configuration, and the systemd service",
		ChildCommands:   nil,
	}

	// Version Info
	root.ChildCommands["version"] = &global.CommandSet{
		CommandName:     "version",
		Description:     "Show Version Information",
		FullDescription: "Display meta information about program",
	}

	cmdOpts = root
	global.CmdOpts = root
	return
}
