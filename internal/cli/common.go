package cli

import (
	"flag"
	"fieldmon/internal/global"
)

func SetGlobalArguments(fs *flag.FlagSet) {
	fs.IntVar(&global.Verbose, "v", 0, "Increase detailed progress messages (Higher is more verbose) <0...3>")
	fs.IntVar(&global.Verbose, "verbose", 0, "Increase detailed progress messages (Higher is more verbose) <0...3>")
	fs.IntVar(&global.Quiet, "q", 0, "Decrease progress messages (Higher is quieter) <0...3>")
	fs.IntVar(&global.Quiet, "quiet", 0, "Decrease progress messages (Higher is quieter) <0...3>")
}

func SetCommon(fs *flag.FlagSet, configPath *string, outputPath *string, scriptMode *bool) {
	fs.StringVar(configPath, "c", global.DefaultConfigPath, "Path to the configuration file")
	fs.StringVar(configPath, "config", global.DefaultConfigPath, "Path to the configuration file")
	fs.StringVar(outputPath, "o", "", "Directory for relative log file paths (overrides configuration)")
	fs.StringVar(outputPath, "output", "", "Directory for relative log file paths (overrides configuration)")
	fs.BoolVar(scriptMode, "script", false, "Plain console output for non-interactive use")
}
