package cli

import (
	"flag"
	"fmt"
	"os"

	"fieldmon/internal/agent"
	"fieldmon/internal/global"
	"fieldmon/internal/severity"
)

func RunMode(commandname string, args []string) {
	var configPath, outputPath string
	var scriptMode bool
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath, &outputPath, &scriptMode)

	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, global.CmdOpts)
	}
	commandFlags.Parse(args)

	jsonCfg, err := agent.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	daemonConfig, err := jsonCfg.NewDaemonConf()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Command line overrides config file
	if outputPath != "" {
		daemonConfig.OutputPath = outputPath
	}
	daemonConfig.ScriptMode = scriptMode
	if global.Verbose != 0 || global.Quiet != 0 {
		daemonConfig.ConsoleLevel = severity.FromVerbosity(global.Verbose - global.Quiet).String()
	}

	agentDaemon := agent.NewDaemon(daemonConfig)
	err = agentDaemon.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting agent daemon: %v\n", err)
		os.Exit(1)
	}

	agentDaemon.Run()

	_, listenerErr := agentDaemon.ListenerResult()
	if listenerErr != nil {
		fmt.Fprintf(os.Stderr, "Error during logging shutdown: %v\n", listenerErr)
		os.Exit(1)
	}
}
