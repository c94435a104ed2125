package cli

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"fieldmon/internal/agent"
	"fieldmon/internal/global"
	"fieldmon/internal/routing"
	"fieldmon/internal/severity"
	"fieldmon/internal/worker"
)

// Validates the config file and resolves the full routing template without
// starting the queue or listener
func CheckMode(commandname string, args []string) {
	var configPath, outputPath string
	var scriptMode bool
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath, &outputPath, &scriptMode)

	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, global.CmdOpts)
	}
	commandFlags.Parse(args)

	err := routing.WithBasicLogging(global.Verbose, global.Quiet, scriptMode, os.Stdout, func(reg *routing.Registry) (checkErr error) {
		emitter := worker.AttachDirect(global.NSAgent+".check", reg.Dispatch, severity.Trace)

		jsonCfg, checkErr := agent.LoadConfig(configPath)
		if checkErr != nil {
			return
		}
		emitter.Emit(severity.Info, "Loaded configuration from '%s'", configPath)

		daemonConfig, checkErr := jsonCfg.NewDaemonConf()
		if checkErr != nil {
			return
		}

		resolvedOutput := daemonConfig.OutputPath
		if outputPath != "" {
			resolvedOutput = outputPath
		}
		if resolvedOutput == "" {
			resolvedOutput = global.DefaultOutputPath
		}

		rendered, checkErr := routing.Render(daemonConfig.Routing, routing.RenderOptions{
			OutputPath:   resolvedOutput,
			FileLevel:    daemonConfig.FileLevel,
			ConsoleLevel: daemonConfig.ConsoleLevel,
			Tokens:       map[string]string{"run_id": "check", "hostname": "check"},
		})
		if checkErr != nil {
			return
		}

		emitter.Emit(severity.Info, "Root level %s, active handlers %v",
			rendered.Root.Level.String(), rendered.Root.ActiveHandlers)

		handlerNames := make([]string, 0, len(rendered.Handlers))
		for name := range rendered.Handlers {
			handlerNames = append(handlerNames, name)
		}
		sort.Strings(handlerNames)
		for _, name := range handlerNames {
			handler := rendered.Handlers[name]
			if handler.Filename != "" {
				emitter.Emit(severity.Debug, "Handler '%s' (%s, %s) writes to '%s'",
					name, string(handler.Kind), handler.Level.String(), handler.Filename)
			} else {
				emitter.Emit(severity.Debug, "Handler '%s' (%s, %s)",
					name, string(handler.Kind), handler.Level.String())
			}
		}

		for _, sensorConf := range daemonConfig.Sensors {
			emitter.Emit(severity.Debug, "Sensor '%s' (%s) polling every %v",
				sensorConf.Name, sensorConf.Kind, sensorConf.Interval)
		}

		emitter.Emit(severity.Info, "Configuration OK")
		return
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
