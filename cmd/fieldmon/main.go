package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"fieldmon/internal/cli"
	"fieldmon/internal/global"
	"fieldmon/internal/install"
)

func main() {
	cliOpts := cli.DefineOptions()

	args := os.Args
	commandFlags := flag.NewFlagSet(args[0], flag.ExitOnError)
	cli.SetGlobalArguments(commandFlags)

	commandFlags.Usage = func() {
		cli.PrintHelpMenu(commandFlags, cli.RootCLICommand, cliOpts)
	}
	if len(args) < 2 {
		cli.PrintHelpMenu(commandFlags, cli.RootCLICommand, cliOpts)
		os.Exit(1)
	}
	commandFlags.Parse(args[1:])

	// Retrieve command and args
	command := args[1]
	args = args[2:]

	// Process commands
	switch command {
	case "run":
		cli.RunMode(command, args)
	case "check":
		cli.CheckMode(command, args)
	case "install":
		install.Run()
	case "version":
		if len(args) > 0 && (args[0] == "--verbose" || args[0] == "-v") {
			fmt.Printf("fieldmon %s\n", global.ProgVersion)
			fmt.Printf("Built using %s(%s) for %s on %s\n", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH)
		} else {
			fmt.Println(global.ProgVersion)
		}
	default:
		cli.PrintHelpMenu(commandFlags, cli.RootCLICommand, cliOpts)
		os.Exit(1)
	}
}
