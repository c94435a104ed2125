package cli

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"fieldmon/internal/global"
)

const (
	RootCLICommand  string = "root"
	helpMenuTrailer string = `
Report bugs to: <https://github.com/fieldmon/fieldmon/issues>
`
)

// Full standardized help menu (wraps option printer as well)
func PrintHelpMenu(fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	const baseIndentSpaces = 2

	var curCmdSet *global.CommandSet

	// Find the command in tree (single level, no nested subcommands)
	if command == "" || command == RootCLICommand {
		curCmdSet = rootCmd
	} else if cmd, ok := rootCmd.ChildCommands[command]; ok {
		curCmdSet = cmd
	} else {
		fmt.Printf("Unknown command: %s\n", command)
		return
	}

	// Build usage line
	usageParts := []string{os.Args[0]}
	if curCmdSet != rootCmd {
		usageParts = append(usageParts, curCmdSet.CommandName)
	} else if len(curCmdSet.ChildCommands) > 0 {
		usageParts = append(usageParts, "[command]")
	}
	if curCmdSet.UsageOption != "" {
		usageParts = append(usageParts, curCmdSet.UsageOption)
	}

	fmt.Printf("Usage: %s\n\n", strings.Join(usageParts, " "))

	// Description
	if curCmdSet == rootCmd {
		fmt.Println(curCmdSet.Description)
		fmt.Println(curCmdSet.FullDescription)
		fmt.Println()
	} else if curCmdSet.FullDescription != "" {
		fmt.Println("  Description:")
		fmt.Printf("    %s\n\n", curCmdSet.FullDescription)
	}

	// Subcommands
	if len(curCmdSet.ChildCommands) > 0 {
		indent := strings.Repeat(" ", baseIndentSpaces)
		fmt.Printf("%sCommands:\n", indent)

		maxLen := 0
		subNames := make([]string, 0, len(curCmdSet.ChildCommands))
		for name := range curCmdSet.ChildCommands {
			subNames = append(subNames, name)
			if len(name) > maxLen {
				maxLen = len(name)
			}
		}
		sort.Strings(subNames)

		cmdIndent := strings.Repeat(" ", baseIndentSpaces+2)
		for _, name := range subNames {
			sub := curCmdSet.ChildCommands[name]
			padding := strings.Repeat(" ", maxLen-len(name)+2)
			fmt.Printf("%s%s%s - %s\n", cmdIndent, name, padding, sub.Description)
		}
		fmt.Println()
	}

	printFlagOptions(fs, baseIndentSpaces)

	if curCmdSet == rootCmd {
		fmt.Print(helpMenuTrailer)
	}
}

// Custom printer to deduplicate short/long usages and indent automatically
func printFlagOptions(fs *flag.FlagSet, baseIndentSpaces int) {
	const shortArgPrefix string = "-"
	const shortLongArgJoiner string = ", "
	const longArgPrefix string = "--"
	const argToUsageSpaces int = 2

	type optInfo struct {
		names    []string
		usage    string
		defValue string
		hasShort bool
	}

	// Deduplicate usages by exact usage text match
	seen := make(map[string]*optInfo)
	fs.VisitAll(func(arg *flag.Flag) {
		prefix := longArgPrefix
		isShort := len(arg.Name) == 1
		if isShort {
			prefix = shortArgPrefix
		}

		opt, seenUsage := seen[arg.Usage]
		if !seenUsage {
			opt = &optInfo{usage: arg.Usage, defValue: arg.DefValue}
			seen[arg.Usage] = opt
		}
		opt.names = append(opt.names, prefix+arg.Name)
		if isShort {
			opt.hasShort = true
		}
	})

	opts := make([]*optInfo, 0, len(seen))
	for _, opt := range seen {
		// Short args come before long args
		sort.Slice(opt.names, func(indexA, indexB int) bool {
			return len(opt.names[indexA]) < len(opt.names[indexB])
		})
		opts = append(opts, opt)
	}
	sort.Slice(opts, func(indexA, indexB int) bool {
		return strings.ToLower(opts[indexA].names[0]) < strings.ToLower(opts[indexB].names[0])
	})

	// accounts for short arg prefix length, short arg default len (1), and joiner length
	longShortArgOffset := len(shortLongArgJoiner) + len(shortArgPrefix) + 1

	// Calculate max length flags for alignment
	maxLen := 0
	for _, opt := range opts {
		leftLen := len(strings.Join(opt.names, shortLongArgJoiner))
		if !opt.hasShort {
			leftLen += longShortArgOffset
		}
		if leftLen > maxLen {
			maxLen = leftLen
		}
	}

	fmt.Printf("%sOptions:\n", strings.Repeat(" ", baseIndentSpaces))
	for _, opt := range opts {
		left := strings.Join(opt.names, shortLongArgJoiner)

		indentSpaces := baseIndentSpaces
		leftLen := len(left)
		if !opt.hasShort {
			indentSpaces += longShortArgOffset
			leftLen += longShortArgOffset
		}
		indent := strings.Repeat(" ", indentSpaces)

		paddingSpaces := maxLen - leftLen + argToUsageSpaces
		if paddingSpaces < argToUsageSpaces {
			paddingSpaces = argToUsageSpaces
		}
		padding := strings.Repeat(" ", paddingSpaces)

		// Skip printing any "empty" defaults
		desc := opt.usage
		if opt.defValue != "" && opt.defValue != "false" && opt.defValue != "0" {
			desc += fmt.Sprintf(" [default: %s]", opt.defValue)
		}

		fmt.Printf("%s%s%s%s\n", indent, left, padding, desc)
	}
}
