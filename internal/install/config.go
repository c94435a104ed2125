package install

import (
	"bufio"
	"fieldmon/internal/global"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const installBinaryPath string = global.DefaultBinaryPath

func installConfig() (err error) {
	configFilePath := global.DefaultConfigPath

	// Don't overwrite existing
	_, err = os.Stat(configFilePath)
	if err == nil {
		// No terminal - no overwrite
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Printf("Existing configuration file present, not overwriting\n")
			return
		}

		// File exists, prompt user for confirmation to overwrite
		fmt.Printf("Configuration file already exists at '%s'. Are you SURE you want to overwrite it? (yes/no): ", configFilePath)
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		if strings.ToLower(input) != "yes" {
			fmt.Printf("Not overwriting configuration file\n")
			return
		}
	}
	err = nil

	configTemplate, err := installationFiles.ReadFile("static-files/fieldmon.json")
	if err != nil {
		err = fmt.Errorf("unable to retrieve configuration file from embedded filesystem: %v", err)
		return
	}

	err = os.WriteFile(configFilePath, configTemplate, 0640)
	if err != nil {
		err = fmt.Errorf("failed to write configuration file: %v", err)
		return
	}

	err = os.MkdirAll(global.DefaultOutputPath, 0750)
	if err != nil {
		err = fmt.Errorf("failed to create log output directory: %v", err)
		return
	}

	fmt.Printf("Installed template configuration to '%s'\n", configFilePath)
	return
}
