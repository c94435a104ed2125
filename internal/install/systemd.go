package install

import (
	"fieldmon/internal/global"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const unitFilePath string = "/etc/systemd/system/fieldmon.service"

func installService() (err error) {
	unitName := filepath.Base(unitFilePath)

	unitFile, err := installationFiles.ReadFile("static-files/fieldmon.service")
	if err != nil {
		err = fmt.Errorf("unable to retrieve service file from embedded filesystem: %v", err)
		return
	}

	// Inject variables into file
	newUnitFile := strings.Replace(string(unitFile), "$executableFilePath", installBinaryPath, 1)
	newUnitFile = strings.Replace(newUnitFile, "$configFilePath", global.DefaultConfigPath, 1)
	unitFile = []byte(newUnitFile)

	err = os.WriteFile(unitFilePath, unitFile, 0644)
	if err != nil {
		return
	}

	// Reload for new unit file
	command := exec.Command("systemctl", "daemon-reload")
	output, err := command.CombinedOutput()
	if err != nil {
		err = fmt.Errorf("failed to reload systemd units: %v: %s", err, string(output))
		return
	}

	// Check if enabled
	command = exec.Command("systemctl", "is-enabled", unitName)
	output, err = command.CombinedOutput()
	if err != nil {
		if !strings.Contains(string(output), "disabled") {
			err = fmt.Errorf("failed to check systemd service enablement status: %v: %s", err, string(output))
			return
		}
		// Disabled status is exit code 1
		err = nil
	}
	enableStatus := strings.Trim(string(output), "\n")

	if strings.ToLower(enableStatus) != "enabled" {
		command := exec.Command("systemctl", "enable", unitName)
		output, err = command.CombinedOutput()
		if err != nil {
			err = fmt.Errorf("failed to enable systemd service: %v: %s", err, string(output))
			return
		}
	}

	fmt.Printf("Successfully installed Systemd service\n")
	fmt.Printf("  IMPORTANT: review the configuration and start the service with 'systemctl start %s'\n", unitName)
	return
}
