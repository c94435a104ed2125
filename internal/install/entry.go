// Handles installation of the agent binary, config, and service unit
package install

import (
	"embed"
	"fmt"
	"io"
	"os"
)

// Read in installation static files at compile time
//
//go:embed static-files/*
var installationFiles embed.FS

// Full installation (idempotent)
func Run() {
	// Must run as root
	if os.Geteuid() != 0 {
		fmt.Fprintf(os.Stderr, "Installation must be run as root\n")
		os.Exit(1)
	}

	// Move binary (self) into place
	err := installBinary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error installing binary: %v\n", err)
		os.Exit(1)
	}

	// Create template config
	err = installConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error with template config: %v\n", err)
		os.Exit(1)
	}

	// Create systemd service
	err = installService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error with Systemd service: %v\n", err)
		os.Exit(1)
	}
}

func installBinary() (err error) {
	selfPath, err := os.Executable()
	if err != nil {
		err = fmt.Errorf("unable to determine own path: %v", err)
		return
	}

	// Already in place
	if selfPath == installBinaryPath {
		return
	}

	src, err := os.Open(selfPath)
	if err != nil {
		return
	}
	defer src.Close()

	dst, err := os.OpenFile(installBinaryPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
	if err != nil {
		return
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	if err != nil {
		err = fmt.Errorf("failed to copy binary into place: %v", err)
		return
	}

	fmt.Printf("Installed binary to '%s'\n", installBinaryPath)
	return
}
