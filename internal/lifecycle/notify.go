// Handles program lifecycle operations (signals, service manager
// integration, shutdown protection)
package lifecycle

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// Sends READY=1 to systemd to indicate service startup complete.
func NotifyReady() (err error) {
	err = notify("READY=1")
	return
}

// Sends STOPPING=1 with a monotonic timestamp to indicate shutdown in progress.
func NotifyStopping() (err error) {
	var ts unix.Timespec
	err = unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	if err != nil {
		return
	}

	usec := ts.Sec*1_000_000 + int64(ts.Nsec)/1_000

	err = notify(fmt.Sprintf("STOPPING=1\nMONOTONIC_USEC=%d", usec))
	return
}

// Sends custom status message to systemd for context.
func NotifyStatus(msg string) (err error) {
	err = notify("STATUS=" + msg)
	return
}

// Sends a raw sd_notify message.
// If NOTIFY_SOCKET is unset, this is a no-op and returns nil.
func notify(msg string) (err error) {
	sockPath := os.Getenv("NOTIFY_SOCKET")
	if sockPath == "" {
		// Not running under systemd
		return
	}

	addr := &net.UnixAddr{
		Name: sockPath,
		Net:  "unixgram",
	}

	conn, err := net.DialUnix("unixgram", nil, addr)
	if err != nil {
		err = fmt.Errorf("notify dial failed: %v", err)
		return
	}
	defer conn.Close()

	_, err = conn.Write([]byte(msg))
	if err != nil {
		err = fmt.Errorf("notify write failed: %v", err)
		return
	}
	return
}
