package lifecycle

import (
	"fmt"
	"os"

	"github.com/godbus/dbus/v5"
)

// Shutdown-inhibitor lock taken from systemd-logind. Held while the agent
// drains its log queue so a host poweroff cannot cut off the final flush.
type Inhibitor struct {
	conn *dbus.Conn
	lock *os.File
}

// Takes a delay-mode inhibitor lock for shutdown and sleep.
// Returns nil without error when no logind is reachable (containers,
// non-systemd hosts); holding no lock is fine, it only shortens the grace
// window.
func TakeInhibitor(why string) (inhibitor *Inhibitor, err error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		err = nil // no system bus, nothing to inhibit against
		return
	}

	manager := conn.Object("org.freedesktop.login1", "/org/freedesktop/login1")

	var fd dbus.UnixFD
	call := manager.Call("org.freedesktop.login1.Manager.Inhibit", 0,
		"shutdown:sleep", "fieldmon", why, "delay")
	if call.Err != nil {
		conn.Close()
		err = fmt.Errorf("logind inhibit call failed: %v", call.Err)
		return
	}

	err = call.Store(&fd)
	if err != nil {
		conn.Close()
		err = fmt.Errorf("failed to store inhibitor fd: %v", err)
		return
	}

	inhibitor = &Inhibitor{
		conn: conn,
		lock: os.NewFile(uintptr(fd), "logind-inhibitor"),
	}
	return
}

// Releases the lock. Safe on a nil inhibitor.
func (inhibitor *Inhibitor) Release() {
	if inhibitor == nil {
		return
	}
	if inhibitor.lock != nil {
		inhibitor.lock.Close()
		inhibitor.lock = nil
	}
	if inhibitor.conn != nil {
		inhibitor.conn.Close()
		inhibitor.conn = nil
	}
}
