package lifecycle

import (
	"context"
	"fieldmon/internal/severity"
	"fieldmon/internal/worker"
	"os"
	"os/signal"
	"syscall"
)

type DaemonLike interface {
	Shutdown()
}

// Handles all incoming signals from external sources.
// Initiates daemon shutdown on interrupt or terminate.
func SignalHandler(ctx context.Context, daemonManager DaemonLike) {
	// Channel for handling interrupt signals
	sigChan := make(chan os.Signal, 10)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		worker.Emit(ctx, severity.Info, "Received signal: %v", sig)

		// Hold off a host shutdown race while the queue drains
		inhibitor, err := TakeInhibitor("flushing buffered log records")
		if err != nil {
			worker.Emit(ctx, severity.Warning, "Could not take shutdown inhibitor: %v", err)
		}

		notifyErr := NotifyStopping()
		if notifyErr != nil {
			worker.Emit(ctx, severity.Warning, "Systemd notify failed: %v", notifyErr)
		}
		NotifyStatus("Draining log queue")

		daemonManager.Shutdown()
		inhibitor.Release()
	case <-ctx.Done():
		// Daemon is exiting on its own
	}
}
