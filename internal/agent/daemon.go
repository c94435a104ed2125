// Daemon wiring the sensor workers, shared record queue, and listener into
// one supervised monitoring agent
package agent

import (
	"context"
	"fieldmon/internal/atomics"
	"fieldmon/internal/global"
	"fieldmon/internal/lifecycle"
	"fieldmon/internal/listener"
	"fieldmon/internal/queue"
	"fieldmon/internal/record"
	"fieldmon/internal/routing"
	"fieldmon/internal/sensor"
	"fieldmon/internal/severity"
	"fieldmon/internal/worker"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// How long Shutdown waits for the listener to confirm the drain finished
const shutdownTimeout time.Duration = 20 * time.Second

// Create new agent daemon instance
func NewDaemon(cfg Config) (new *Daemon) {
	ctx, cancel := context.WithCancel(context.Background())
	new = &Daemon{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
	return
}

// Starts the listener and sensor workers in background.
// Any error here is fatal and happens before the first record flows.
func (daemon *Daemon) Start() (err error) {
	daemon.cfg.setDefaults()

	global.Hostname, err = os.Hostname()
	if err != nil {
		err = fmt.Errorf("failed to determine local hostname: %v", err)
		return
	}
	global.PID = os.Getpid()
	global.RunID = uuid.NewString()

	// Resolve the routing template once, before anything emits
	rendered, err := routing.Render(daemon.cfg.Routing, routing.RenderOptions{
		OutputPath:   daemon.cfg.OutputPath,
		FileLevel:    daemon.cfg.FileLevel,
		ConsoleLevel: daemon.cfg.ConsoleLevel,
		Tokens: map[string]string{
			"run_id":   global.RunID,
			"hostname": global.Hostname,
		},
	})
	if err != nil {
		return
	}

	daemon.registry, err = routing.NewRegistry(rendered, os.Stdout, daemon.cfg.ScriptMode)
	if err != nil {
		return
	}

	daemon.inbox, err = queue.New[record.Record](daemon.cfg.MinQueueSize, daemon.cfg.MaxQueueSize)
	if err != nil {
		daemon.registry.Teardown()
		err = fmt.Errorf("error creating shared record queue: %v", err)
		return
	}

	daemon.stopSignal = atomics.NewFlag()
	daemon.exitEvent = atomics.NewFlag()

	// The listener owns the registry and the queue close from here on
	daemon.listenerWg.Add(1)
	go func() {
		defer daemon.listenerWg.Done()
		daemon.listenerState, daemon.listenerErr = listener.Run(
			daemon.inbox, daemon.registry, daemon.stopSignal, daemon.exitEvent)
	}()

	// Sensor workers, each with its own queue-attached emitter
	for _, sensorConf := range daemon.cfg.Sensors {
		if sensorConf.Kind != "memory" {
			daemon.Shutdown()
			err = fmt.Errorf("unknown sensor kind '%s'", sensorConf.Kind)
			return
		}

		origin := global.NSAgent + "." + global.NSSensor + "." + sensorConf.Name
		emitter := worker.Attach(origin, daemon.inbox, daemon.cfg.WorkerLevel)

		memorySensor := sensor.NewMemory(sensorConf.Name, sensorConf.Interval, emitter)
		daemon.sensors = append(daemon.sensors, memorySensor)

		daemon.sensorWg.Add(1)
		go func() {
			defer daemon.sensorWg.Done()
			memorySensor.Run(daemon.ctx)
		}()
	}

	// Agent-level emitter for lifecycle events. The handler context is
	// tied to the daemon so the goroutine exits on a self-initiated stop.
	agentEmitter := worker.Attach(global.NSAgent, daemon.inbox, daemon.cfg.WorkerLevel)
	signalCtx := worker.WithEmitter(daemon.ctx, agentEmitter)

	// Start handling exit signals once everything is running
	go lifecycle.SignalHandler(signalCtx, daemon)

	notifyErr := lifecycle.NotifyReady()
	if notifyErr != nil {
		agentEmitter.Emit(severity.Warning, "Systemd ready notification failed: %v", notifyErr)
	}

	return
}

// Blocks until the listener has fully shut down
func (daemon *Daemon) Run() {
	daemon.listenerWg.Wait()
}

// Stops sensor workers, then signals the listener with the sentinel and
// waits for the drain to complete. Safe to call more than once.
func (daemon *Daemon) Shutdown() {
	daemon.shutdownOnce.Do(func() {
		// Workers first, so every record they emitted is already queued
		// ahead of the sentinel
		daemon.cancel()
		daemon.sensorWg.Wait()

		if daemon.inbox == nil {
			return
		}

		pushErr := daemon.inbox.Push(record.Sentinel())
		if pushErr != nil {
			// Listener already gone (forced stop); nothing left to wait on
			return
		}

		daemon.exitEvent.Wait(shutdownTimeout)
	})
}

// Forces the listener down without the sentinel protocol. Used when the
// queue path itself is suspect.
func (daemon *Daemon) ForceStop() {
	daemon.cancel()
	if daemon.stopSignal != nil {
		daemon.stopSignal.Set()
	}
}

// Final state the listener reached, valid once Run has returned
func (daemon *Daemon) ListenerResult() (final listener.State, err error) {
	final = daemon.listenerState
	err = daemon.listenerErr
	return
}
