package worker

import (
	"bytes"
	"context"
	"fieldmon/internal/queue"
	"fieldmon/internal/record"
	"fieldmon/internal/severity"
	"strings"
	"testing"
)

func newTestQueue(t *testing.T) (q *queue.Queue[record.Record]) {
	t.Helper()
	q, err := queue.New[record.Record](8, 64)
	if err != nil {
		t.Fatalf("expected no error in creating queue, but got '%v'", err)
	}
	return
}

func TestAttach_EmitsThroughQueue(t *testing.T) {
	defer ResetAttachments()
	q := newTestQueue(t)

	emitter := Attach("agent.worker.one", q, severity.Info)
	emitter.Emit(severity.Warning, "reading %d failed", 7)

	rec, found := q.TryPop()
	if !found {
		t.Fatal("expected record in queue")
	}
	if rec.Origin != "agent.worker.one" {
		t.Errorf("expected origin 'agent.worker.one', got '%s'", rec.Origin)
	}
	if rec.Message != "reading 7 failed" {
		t.Errorf("expected formatted message, got '%s'", rec.Message)
	}
	if rec.Level != severity.Warning {
		t.Errorf("expected level WARNING, got %v", rec.Level)
	}
}

func TestAttach_LocalFilterDropsBeforeQueue(t *testing.T) {
	defer ResetAttachments()
	q := newTestQueue(t)

	emitter := Attach("agent.worker.two", q, severity.Warning)
	emitter.Emit(severity.Debug, "too detailed")
	emitter.Emit(severity.Info, "still too detailed")

	if _, found := q.TryPop(); found {
		t.Fatal("below-threshold record crossed the queue boundary")
	}

	if snap := q.SnapshotMetrics(); snap.PushAttempts != 0 {
		t.Errorf("expected zero push attempts for filtered records, got %d", snap.PushAttempts)
	}
}

func TestAttach_Idempotent(t *testing.T) {
	defer ResetAttachments()
	q := newTestQueue(t)

	first := Attach("agent.worker.three", q, severity.Info)
	second := Attach("agent.worker.three", q, severity.Info)

	if first != second {
		t.Fatal("repeated attach with identical arguments produced a new emitter")
	}

	// One emission must deliver exactly one record
	second.Emit(severity.Info, "single")
	if _, found := q.TryPop(); !found {
		t.Fatal("expected one record")
	}
	if _, found := q.TryPop(); found {
		t.Fatal("duplicate delivery after repeated attach")
	}
}

func TestAttach_ChangedQueueReplaces(t *testing.T) {
	defer ResetAttachments()
	oldQueue := newTestQueue(t)
	newQueue := newTestQueue(t)

	Attach("agent.worker.five", oldQueue, severity.Info)
	rewired := Attach("agent.worker.five", newQueue, severity.Info)

	rewired.Emit(severity.Info, "after rewire")
	if _, found := newQueue.TryPop(); !found {
		t.Fatal("expected record in the replacement queue")
	}
	if _, found := oldQueue.TryPop(); found {
		t.Fatal("record still flowed to the previously attached queue")
	}
}

func TestAttach_ChangedLevelReplaces(t *testing.T) {
	defer ResetAttachments()
	q := newTestQueue(t)

	Attach("agent.worker.four", q, severity.Warning)
	relaxed := Attach("agent.worker.four", q, severity.Debug)

	relaxed.Emit(severity.Debug, "now visible")
	if _, found := q.TryPop(); !found {
		t.Fatal("expected record after threshold replacement")
	}
}

func TestEmitter_SubmitFailureGoesToFallback(t *testing.T) {
	defer ResetAttachments()
	q := newTestQueue(t)
	q.Close()

	var fallback bytes.Buffer
	emitter := Attach("agent.worker.five", q, severity.Info)
	emitter.fallback = &fallback

	emitter.Emit(severity.Error, "lost otherwise")

	if !strings.Contains(fallback.String(), "lost otherwise") {
		t.Errorf("expected record text on fallback channel, got '%s'", fallback.String())
	}
}

func TestEmitter_Named(t *testing.T) {
	defer ResetAttachments()
	q := newTestQueue(t)

	parent := Attach("agent.sensor", q, severity.Info)
	child := parent.Named("memory")

	child.Emit(severity.Info, "poll")
	rec, found := q.TryPop()
	if !found {
		t.Fatal("expected record from child emitter")
	}
	if rec.Origin != "agent.sensor.memory" {
		t.Errorf("expected dotted child origin, got '%s'", rec.Origin)
	}
}

func TestEmitter_Context(t *testing.T) {
	defer ResetAttachments()
	q := newTestQueue(t)

	emitter := Attach("agent.ctx", q, severity.Info)
	ctx := WithEmitter(context.Background(), emitter)

	Emit(ctx, severity.Info, "via context")
	if rec, found := q.TryPop(); !found || rec.Message != "via context" {
		t.Fatalf("expected context emission, found=%v", found)
	}

	// Context without emitter must be a safe no-op
	Emit(context.Background(), severity.Info, "dropped")

	if FromContext(context.Background()) != nil {
		t.Fatal("expected nil emitter from bare context")
	}
}

func TestEmitter_PercentLiteralWithoutVars(t *testing.T) {
	defer ResetAttachments()
	q := newTestQueue(t)

	emitter := Attach("agent.pct", q, severity.Info)
	emitter.Emit(severity.Info, "utilization 95% reached")

	rec, _ := q.TryPop()
	if rec.Message != "utilization 95% reached" {
		t.Errorf("plain message was reformatted: '%s'", rec.Message)
	}
}
