package atomics

import (
	"sync"
	"testing"
	"time"
)

func TestFlag_SetAndObserve(t *testing.T) {
	flag := NewFlag()

	if flag.IsSet() {
		t.Fatal("new flag must start unset")
	}

	select {
	case <-flag.Done():
		t.Fatal("done channel closed before set")
	default:
	}

	flag.Set()

	if !flag.IsSet() {
		t.Fatal("flag not set after Set")
	}

	select {
	case <-flag.Done():
	default:
		t.Fatal("done channel not closed after set")
	}
}

func TestFlag_SetIdempotent(t *testing.T) {
	flag := NewFlag()

	// Double set must not panic on the closed channel
	flag.Set()
	flag.Set()

	if !flag.IsSet() {
		t.Fatal("flag not set after repeated Set")
	}
}

func TestFlag_ConcurrentSetters(t *testing.T) {
	flag := NewFlag()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			flag.Set()
		}()
	}
	wg.Wait()

	if !flag.IsSet() {
		t.Fatal("flag not set after concurrent setters")
	}
}

func TestFlag_Wait(t *testing.T) {
	t.Run("TimesOutWhenUnset", func(t *testing.T) {
		flag := NewFlag()
		if flag.Wait(20 * time.Millisecond) {
			t.Fatal("wait reported set on an unset flag")
		}
	})

	t.Run("ReturnsOnSet", func(t *testing.T) {
		flag := NewFlag()
		go func() {
			time.Sleep(10 * time.Millisecond)
			flag.Set()
		}()
		if !flag.Wait(5 * time.Second) {
			t.Fatal("wait did not observe set")
		}
	})
}
