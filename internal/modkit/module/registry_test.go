package module

import (
	"sync"
	"testing"
)

// The registry is process-global, so these tests stay serial and each one
// resets it on entry.

type cleanupPorts struct {
	Store string
	Batch int
}

func TestRegistry_RoundTrip(t *testing.T) {
	Reset()

	want := cleanupPorts{Store: "contacts", Batch: 500}
	Register("cleanup", want)

	got, ok := PortsAs[cleanupPorts]("cleanup")
	if !ok || got != want {
		t.Fatalf("PortsAs = %v %v", got, ok)
	}
}

func TestRegistry_MissingAndMismatch(t *testing.T) {
	Reset()
	Register("cleanup", cleanupPorts{Store: "contacts"})

	if got, ok := PortsAs[cleanupPorts]("absent"); ok || got != (cleanupPorts{}) {
		t.Fatalf("absent name came back %v %v", got, ok)
	}
	if _, ok := PortsAs[int]("cleanup"); ok {
		t.Fatal("mismatched type reported ok")
	}
}

func TestRegistry_ReRegisterWins(t *testing.T) {
	Reset()

	Register("cleanup", cleanupPorts{Batch: 1})
	Register("cleanup", cleanupPorts{Batch: 2})

	got, _ := PortsAs[cleanupPorts]("cleanup")
	if got.Batch != 2 {
		t.Fatalf("Batch = %d after re-register", got.Batch)
	}
}

func TestRegistry_ResetDropsEverything(t *testing.T) {
	Reset()
	Register("cleanup", cleanupPorts{Batch: 9})
	Reset()

	if _, ok := PortsAs[cleanupPorts]("cleanup"); ok {
		t.Fatal("registration survived Reset")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	Reset()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			Register("cleanup", cleanupPorts{Batch: i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, _ = PortsAs[cleanupPorts]("cleanup")
		}
	}()
	wg.Wait()

	got, ok := PortsAs[cleanupPorts]("cleanup")
	if !ok || got.Batch != 99 {
		t.Fatalf("final registration = %v %v", got, ok)
	}
}
