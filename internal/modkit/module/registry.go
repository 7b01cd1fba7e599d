package module

import "sync"

// Process-wide port registry. Services register every mounted module during
// bootstrap so later wiring can look ports up by module name
var registry = struct {
	sync.RWMutex
	byName map[string]any
}{byName: map[string]any{}}

// Register stores the port bundle published under name
func Register(name string, ports any) {
	registry.Lock()
	registry.byName[name] = ports
	registry.Unlock()
}

// PortsAs looks name up and asserts its bundle to T
func PortsAs[T any](name string) (T, bool) {
	registry.RLock()
	v, ok := registry.byName[name]
	registry.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset drops every registration; tests call it between cases
func Reset() {
	registry.Lock()
	registry.byName = map[string]any{}
	registry.Unlock()
}
