package modkit

import (
	"reflect"
	"sync"
)

// PortsOf extracts a T from a module's Ports() value. A direct assertion
// is tried first, then every exported field of a struct bundle
func PortsOf[T any](m Module) (T, bool) {
	if v, ok := m.Ports().(T); ok {
		return v, true
	}
	return bundleField[T](m.Ports())
}

// MustPortsOf is PortsOf for bootstrap paths where a missing port is a
// wiring bug, not a condition to handle
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("modkit: module " + m.Name() + " exposes no such port")
	}
	return v
}

func bundleField[T any](bundle any) (t T, ok bool) {
	rv := reflect.ValueOf(bundle)
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return t, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return t, false
}

// portReg is the process-global registry modules publish their ports to
// during bootstrap, keyed by module name. Single-process wiring only
var portReg = struct {
	sync.RWMutex
	byName map[string]any
}{byName: map[string]any{}}

// Register stores a module's port bundle under its name, replacing any
// earlier registration
func Register(name string, ports any) {
	portReg.Lock()
	portReg.byName[name] = ports
	portReg.Unlock()
}

// PortsAs fetches the bundle registered under name as a T
func PortsAs[T any](name string) (T, bool) {
	portReg.RLock()
	v, ok := portReg.byName[name]
	portReg.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Reset empties the registry between tests
func Reset() {
	portReg.Lock()
	clear(portReg.byName)
	portReg.Unlock()
}
