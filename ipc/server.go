// SPDX-License-Identifier: Unlicense OR MIT

package ipc

import "github.com/godbus/dbus/v5"

// Servers holds every session-bus connection the compositor keeps
// open, mirroring the original's DBusServers struct: one optional
// connection per interface, started independently so a single
// interface failing to claim its bus name doesn't take the others
// down with it.
type Servers struct {
	Introspect      *dbus.Conn
	KeyboardMonitor *dbus.Conn
}

// StartServers starts every IPC interface against source and monitor,
// logging (via the caller-supplied onError) and continuing past any
// individual interface that fails to start, the way the original
// dbus module's try_start does for each of its interfaces.
func StartServers(source WindowSource, monitor *KeyboardMonitor, onError func(iface string, err error)) *Servers {
	var s Servers

	introspect := NewIntrospect(source)
	if conn, err := introspect.Start(); err != nil {
		if onError != nil {
			onError("org.gnome.Shell.Introspect", err)
		}
	} else {
		s.Introspect = conn
	}

	if monitor != nil {
		if conn, err := monitor.Start(); err != nil {
			if onError != nil {
				onError("org.freedesktop.a11y.Manager", err)
			}
		} else {
			s.KeyboardMonitor = conn
		}
	}

	return &s
}

// Close tears down every connection that was successfully started.
func (s *Servers) Close() {
	if s.Introspect != nil {
		s.Introspect.Close()
	}
	if s.KeyboardMonitor != nil {
		s.KeyboardMonitor.Close()
	}
}
