// SPDX-License-Identifier: Unlicense OR MIT

package ipc

import (
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	a11yBusName    = "org.freedesktop.a11y.Manager"
	a11yObjectPath = dbus.ObjectPath("/org/freedesktop/a11y/Manager")
	a11yIfaceName  = "org.freedesktop.a11y.KeyboardMonitor"
)

// KeyBlock tells the caller of ProcessKey whether normal key handling
// should be suppressed for an assistive-technology keyboard grab, and
// if so, whether this is the grabbed modifier's first press (which
// must still be passed through once if not followed by a second press
// within the repeat delay, per the interface's own double-press rule).
type KeyBlock uint8

const (
	KeyPass KeyBlock = iota
	KeyBlockModifierFirstPress
	KeyBlocked
)

type a11yClient struct {
	watched    bool
	grabbed    bool
	modifiers  map[uint32]struct{}
	keystrokes map[[2]uint32]struct{}
}

// KeyboardMonitor implements org.freedesktop.a11y.KeyboardMonitor: the
// interface assistive technologies use to grab or watch keyboard
// input ahead of normal compositor handling.
type KeyboardMonitor struct {
	mu sync.Mutex

	clients map[dbus.Sender]*a11yClient

	grabbedMods       map[uint32]struct{}
	grabbedModLastHit map[uint32]time.Duration
	suppressed        map[uint32]struct{}

	conn *dbus.Conn
}

// NewKeyboardMonitor returns an unstarted monitor with no clients.
func NewKeyboardMonitor() *KeyboardMonitor {
	return &KeyboardMonitor{
		clients:           make(map[dbus.Sender]*a11yClient),
		grabbedMods:       make(map[uint32]struct{}),
		grabbedModLastHit: make(map[uint32]time.Duration),
		suppressed:        make(map[uint32]struct{}),
	}
}

func (k *KeyboardMonitor) client(sender dbus.Sender) *a11yClient {
	c, ok := k.clients[sender]
	if !ok {
		c = &a11yClient{modifiers: make(map[uint32]struct{}), keystrokes: make(map[[2]uint32]struct{})}
		k.clients[sender] = c
	}
	return c
}

func (k *KeyboardMonitor) rebuildGrabbedMods() {
	k.grabbedMods = make(map[uint32]struct{})
	for _, c := range k.clients {
		for m := range c.modifiers {
			k.grabbedMods[m] = struct{}{}
		}
	}
}

// GrabKeyboard implements the GrabKeyboard D-Bus method.
func (k *KeyboardMonitor) GrabKeyboard(sender dbus.Sender) *dbus.Error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.client(sender).grabbed = true
	return nil
}

// UngrabKeyboard implements the UngrabKeyboard D-Bus method.
func (k *KeyboardMonitor) UngrabKeyboard(sender dbus.Sender) *dbus.Error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if c, ok := k.clients[sender]; ok {
		c.grabbed = false
	}
	return nil
}

// WatchKeyboard implements the WatchKeyboard D-Bus method.
func (k *KeyboardMonitor) WatchKeyboard(sender dbus.Sender) *dbus.Error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.client(sender).watched = true
	return nil
}

// UnwatchKeyboard implements the UnwatchKeyboard D-Bus method.
func (k *KeyboardMonitor) UnwatchKeyboard(sender dbus.Sender) *dbus.Error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if c, ok := k.clients[sender]; ok {
		c.watched = false
	}
	return nil
}

// SetKeyGrabs implements the SetKeyGrabs D-Bus method.
func (k *KeyboardMonitor) SetKeyGrabs(sender dbus.Sender, modifiers []uint32, keystrokes [][2]uint32) *dbus.Error {
	k.mu.Lock()
	defer k.mu.Unlock()

	c := k.client(sender)
	c.modifiers = make(map[uint32]struct{}, len(modifiers))
	for _, m := range modifiers {
		c.modifiers[m] = struct{}{}
	}
	c.keystrokes = make(map[[2]uint32]struct{}, len(keystrokes))
	for _, ks := range keystrokes {
		c.keystrokes[ks] = struct{}{}
	}
	k.rebuildGrabbedMods()
	return nil
}

func (c *a11yClient) shouldGrab(suppressed map[uint32]struct{}, mods, keysym uint32) bool {
	if c.grabbed {
		return true
	}
	for m := range c.modifiers {
		if m == keysym {
			return true
		}
		if _, ok := suppressed[m]; ok {
			return true
		}
	}
	if _, ok := c.keystrokes[[2]uint32{keysym, mods}]; ok {
		return true
	}
	return false
}

func (c *a11yClient) shouldWatch(suppressed map[uint32]struct{}, mods, keysym uint32) bool {
	return c.watched || c.shouldGrab(suppressed, mods, keysym)
}

// ProcessKey runs one key event through every registered client's
// grab/watch rules and returns whether normal key handling should be
// suppressed. emit is called once per client that should receive the
// event via the KeyEvent signal, letting the caller own the actual
// D-Bus emission.
func (k *KeyboardMonitor) ProcessKey(repeatDelay, now time.Duration, released bool, mods, keysym uint32, unichar uint32, keycode uint16, emit func(sender dbus.Sender, released bool, mods, keysym, unichar uint32, keycode uint16)) KeyBlock {
	k.mu.Lock()
	defer k.mu.Unlock()

	for sender, c := range k.clients {
		if c.shouldWatch(k.suppressed, mods, keysym) && emit != nil {
			emit(sender, released, mods, keysym, unichar, keycode)
		}
	}

	if _, grabbedMod := k.grabbedMods[keysym]; grabbedMod {
		if released {
			if _, wasSuppressed := k.suppressed[keysym]; !wasSuppressed {
				return KeyPass
			}
		} else {
			last, seen := k.grabbedModLastHit[keysym]
			k.grabbedModLastHit[keysym] = now
			if seen && now <= last+repeatDelay {
				return KeyPass
			}
		}
	}

	block := false
	if released {
		if _, ok := k.suppressed[keysym]; ok {
			delete(k.suppressed, keysym)
			block = true
		}
	} else if _, ok := k.suppressed[keysym]; ok {
		block = true
	} else {
		for _, c := range k.clients {
			if c.shouldGrab(k.suppressed, mods, keysym) {
				k.suppressed[keysym] = struct{}{}
				block = true
				break
			}
		}
	}

	if !block {
		return KeyPass
	}
	if _, grabbedMod := k.grabbedMods[keysym]; grabbedMod && !released {
		return KeyBlockModifierFirstPress
	}
	return KeyBlocked
}

// RemoveClient drops a client's state, used when its bus connection
// closes (NameOwnerChanged with no new owner).
func (k *KeyboardMonitor) RemoveClient(sender dbus.Sender) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.clients, sender)
	k.rebuildGrabbedMods()
}

// Start publishes the interface on the session bus.
func (k *KeyboardMonitor) Start() (*dbus.Conn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	if err := conn.Export(k, a11yObjectPath, a11yIfaceName); err != nil {
		conn.Close()
		return nil, err
	}
	reply, err := conn.RequestName(a11yBusName, dbus.NameFlagReplaceExisting|dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner && reply != dbus.RequestNameReplyAlreadyOwner {
		conn.Close()
		return nil, errNameTaken
	}
	k.mu.Lock()
	k.conn = conn
	k.mu.Unlock()
	return conn, nil
}
