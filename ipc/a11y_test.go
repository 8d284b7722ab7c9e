// SPDX-License-Identifier: Unlicense OR MIT

package ipc

import (
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
)

const testSender = dbus.Sender(":1.1")

func TestGrabbedClientBlocksUngrabbedKey(t *testing.T) {
	k := NewKeyboardMonitor()
	if err := k.GrabKeyboard(testSender); err != nil {
		t.Fatalf("GrabKeyboard: %v", err)
	}

	got := k.ProcessKey(25*time.Millisecond, 0, false, 0, 'a', 0, 0, nil)
	if got != KeyBlocked {
		t.Fatalf("ProcessKey = %v, want KeyBlocked", got)
	}
}

func TestUngrabbedClientPassesKey(t *testing.T) {
	k := NewKeyboardMonitor()
	got := k.ProcessKey(25*time.Millisecond, 0, false, 0, 'a', 0, 0, nil)
	if got != KeyPass {
		t.Fatalf("ProcessKey = %v, want KeyPass", got)
	}
}

func TestWatchedClientReceivesEventWithoutBlocking(t *testing.T) {
	k := NewKeyboardMonitor()
	if err := k.WatchKeyboard(testSender); err != nil {
		t.Fatalf("WatchKeyboard: %v", err)
	}

	var emitted bool
	got := k.ProcessKey(25*time.Millisecond, 0, false, 0, 'a', 0, 0, func(sender dbus.Sender, released bool, mods, keysym, unichar uint32, keycode uint16) {
		emitted = true
		if sender != testSender {
			t.Errorf("sender = %v, want %v", sender, testSender)
		}
	})
	if got != KeyPass {
		t.Errorf("ProcessKey = %v, want KeyPass for a watch-only client", got)
	}
	if !emitted {
		t.Error("expected KeyEvent to be emitted to the watching client")
	}
}

func TestSetKeyGrabsGrabsSpecificModifier(t *testing.T) {
	k := NewKeyboardMonitor()
	const superL = 0xffeb
	if err := k.SetKeyGrabs(testSender, []uint32{superL}, nil); err != nil {
		t.Fatalf("SetKeyGrabs: %v", err)
	}

	if got := k.ProcessKey(25*time.Millisecond, 0, false, 0, superL, 0, 0, nil); got != KeyBlockModifierFirstPress {
		t.Errorf("first press = %v, want KeyBlockModifierFirstPress", got)
	}

	if got := k.ProcessKey(25*time.Millisecond, 10*time.Millisecond, true, 0, superL, 0, 0, nil); got != KeyBlocked {
		t.Errorf("matching release = %v, want KeyBlocked", got)
	}
}

func TestDoublePressOfGrabbedModifierPassesThrough(t *testing.T) {
	k := NewKeyboardMonitor()
	const superL = 0xffeb
	if err := k.SetKeyGrabs(testSender, []uint32{superL}, nil); err != nil {
		t.Fatalf("SetKeyGrabs: %v", err)
	}

	k.ProcessKey(25*time.Millisecond, 0, false, 0, superL, 0, 0, nil)
	k.ProcessKey(25*time.Millisecond, 10*time.Millisecond, true, 0, superL, 0, 0, nil)

	got := k.ProcessKey(25*time.Millisecond, 20*time.Millisecond, false, 0, superL, 0, 0, nil)
	if got != KeyPass {
		t.Errorf("second press within repeat delay = %v, want KeyPass", got)
	}
}

func TestUngrabKeyboardStopsBlocking(t *testing.T) {
	k := NewKeyboardMonitor()
	if err := k.GrabKeyboard(testSender); err != nil {
		t.Fatalf("GrabKeyboard: %v", err)
	}
	if err := k.UngrabKeyboard(testSender); err != nil {
		t.Fatalf("UngrabKeyboard: %v", err)
	}

	got := k.ProcessKey(25*time.Millisecond, 0, false, 0, 'a', 0, 0, nil)
	if got != KeyPass {
		t.Errorf("ProcessKey after ungrab = %v, want KeyPass", got)
	}
}

func TestRemoveClientClearsGrabbedMods(t *testing.T) {
	k := NewKeyboardMonitor()
	const superL = 0xffeb
	if err := k.SetKeyGrabs(testSender, []uint32{superL}, nil); err != nil {
		t.Fatalf("SetKeyGrabs: %v", err)
	}
	k.RemoveClient(testSender)

	if _, ok := k.grabbedMods[superL]; ok {
		t.Error("grabbed modifier should be cleared after client removal")
	}
}
