// SPDX-License-Identifier: Unlicense OR MIT

package ipc

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

type fakeWindowSource map[uint64]WindowProperties

func (f fakeWindowSource) Windows() map[uint64]WindowProperties { return f }

func TestGetWindowsMarshalsTitleAndAppID(t *testing.T) {
	src := fakeWindowSource{
		7: {Title: "Terminal", AppID: "org.example.Terminal"},
	}
	i := NewIntrospect(src)

	got, dbusErr := i.GetWindows()
	if dbusErr != nil {
		t.Fatalf("GetWindows: %v", dbusErr)
	}
	win, ok := got[7]
	if !ok {
		t.Fatal("window 7 missing from result")
	}
	if win["title"] != dbus.MakeVariant("Terminal") {
		t.Errorf("title = %v, want Terminal", win["title"])
	}
	if win["app-id"] != dbus.MakeVariant("org.example.Terminal") {
		t.Errorf("app-id = %v, want org.example.Terminal", win["app-id"])
	}
}

func TestGetWindowsEmptySource(t *testing.T) {
	i := NewIntrospect(fakeWindowSource{})
	got, dbusErr := i.GetWindows()
	if dbusErr != nil {
		t.Fatalf("GetWindows: %v", dbusErr)
	}
	if len(got) != 0 {
		t.Errorf("len(got) = %d, want 0", len(got))
	}
}

func TestNotifyWindowsChangedNoopBeforeStart(t *testing.T) {
	i := NewIntrospect(fakeWindowSource{})
	if err := i.NotifyWindowsChanged(); err != nil {
		t.Errorf("NotifyWindowsChanged before Start: %v", err)
	}
}
