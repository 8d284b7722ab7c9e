// SPDX-License-Identifier: Unlicense OR MIT

package config

// Cursor is the top-level cursor.* config tree (spec §6), field names
// and defaults ported from niri-config/src/misc.rs's `Cursor`.
type Cursor struct {
	XCursorTheme       string `yaml:"xcursor-theme"`
	XCursorSize        int    `yaml:"xcursor-size"`
	HideWhenTyping     bool   `yaml:"hide-when-typing"`
	HideAfterInactiveMS *int  `yaml:"hide-after-inactive-ms,omitempty"`
	ScaleWithZoom      bool   `yaml:"scale-with-zoom"`
}

// CursorPart is Cursor's partial-override counterpart.
type CursorPart struct {
	XCursorTheme        *string `yaml:"xcursor-theme"`
	XCursorSize         *int    `yaml:"xcursor-size"`
	HideWhenTyping      *bool   `yaml:"hide-when-typing"`
	HideAfterInactiveMS *int    `yaml:"hide-after-inactive-ms,omitempty"`
	ScaleWithZoom       *bool   `yaml:"scale-with-zoom"`
}

func defaultCursor() Cursor {
	return Cursor{
		XCursorTheme: "default",
		XCursorSize:  24,
	}
}

func (c *Cursor) mergeWith(p CursorPart) {
	if p.XCursorTheme != nil {
		c.XCursorTheme = *p.XCursorTheme
	}
	if p.XCursorSize != nil {
		c.XCursorSize = *p.XCursorSize
	}
	if p.HideWhenTyping != nil {
		c.HideWhenTyping = *p.HideWhenTyping
	}
	if p.HideAfterInactiveMS != nil {
		c.HideAfterInactiveMS = p.HideAfterInactiveMS
	}
	if p.ScaleWithZoom != nil {
		c.ScaleWithZoom = *p.ScaleWithZoom
	}
}
