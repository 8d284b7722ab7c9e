// SPDX-License-Identifier: Unlicense OR MIT

package cast

import "github.com/sciurus-wm/corium/geom"

// CursorMode selects how a stream's consumer wants to receive cursor
// imagery, mirroring the three modes `org.gnome.Mutter.ScreenCast`
// exposes on its RecordMonitor/RecordWindow calls (spec §4.8).
type CursorMode uint8

const (
	// CursorHidden omits the cursor from the stream entirely.
	CursorHidden CursorMode = iota
	// CursorEmbedded draws the cursor directly into the video buffer.
	CursorEmbedded
	// CursorMetadata sends cursor position/hotspot out of band,
	// alongside the video buffer, leaving drawing to the consumer.
	CursorMetadata
)

// CursorMetadataFrame is the out-of-band cursor payload sent alongside
// a buffer when CursorMode is CursorMetadata.
type CursorMetadataFrame struct {
	Position geom.Point
	Hotspot  geom.Point
	// Visible is false when the cursor has left the captured region;
	// consumers should stop drawing it until it becomes true again.
	Visible bool
}

// RelocatedCursor computes the cursor's position relative to a
// captured region's origin, for CursorEmbedded mode where the cursor
// must be drawn at a coordinate local to the stream rather than the
// output (spec §9 wm/render "RelocatedCursorElement").
func RelocatedCursor(outputPos geom.Point, regionOrigin geom.Point) geom.Point {
	return outputPos.Sub(regionOrigin)
}
