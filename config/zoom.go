// SPDX-License-Identifier: Unlicense OR MIT

package config

// ZoomMovement names how the zoomed viewport follows focus, matching
// niri-config/src/zoom.rs's `ZoomMovement` enum.
type ZoomMovement string

const (
	ZoomMovementInstant ZoomMovement = "instant"
	ZoomMovementSmooth  ZoomMovement = "smooth"
)

// Zoom is the top-level zoom.* config tree (spec §6).
type Zoom struct {
	DefaultFactor float64      `yaml:"default-factor"`
	Movement      ZoomMovement `yaml:"movement"`
	Threshold     float64      `yaml:"threshold"`
}

// ZoomPart is Zoom's partial-override counterpart.
type ZoomPart struct {
	DefaultFactor *float64      `yaml:"default-factor"`
	Movement      *ZoomMovement `yaml:"movement"`
	Threshold     *float64      `yaml:"threshold"`
}

func defaultZoom() Zoom {
	return Zoom{
		DefaultFactor: 2,
		Movement:      ZoomMovementSmooth,
		Threshold:     0.1,
	}
}

func (z *Zoom) mergeWith(p ZoomPart) {
	if p.DefaultFactor != nil {
		z.DefaultFactor = *p.DefaultFactor
	}
	if p.Movement != nil {
		z.Movement = *p.Movement
	}
	if p.Threshold != nil {
		z.Threshold = *p.Threshold
	}
}
