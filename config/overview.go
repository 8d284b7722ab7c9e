// SPDX-License-Identifier: Unlicense OR MIT

package config

// Color is an RGBA color stored as four 0-1 channel values, matching
// the YAML representation the teacher's config stack favors for
// human-editable color fields.
type Color struct {
	R, G, B, A float64
}

// WorkspaceShadow configures the drop shadow drawn behind an overview
// workspace thumbnail.
type WorkspaceShadow struct {
	Off   bool    `yaml:"off"`
	Color Color   `yaml:"color"`
}

// Overview is the top-level overview.* config tree (spec §6).
type Overview struct {
	Zoom            float64         `yaml:"zoom"`
	BackdropColor   Color           `yaml:"backdrop-color"`
	WorkspaceShadow WorkspaceShadow `yaml:"workspace-shadow"`
}

// OverviewPart is Overview's partial-override counterpart.
type OverviewPart struct {
	Zoom            *float64         `yaml:"zoom"`
	BackdropColor   *Color           `yaml:"backdrop-color"`
	WorkspaceShadow *WorkspaceShadow `yaml:"workspace-shadow"`
}

func defaultOverview() Overview {
	return Overview{
		Zoom:          0.5,
		BackdropColor: Color{R: 0.15, G: 0.15, B: 0.15, A: 1},
	}
}

func (o *Overview) mergeWith(p OverviewPart) {
	if p.Zoom != nil {
		o.Zoom = *p.Zoom
	}
	if p.BackdropColor != nil {
		o.BackdropColor = *p.BackdropColor
	}
	if p.WorkspaceShadow != nil {
		o.WorkspaceShadow = *p.WorkspaceShadow
	}
}
