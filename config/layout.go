// SPDX-License-Identifier: Unlicense OR MIT

package config

// CenterFocusedColumn names the layout.center-focused-column config
// value (spec §6).
type CenterFocusedColumn string

const (
	CenterNever      CenterFocusedColumn = "never"
	CenterOnOverflow CenterFocusedColumn = "on-overflow"
	CenterAlways     CenterFocusedColumn = "always"
)

// PresetWidth is one entry in layout.preset-column-widths: either a
// proportion of the view or a fixed pixel width.
type PresetWidth struct {
	Proportion *float64 `yaml:"proportion,omitempty"`
	Fixed      *float64 `yaml:"fixed,omitempty"`
}

// Struts configures reserved output edges (spec glossary "Struts").
type Struts struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// Border configures the decoration border drawn around a tile.
type Border struct {
	Off   bool    `yaml:"off"`
	Width float64 `yaml:"width"`
}

// Layout is the top-level layout.* config tree (spec §6).
type Layout struct {
	Gaps                float64             `yaml:"gaps"`
	DefaultColumnWidth  PresetWidth         `yaml:"default-column-width"`
	PresetColumnWidths  []PresetWidth       `yaml:"preset-column-widths"`
	CenterFocusedColumn CenterFocusedColumn `yaml:"center-focused-column"`
	Struts              Struts              `yaml:"struts"`
	RightToLeft         bool                `yaml:"right-to-left"`
	Border              Border              `yaml:"border"`
}

// LayoutPart is Layout's partial-override counterpart.
type LayoutPart struct {
	Gaps                *float64             `yaml:"gaps"`
	DefaultColumnWidth   *PresetWidth         `yaml:"default-column-width"`
	PresetColumnWidths   *[]PresetWidth       `yaml:"preset-column-widths"`
	CenterFocusedColumn  *CenterFocusedColumn `yaml:"center-focused-column"`
	Struts               *Struts              `yaml:"struts"`
	RightToLeft          *bool                `yaml:"right-to-left"`
	Border               *Border              `yaml:"border"`
}

func defaultLayout() Layout {
	half := 0.5
	return Layout{
		Gaps:                16,
		DefaultColumnWidth:  PresetWidth{Proportion: &half},
		PresetColumnWidths:  []PresetWidth{},
		CenterFocusedColumn: CenterNever,
		Border:              Border{Off: true, Width: 4},
	}
}

func (l *Layout) mergeWith(p LayoutPart) {
	if p.Gaps != nil {
		l.Gaps = *p.Gaps
	}
	if p.DefaultColumnWidth != nil {
		l.DefaultColumnWidth = *p.DefaultColumnWidth
	}
	if p.PresetColumnWidths != nil {
		l.PresetColumnWidths = *p.PresetColumnWidths
	}
	if p.CenterFocusedColumn != nil {
		l.CenterFocusedColumn = *p.CenterFocusedColumn
	}
	if p.Struts != nil {
		l.Struts = *p.Struts
	}
	if p.RightToLeft != nil {
		l.RightToLeft = *p.RightToLeft
	}
	if p.Border != nil {
		l.Border = *p.Border
	}
}
