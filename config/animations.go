// SPDX-License-Identifier: Unlicense OR MIT

package config

// Curve names an easing shape, matching spec §4.2's Curve enum.
type Curve string

const (
	CurveLinear      Curve = "linear"
	CurveEaseOutQuad Curve = "ease-out-quad"
	CurveEaseOutCubic Curve = "ease-out-cubic"
	CurveEaseOutExpo Curve = "ease-out-expo"
)

// EasingParams configures an Easing-kind animation.
type EasingParams struct {
	DurationMS int64 `yaml:"duration-ms"`
	Curve      Curve `yaml:"curve"`
}

// SpringParams configures a Spring-kind animation.
type SpringParams struct {
	DampingRatio float64 `yaml:"damping-ratio"`
	Stiffness    int     `yaml:"stiffness"`
	Epsilon      float64 `yaml:"epsilon,omitempty"`
}

// Animation is one configurable animation slot: off, or driven by
// either easing or spring parameters (mutually exclusive, like the
// original's enum `Kind`).
type Animation struct {
	Off    bool          `yaml:"off"`
	Easing *EasingParams `yaml:"easing,omitempty"`
	Spring *SpringParams `yaml:"spring,omitempty"`
}

// AnimationPart is Animation's partial-override counterpart.
type AnimationPart struct {
	Off    *bool         `yaml:"off"`
	Easing *EasingParams `yaml:"easing,omitempty"`
	Spring *SpringParams `yaml:"spring,omitempty"`
}

func (a *Animation) mergeWith(p AnimationPart) {
	if p.Off != nil {
		a.Off = *p.Off
	}
	if p.Easing != nil {
		a.Easing = p.Easing
	}
	if p.Spring != nil {
		a.Spring = p.Spring
	}
}

// Animations is the top-level animations.* config tree (spec §6),
// naming each per-effect animation the same way
// niri-config/src/animations.rs does.
type Animations struct {
	Off      bool    `yaml:"off"`
	Slowdown float64 `yaml:"slowdown"`

	WorkspaceSwitch          Animation `yaml:"workspace-switch"`
	WindowOpen               Animation `yaml:"window-open"`
	WindowClose              Animation `yaml:"window-close"`
	HorizontalViewMovement   Animation `yaml:"horizontal-view-movement"`
	WindowMovement           Animation `yaml:"window-movement"`
	WindowResize             Animation `yaml:"window-resize"`
	ConfigNotificationOpenClose Animation `yaml:"config-notification-open-close"`
	ScreenshotUiOpen         Animation `yaml:"screenshot-ui-open"`
	OverviewOpenClose        Animation `yaml:"overview-open-close"`
}

// AnimationsPart is Animations' partial-override counterpart.
type AnimationsPart struct {
	Off      *bool    `yaml:"off"`
	Slowdown *float64 `yaml:"slowdown"`

	WorkspaceSwitch          *AnimationPart `yaml:"workspace-switch"`
	WindowOpen               *AnimationPart `yaml:"window-open"`
	WindowClose              *AnimationPart `yaml:"window-close"`
	HorizontalViewMovement   *AnimationPart `yaml:"horizontal-view-movement"`
	WindowMovement           *AnimationPart `yaml:"window-movement"`
	WindowResize             *AnimationPart `yaml:"window-resize"`
	ConfigNotificationOpenClose *AnimationPart `yaml:"config-notification-open-close"`
	ScreenshotUiOpen         *AnimationPart `yaml:"screenshot-ui-open"`
	OverviewOpenClose        *AnimationPart `yaml:"overview-open-close"`
}

func defaultAnimations() Animations {
	return Animations{
		Off:      false,
		Slowdown: 1,
		WorkspaceSwitch: Animation{
			Spring: &SpringParams{DampingRatio: 1, Stiffness: 1000},
		},
		WindowOpen: Animation{
			Easing: &EasingParams{DurationMS: 150, Curve: CurveEaseOutExpo},
		},
		WindowClose: Animation{
			Easing: &EasingParams{DurationMS: 150, Curve: CurveEaseOutQuad},
		},
		HorizontalViewMovement: Animation{
			Spring: &SpringParams{DampingRatio: 1, Stiffness: 800},
		},
		WindowMovement: Animation{
			Spring: &SpringParams{DampingRatio: 1, Stiffness: 800},
		},
		WindowResize: Animation{
			Spring: &SpringParams{DampingRatio: 1, Stiffness: 800},
		},
		ConfigNotificationOpenClose: Animation{
			Spring: &SpringParams{DampingRatio: 0.6, Stiffness: 1000},
		},
		ScreenshotUiOpen: Animation{
			Easing: &EasingParams{DurationMS: 200, Curve: CurveEaseOutQuad},
		},
		OverviewOpenClose: Animation{
			Spring: &SpringParams{DampingRatio: 1, Stiffness: 800},
		},
	}
}

func (a *Animations) mergeWith(p AnimationsPart) {
	if p.Off != nil {
		a.Off = *p.Off
	}
	if p.Slowdown != nil {
		a.Slowdown = *p.Slowdown
	}
	mergeAnim(&a.WorkspaceSwitch, p.WorkspaceSwitch)
	mergeAnim(&a.WindowOpen, p.WindowOpen)
	mergeAnim(&a.WindowClose, p.WindowClose)
	mergeAnim(&a.HorizontalViewMovement, p.HorizontalViewMovement)
	mergeAnim(&a.WindowMovement, p.WindowMovement)
	mergeAnim(&a.WindowResize, p.WindowResize)
	mergeAnim(&a.ConfigNotificationOpenClose, p.ConfigNotificationOpenClose)
	mergeAnim(&a.ScreenshotUiOpen, p.ScreenshotUiOpen)
	mergeAnim(&a.OverviewOpenClose, p.OverviewOpenClose)
}

func mergeAnim(a *Animation, p *AnimationPart) {
	if p != nil {
		a.mergeWith(*p)
	}
}
