// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads and merges the compositor's YAML configuration
// tree (spec §6), using gopkg.in/yaml.v3 the way the ambient stack
// calls for (SPEC_FULL §2). Every field is a pointer or a named
// "Part" substruct so a reload can be merged over live defaults
// without clobbering unset keys, matching the teacher's merge-part
// convention.
package config

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the fully resolved, defaulted configuration tree.
type Config struct {
	Animations Animations `yaml:"animations"`
	Layout     Layout     `yaml:"layout"`
	Cursor     Cursor     `yaml:"cursor"`
	Overview   Overview   `yaml:"overview"`
	Zoom       Zoom       `yaml:"zoom"`
}

// Default returns the configuration tree with every field at its
// built-in default, mirroring the defaults each of niri-config's
// `Default` impls hard-codes.
func Default() Config {
	return Config{
		Animations: defaultAnimations(),
		Layout:     defaultLayout(),
		Cursor:     defaultCursor(),
		Overview:   defaultOverview(),
		Zoom:       defaultZoom(),
	}
}

// Parse parses YAML bytes into a Config, starting from Default() and
// overwriting only the fields present in the document (spec §6
// "partial override" semantics, via Part merging below).
func Parse(data []byte) (Config, error) {
	var part Part
	if err := yaml.Unmarshal(data, &part); err != nil {
		return Config{}, errors.Wrap(err, "config: parsing yaml")
	}
	c := Default()
	c.mergeWith(part)
	return c, nil
}

// Marshal serializes c back to YAML, for the round-trip property spec
// §8 requires (parse → re-serialize → parse yields the same Config).
func Marshal(c Config) ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "config: marshaling yaml")
	}
	return out, nil
}

// Part is the partial-override shape a document parses into: every
// leaf is an Option-like pointer, absent unless the document set it.
type Part struct {
	Animations *AnimationsPart `yaml:"animations"`
	Layout     *LayoutPart     `yaml:"layout"`
	Cursor     *CursorPart     `yaml:"cursor"`
	Overview   *OverviewPart   `yaml:"overview"`
	Zoom       *ZoomPart       `yaml:"zoom"`
}

func (c *Config) mergeWith(p Part) {
	if p.Animations != nil {
		c.Animations.mergeWith(*p.Animations)
	}
	if p.Layout != nil {
		c.Layout.mergeWith(*p.Layout)
	}
	if p.Cursor != nil {
		c.Cursor.mergeWith(*p.Cursor)
	}
	if p.Overview != nil {
		c.Overview.mergeWith(*p.Overview)
	}
	if p.Zoom != nil {
		c.Zoom.mergeWith(*p.Zoom)
	}
}
