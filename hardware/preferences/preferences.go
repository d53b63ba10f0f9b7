// This file is part of hdmitx.
//
// hdmitx is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hdmitx is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hdmitx.  If not, see <https://www.gnu.org/licenses/>.

// Package preferences defines the transmitter preferences. The values are
// stored in the preferences file in the resource directory and can be
// overridden from the command line with prefs.PushCommandLineStack().
package preferences

import (
	"fmt"

	"github.com/jetsetilly/hdmitx/hardware/audio"
	"github.com/jetsetilly/hdmitx/hardware/colour"
	"github.com/jetsetilly/hdmitx/hardware/infoframe"
	"github.com/jetsetilly/hdmitx/paths"
	"github.com/jetsetilly/hdmitx/prefs"
)

// ColorimetryAuto selects the colorimetry from the VIC of the mode.
const ColorimetryAuto = "auto"

// DefaultRegisterBase is the physical address of the transmitter on i.MX6
// parts.
const DefaultRegisterBase = 0x00120000

// Preferences defines and collates all the preference values used by the
// transmitter.
type Preferences struct {
	dsk *prefs.Disk

	// audio sample rate fed to the clock regenerator
	SampleRate prefs.Int

	// percentage applied to CTS. 150 selects the deep colour N values
	Ratio prefs.Int

	Depth        prefs.Int
	InputFormat  prefs.String
	OutputFormat prefs.String
	Colorimetry  prefs.String
	Aspect       prefs.String
	Underscan    prefs.Bool

	// HDCP is never negotiated. the preference only decides whether the HDCP
	// block is configured
	HDCP prefs.Bool

	// names used to open the DDC bus and the HPD pin with the periph
	// registries. empty strings mean the collaborator is not used
	DDCBus prefs.String
	HPDPin prefs.String

	// physical address of the register window
	RegisterBase prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The preferences file is in the resource directory.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	return NewPreferencesFile(pth)
}

// NewPreferencesFile is like NewPreferences but with an explicit path to the
// preferences file.
func NewPreferencesFile(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.SampleRate.SetHookPre(func(v prefs.Value) error {
		if r, ok := v.(int); ok && !audio.IsSupportedRate(r) {
			return fmt.Errorf("unsupported sample rate %d", r)
		}
		return nil
	})

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	for _, e := range []struct {
		key string
		val prefs.Pref
	}{
		{"hdmitx.audio.sampleRate", &p.SampleRate},
		{"hdmitx.audio.ratio", &p.Ratio},
		{"hdmitx.colour.depth", &p.Depth},
		{"hdmitx.colour.input", &p.InputFormat},
		{"hdmitx.colour.output", &p.OutputFormat},
		{"hdmitx.colour.colorimetry", &p.Colorimetry},
		{"hdmitx.avi.aspect", &p.Aspect},
		{"hdmitx.avi.underscan", &p.Underscan},
		{"hdmitx.hdcp", &p.HDCP},
		{"hdmitx.ddc.bus", &p.DDCBus},
		{"hdmitx.hpd.pin", &p.HPDPin},
		{"hdmitx.registerBase", &p.RegisterBase},
	} {
		if err := p.dsk.Add(e.key, e.val); err != nil {
			return nil, fmt.Errorf("preferences: %w", err)
		}
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.SampleRate.Set(48000)
	_ = p.Ratio.Set(audio.DefaultRatio)
	_ = p.Depth.Set(8)
	_ = p.InputFormat.Set(colour.RGB.String())
	_ = p.OutputFormat.Set(colour.RGB.String())
	_ = p.Colorimetry.Set(ColorimetryAuto)
	_ = p.Aspect.Set(infoframe.Aspect4x3.String())
	_ = p.Underscan.Set(false)
	_ = p.HDCP.Set(false)
	_ = p.DDCBus.Set("")
	_ = p.HPDPin.Set("")
	_ = p.RegisterBase.Set(DefaultRegisterBase)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preference values to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// ColourConfig returns the colour configuration for a mode. DVI modes are
// forced to RGB output.
func (p *Preferences) ColourConfig(vic int, dvi bool) (colour.Config, error) {
	in, err := colour.ParseFormat(p.InputFormat.Get().(string))
	if err != nil {
		return colour.Config{}, fmt.Errorf("preferences: %w", err)
	}
	out, err := colour.ParseFormat(p.OutputFormat.Get().(string))
	if err != nil {
		return colour.Config{}, fmt.Errorf("preferences: %w", err)
	}
	if dvi {
		out = colour.RGB
	}

	cfg := colour.Config{
		In:          in,
		Out:         out,
		Depth:       p.Depth.Get().(int),
		Colorimetry: colour.ColorimetryForVIC(vic),
		DVI:         dvi,
	}

	switch c := p.Colorimetry.Get().(string); c {
	case ColorimetryAuto:
	case colour.ITU601.String():
		cfg.Colorimetry = colour.ITU601
	case colour.ITU709.String():
		cfg.Colorimetry = colour.ITU709
	default:
		return colour.Config{}, fmt.Errorf("preferences: unknown colorimetry %q", c)
	}

	return cfg, nil
}

// AspectRatio returns the aspect ratio preference as an infoframe.Aspect.
func (p *Preferences) AspectRatio() infoframe.Aspect {
	if p.Aspect.Get().(string) == infoframe.Aspect16x9.String() {
		return infoframe.Aspect16x9
	}
	return infoframe.Aspect4x3
}
