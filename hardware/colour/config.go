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

// Package colour configures the colour pipeline of the transmitter: the
// video sampler input mapping, the colour space converter and the video
// packetizer.
//
// A Config describes the input and output formats for one bring-up. The
// functions in this package are stateless. They validate the Config before
// writing to any register.
package colour

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. All of them are invalid-parameter errors and are returned
// before any register is written.
var (
	ErrUnsupportedDepth  = errors.New("unsupported colour depth")
	ErrUnsupportedFormat = errors.New("unsupported colour format")
	ErrInvalidConfig     = errors.New("invalid colour configuration")
)

// Format of the pixel data.
type Format int

// List of valid Format values.
const (
	RGB Format = iota
	YCbCr444
	YCbCr422
	XVYCC444
)

func (f Format) String() string {
	switch f {
	case RGB:
		return "RGB"
	case YCbCr444:
		return "YCbCr444"
	case YCbCr422:
		return "YCbCr422"
	case XVYCC444:
		return "xvYCC444"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat is the inverse of Format.String(). Matching is case insensitive.
func ParseFormat(s string) (Format, error) {
	for _, f := range []Format{RGB, YCbCr444, YCbCr422, XVYCC444} {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return RGB, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Colorimetry of YCbCr data.
type Colorimetry int

// List of valid Colorimetry values.
const (
	ITU601 Colorimetry = iota
	ITU709
)

func (c Colorimetry) String() string {
	if c == ITU601 {
		return "ITU601"
	}
	return "ITU709"
}

// the standard definition VICs use ITU601. everything else uses ITU709
var itu601VICs = map[int]bool{
	2: true, 3: true, 6: true, 7: true, 17: true, 18: true, 21: true, 22: true,
}

// ColorimetryForVIC returns the colorimetry used by a CEA mode.
func ColorimetryForVIC(vic int) Colorimetry {
	if itu601VICs[vic] {
		return ITU601
	}
	return ITU709
}

// Config is the colour configuration for one bring-up.
type Config struct {
	In          Format
	Out         Format
	Depth       int
	Colorimetry Colorimetry

	// the desired pixel repetition factor of the packetizer
	PixelRepetition int

	// DVI sinks only accept RGB
	DVI bool
}

func (cfg Config) String() string {
	return fmt.Sprintf("%s -> %s %d-bit %s", cfg.In, cfg.Out, cfg.Depth, cfg.Colorimetry)
}

// IsConversion returns true if the input and output formats differ.
func (cfg Config) IsConversion() bool {
	return cfg.In != cfg.Out
}

// IsDecimation returns true if 4:4:4 input is decimated to 4:2:2 output.
func (cfg Config) IsDecimation() bool {
	return cfg.Out == YCbCr422 && (cfg.In == RGB || cfg.In == YCbCr444)
}

// IsInterpolation returns true if 4:2:2 input is interpolated to 4:4:4
// output.
func (cfg Config) IsInterpolation() bool {
	return cfg.In == YCbCr422 && (cfg.Out == RGB || cfg.Out == YCbCr444)
}

// Validate returns an error if the configuration cannot be programmed.
func (cfg Config) Validate() error {
	if _, err := DataMap(cfg.In, cfg.Depth); err != nil {
		return err
	}
	if _, err := packetizing(cfg); err != nil {
		return err
	}
	if cfg.DVI && cfg.Out != RGB {
		return fmt.Errorf("%w: DVI requires RGB (%s)", ErrInvalidConfig, cfg)
	}
	if cfg.IsDecimation() && cfg.IsInterpolation() {
		return fmt.Errorf("%w: decimation and interpolation (%s)", ErrInvalidConfig, cfg)
	}
	if cfg.PixelRepetition < 0 || cfg.PixelRepetition > 0x0f {
		return fmt.Errorf("%w: pixel repetition %d", ErrInvalidConfig, cfg.PixelRepetition)
	}
	return nil
}
