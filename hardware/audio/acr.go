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

// Package audio programs the audio clock regenerator. The sink recovers the
// audio sample clock from the TMDS clock using the N and CTS values sent in
// the audio clock regeneration packets.
//
// N is chosen from a table of recommended values for the sample rate and
// pixel clock. CTS is only known for the standard TMDS clocks. For all other
// pixel clocks CTS is zero, the regenerator is left alone and audio is not
// sent.
package audio

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/hdmitx/hardware/clocks"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/logger"
)

// ErrUnsupportedClock is returned by Update() when there is no CTS value for
// the pixel clock. It is not fatal to a bring-up.
var ErrUnsupportedClock = errors.New("pixel clock not supported by audio clock regenerator")

// DefaultRatio is a ratio of one hundred percent.
const DefaultRatio = 100

// the ratio that selects the alternative N values
const deepRatio = 150

// SampleRates is the list of sample rates with entries in the N table.
var SampleRates = []int{32000, 44100, 48000, 88200, 96000, 176400, 192000}

// IsSupportedRate returns true if the sample rate is in SampleRates.
func IsSupportedRate(freq int) bool {
	for _, r := range SampleRates {
		if r == freq {
			return true
		}
	}
	return false
}

func alt(ratio int, a int, b int) int {
	if ratio == deepRatio {
		return a
	}
	return b
}

// ComputeN returns the N value for the sample rate and pixel clock.
func ComputeN(freq int, pixelClock int, ratio int) int {
	n := (128 * freq) / 1000

	switch freq {
	case 32000:
		switch pixelClock {
		case clocks.TMDS25M17:
			n = alt(ratio, 9152, 4576)
		case clocks.TMDS27M02:
			n = alt(ratio, 8192, 4096)
		case clocks.TMDS74M17, clocks.TMDS148M35:
			n = 11648
		default:
			n = 4096
		}
	case 44100:
		switch pixelClock {
		case clocks.TMDS25M17:
			n = 7007
		case clocks.TMDS74M17:
			n = 17836
		case clocks.TMDS148M35:
			n = alt(ratio, 17836, 8918)
		default:
			n = 6272
		}
	case 48000:
		switch pixelClock {
		case clocks.TMDS25M17:
			n = alt(ratio, 9152, 6864)
		case clocks.TMDS27M02:
			n = alt(ratio, 8192, 6144)
		case clocks.TMDS74M17:
			n = 11648
		case clocks.TMDS148M35:
			n = alt(ratio, 11648, 5824)
		default:
			n = 6144
		}
	case 88200:
		n = ComputeN(44100, pixelClock, ratio) * 2
	case 96000:
		n = ComputeN(48000, pixelClock, ratio) * 2
	case 176400:
		n = ComputeN(44100, pixelClock, ratio) * 4
	case 192000:
		n = ComputeN(48000, pixelClock, ratio) * 4
	}

	return n
}

// ComputeCTS returns the CTS value for the sample rate and pixel clock. A
// value of zero means the pixel clock is not supported. The ratio scales the
// result.
func ComputeCTS(freq int, pixelClock int, ratio int) int {
	var cts int

	switch freq {
	case 32000, 48000, 96000, 192000:
		switch pixelClock {
		case clocks.TMDS25M2, clocks.TMDS27M, clocks.TMDS54M, clocks.TMDS74M25, clocks.TMDS148M5:
			cts = pixelClock / 1000
		case clocks.TMDS297M:
			if freq == 32000 {
				cts = 222750
			} else {
				cts = 247500
			}
		}
	case 44100, 88200, 176400:
		switch pixelClock {
		case clocks.TMDS25M2:
			cts = 28000
		case clocks.TMDS27M:
			cts = 30000
		case clocks.TMDS54M:
			cts = 60000
		case clocks.TMDS74M25:
			cts = 82500
		case clocks.TMDS148M5:
			cts = 165000
		case clocks.TMDS297M:
			cts = 247500
		}
	}

	if ratio == DefaultRatio {
		return cts
	}
	return (cts * ratio) / 100
}

// Params are the inputs and results of one update of the regenerator.
type Params struct {
	SampleRate int
	PixelClock int
	Ratio      int
	N          int
	CTS        int
}

func (prm Params) String() string {
	return fmt.Sprintf("%s @ %s ratio=%d N=%d CTS=%d",
		clocks.Frequency(prm.SampleRate), clocks.Frequency(prm.PixelClock), prm.Ratio, prm.N, prm.CTS)
}

// Regenerator is the audio clock regenerator.
type Regenerator struct {
	p port.Port

	// the most recent successful update
	current Params
	valid   bool
}

// NewRegenerator is the preferred method of initialisation for the
// Regenerator type.
func NewRegenerator(p port.Port) *Regenerator {
	return &Regenerator{p: p}
}

// Current returns the parameters of the most recent successful update. The
// boolean is false if there has been no successful update.
func (r *Regenerator) Current() (Params, bool) {
	return r.current, r.valid
}

// Invalidate forgets the most recent update. Current() reports false until the
// next successful update.
func (r *Regenerator) Invalidate() {
	r.current = Params{}
	r.valid = false
}

// Update computes N and CTS and writes them to the regenerator. If CTS is zero
// nothing is written, the previous update is forgotten and ErrUnsupportedClock
// is returned.
func (r *Regenerator) Update(freq int, pixelClock int, ratio int) (Params, error) {
	prm := Params{
		SampleRate: freq,
		PixelClock: pixelClock,
		Ratio:      ratio,
		N:          ComputeN(freq, pixelClock, ratio),
		CTS:        ComputeCTS(freq, pixelClock, ratio),
	}

	if prm.CTS == 0 {
		r.Invalidate()
		logger.Logf(logger.Allow, "acr", "pixel clock not supported: %s", clocks.Frequency(pixelClock))
		return prm, fmt.Errorf("acr: %w: %d", ErrUnsupportedClock, pixelClock)
	}

	r.writeN(prm.N)
	r.writeCTS(prm.CTS)
	r.current = prm
	r.valid = true

	logger.Logf(logger.Allow, "acr", "%s", prm)

	return prm, nil
}

func (r *Regenerator) writeN(n int) {
	r.p.Write(regs.AudN1, uint8(n))
	r.p.Write(regs.AudN2, uint8(n>>8))
	r.p.Write(regs.AudN3, uint8(n>>16)&0x0f)

	// N shift of zero
	port.Clear(r.p, regs.AudCTS3, regs.AudCTS3NShiftMask)
}

func (r *Regenerator) writeCTS(cts int) {
	// the manual bit must be cleared before the new value is written
	port.Clear(r.p, regs.AudCTS3, regs.AudCTS3CTSManual)

	r.p.Write(regs.AudCTS1, uint8(cts))
	r.p.Write(regs.AudCTS2, uint8(cts>>8))
	r.p.Write(regs.AudCTS3, (uint8(cts>>16)&regs.AudCTS3AudCTS3Mask)|regs.AudCTS3CTSManual)
}

// EnableClock ungates the audio sampler clock.
func EnableClock(p port.Port) {
	port.Clear(p, regs.MCClkDis, regs.MCClkDisAudio)
}
