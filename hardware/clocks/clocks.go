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

// Package clocks defines the standard TMDS pixel clock values and the delay
// source used by the bounded polling loops.
//
// The pixel clock values are the ones the audio clock regenerator has exact
// N/CTS entries for. The Mod variants are the /1.001 rates used by the 59.94Hz
// family of video modes, rounded the way the N table expects them.
package clocks

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// Standard TMDS pixel clocks in Hz.
const (
	TMDS25M2  = 25200000
	TMDS27M   = 27000000
	TMDS54M   = 54000000
	TMDS74M25 = 74250000
	TMDS148M5 = 148500000
	TMDS297M  = 297000000
)

// The /1.001 variants of the standard pixel clocks.
const (
	TMDS25M17  = 25170000
	TMDS27M02  = 27020000
	TMDS74M17  = 74170000
	TMDS148M35 = 148350000
)

// Frequency converts a rate in Hz to a physic.Frequency, which formats itself
// with the most appropriate unit.
func Frequency(hz int) physic.Frequency {
	return physic.Frequency(hz) * physic.Hertz
}

// Delay is the source of the per-iteration delay in the polling loops.
type Delay interface {
	Sleep(time.Duration)
}

// RealTime sleeps for the requested duration.
type RealTime struct{}

// Sleep implements the Delay interface.
func (RealTime) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Instant never sleeps. It records the total time that would have been spent
// sleeping so tests can check the bound of a polling loop.
type Instant struct {
	Total time.Duration
	Calls int
}

// Sleep implements the Delay interface.
func (i *Instant) Sleep(d time.Duration) {
	i.Total += d
	i.Calls++
}
