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

package phy

import (
	"errors"
	"fmt"
)

// ErrUnsupportedClock is returned by the table lookups for pixel clocks the
// PHY cannot be tuned for.
var ErrUnsupportedClock = errors.New("unsupported pixel clock")

// MaxPixelClock is the highest pixel clock the PHY can be tuned for.
const MaxPixelClock = 216000000

// Depths supported by the PHY, in the order of the table columns.
var Depths = [3]int{8, 10, 12}

func depthIndex(depth int) (int, bool) {
	for i, d := range Depths {
		if d == depth {
			return i, true
		}
	}
	return 0, false
}

// MPLLSetting is the pair of words written to the PLL configuration
// registers.
type MPLLSetting struct {
	OpMode uint16
	GMP    uint16
}

// MPLLBand covers pixel clocks up to and including MaxClock.
type MPLLBand struct {
	MaxClock int
	Settings [3]MPLLSetting
}

// MPLLTable is ordered by MaxClock.
//
// The 12-bit cells of the 92.5MHz and 148.5MHz bands hold the 12-bit value of
// the next band up.
var MPLLTable = []MPLLBand{
	{MaxClock: 45250000, Settings: [3]MPLLSetting{
		{OpMode: 0x01e0, GMP: 0x0000},
		{OpMode: 0x21e1, GMP: 0x0000},
		{OpMode: 0x41e2, GMP: 0x0000},
	}},
	{MaxClock: 92500000, Settings: [3]MPLLSetting{
		{OpMode: 0x0140, GMP: 0x0005},
		{OpMode: 0x2141, GMP: 0x0005},
		{OpMode: 0x40a2, GMP: 0x000a},
	}},
	{MaxClock: 148500000, Settings: [3]MPLLSetting{
		{OpMode: 0x00a0, GMP: 0x000a},
		{OpMode: 0x20a1, GMP: 0x000a},
		{OpMode: 0x4002, GMP: 0x000f},
	}},
	{MaxClock: MaxPixelClock, Settings: [3]MPLLSetting{
		{OpMode: 0x00a0, GMP: 0x000a},
		{OpMode: 0x2001, GMP: 0x000f},
		{OpMode: 0x4002, GMP: 0x000f},
	}},
}

// CurrentBand covers pixel clocks up to and including MaxClock.
type CurrentBand struct {
	MaxClock int
	CurrCtrl [3]uint16
}

// CurrentTable is ordered by MaxClock.
var CurrentTable = []CurrentBand{
	{MaxClock: 54000000, CurrCtrl: [3]uint16{0x091c, 0x091c, 0x06dc}},
	{MaxClock: 58400000, CurrCtrl: [3]uint16{0x091c, 0x06dc, 0x06dc}},
	{MaxClock: 72000000, CurrCtrl: [3]uint16{0x06dc, 0x06dc, 0x091c}},
	{MaxClock: 74250000, CurrCtrl: [3]uint16{0x06dc, 0x0b5c, 0x091c}},
	{MaxClock: 118800000, CurrCtrl: [3]uint16{0x091c, 0x091c, 0x06dc}},
	{MaxClock: MaxPixelClock, CurrCtrl: [3]uint16{0x06dc, 0x0b5c, 0x091c}},
}

func checkLookup(clock int, depth int) (int, error) {
	if clock <= 0 || clock > MaxPixelClock {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedClock, clock)
	}
	d, ok := depthIndex(depth)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}
	return d, nil
}

// LookupMPLL returns the PLL setting for the pixel clock and colour depth.
func LookupMPLL(clock int, depth int) (MPLLSetting, error) {
	d, err := checkLookup(clock, depth)
	if err != nil {
		return MPLLSetting{}, err
	}
	for _, b := range MPLLTable {
		if clock <= b.MaxClock {
			return b.Settings[d], nil
		}
	}
	return MPLLSetting{}, fmt.Errorf("%w: %d", ErrUnsupportedClock, clock)
}

// LookupCurrent returns the current control word for the pixel clock and
// colour depth.
func LookupCurrent(clock int, depth int) (uint16, error) {
	d, err := checkLookup(clock, depth)
	if err != nil {
		return 0, err
	}
	for _, b := range CurrentTable {
		if clock <= b.MaxClock {
			return b.CurrCtrl[d], nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedClock, clock)
}
