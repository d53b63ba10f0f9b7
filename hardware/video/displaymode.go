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

package video

// Mode flags of a DisplayMode.
const (
	FlagPHSync    = 0x01
	FlagNHSync    = 0x02
	FlagPVSync    = 0x04
	FlagNVSync    = 0x08
	FlagInterlace = 0x10
	FlagDblScan   = 0x20
)

// DisplayMode is a mode as described by the display pipeline. Horizontal
// and vertical values are absolute positions rather than lengths.
type DisplayMode struct {
	Name string

	// pixel clock in kHz
	Clock int

	HDisplay   int
	HSyncStart int
	HSyncEnd   int
	HTotal     int

	VDisplay   int
	VSyncStart int
	VSyncEnd   int
	VTotal     int
	VScan      int

	Flags int
}

// VRefresh returns the vertical refresh rate of the mode, rounded to the
// nearest Hz.
func (m DisplayMode) VRefresh() int {
	if m.HTotal <= 0 || m.VTotal <= 0 {
		return 0
	}

	num := m.Clock * 1000
	den := m.HTotal * m.VTotal

	if m.Flags&FlagInterlace != 0 {
		num *= 2
	}
	if m.Flags&FlagDblScan != 0 {
		den *= 2
	}
	if m.VScan > 1 {
		den *= m.VScan
	}

	return (num + den/2) / den
}

// FromDisplayMode converts a DisplayMode into a Timing. The front porches
// become the right and lower margins.
func FromDisplayMode(m DisplayMode) Timing {
	return Timing{
		Name:        m.Name,
		PixClock:    m.Clock * 1000,
		Refresh:     m.VRefresh(),
		XRes:        m.HDisplay,
		RightMargin: m.HSyncStart - m.HDisplay,
		HSyncLen:    m.HSyncEnd - m.HSyncStart,
		LeftMargin:  m.HTotal - m.HSyncEnd,
		YRes:        m.VDisplay,
		LowerMargin: m.VSyncStart - m.VDisplay,
		VSyncLen:    m.VSyncEnd - m.VSyncStart,
		UpperMargin: m.VTotal - m.VSyncEnd,
		HSyncHigh:   m.Flags&FlagPHSync != 0,
		VSyncHigh:   m.Flags&FlagPVSync != 0,
		Interlaced:  m.Flags&FlagInterlace != 0,
		DoubleScan:  m.Flags&FlagDblScan != 0,
	}
}
