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

// Package port abstracts access to the register file of the HDMI transmitter.
//
// Every component that programs the transmitter does so through the Port
// interface. Three implementations are provided. Emulated is an in-memory
// register file that models the side effects needed for bring-up and is
// used by the tests and by the emulated mode of the command line tool.
// Mapped accesses a physical register window through /dev/mem. Tracer
// wraps another Port and logs every access.
package port

// Window is the size of the transmitter's register window in bytes.
const Window = 0x8000

// Port is byte-wide access to a flat register offset space.
type Port interface {
	Read(reg uint16) uint8
	Write(reg uint16, v uint8)
}

// MaskWrite performs a read-modify-write of the field described by mask and
// shift. Bits of data that fall outside the mask after shifting are ignored.
func MaskWrite(p Port, reg uint16, data uint8, shift uint8, mask uint8) {
	v := p.Read(reg)
	v &^= mask
	v |= (data << shift) & mask
	p.Write(reg, v)
}

// Set sets the bits in mask.
func Set(p Port, reg uint16, mask uint8) {
	p.Write(reg, p.Read(reg)|mask)
}

// Clear clears the bits in mask.
func Clear(p Port, reg uint16, mask uint8) {
	p.Write(reg, p.Read(reg)&^mask)
}

// Emulation returns the Emulated port underneath p. The bool is false if p
// is not emulated.
func Emulation(p Port) (*Emulated, bool) {
	switch v := p.(type) {
	case *Emulated:
		return v, true
	case *Tracer:
		return Emulation(v.Port)
	}
	return nil, false
}
