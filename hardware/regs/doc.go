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

// Package regs lists the register offsets and bitfield values of the HDMI
// transmitter. Offsets are relative to the start of the register window.
//
// Bitfield constants are named after the register they belong to. Multi-bit
// fields have a Mask constant and, where the field is not at bit zero, a
// Shift constant suitable for use with port.MaskWrite().
//
// The Names map gives the canonical name of every register listed here. It
// is used by the tracing port and by the register dump in the monitor.
package regs
