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


// Package hardware is the base package for the transmitter. Its
// sub-packages each program one block of the transmitter through a
// port.Port, and the link package sequences them into a bring-up.
//
// The order in which the blocks are programmed matters. The frame composer
// is set before the PHY, the PHY before the clocks that depend on it, and the
// video packetizer before the colour space converter and the sampler.
// Everything is programmed with the link lock held.
package hardware
