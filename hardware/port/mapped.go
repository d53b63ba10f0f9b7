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

package port

import (
	"fmt"

	"periph.io/x/host/v3/pmem"
)

// Mapped is a Port over the physical register window of the transmitter.
// Access requires permission to map /dev/mem.
type Mapped struct {
	view *pmem.View
	mem  []byte
}

// NewMapped maps the register window at physical address base.
func NewMapped(base uint64) (*Mapped, error) {
	v, err := pmem.Map(base, Window)
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	return &Mapped{view: v, mem: v.Bytes()}, nil
}

// Read implements the Port interface.
func (m *Mapped) Read(reg uint16) uint8 {
	if int(reg) >= len(m.mem) {
		return 0
	}
	return m.mem[reg]
}

// Write implements the Port interface.
func (m *Mapped) Write(reg uint16, v uint8) {
	if int(reg) >= len(m.mem) {
		return
	}
	m.mem[reg] = v
}

// Close unmaps the register window.
func (m *Mapped) Close() error {
	m.mem = nil
	if err := m.view.Close(); err != nil {
		return fmt.Errorf("port: %w", err)
	}
	return nil
}
