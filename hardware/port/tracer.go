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
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/logger"
)

// Tracer wraps a Port and logs every access through the central logger. The
// log tag is "port".
type Tracer struct {
	Port

	// Reads are only logged if TraceReads is true. The polling loops make the
	// read log very noisy.
	TraceReads bool
}

// NewTracer is the preferred method of initialisation for the Tracer type.
func NewTracer(p Port) *Tracer {
	return &Tracer{Port: p}
}

// Read implements the Port interface.
func (t *Tracer) Read(reg uint16) uint8 {
	v := t.Port.Read(reg)
	if t.TraceReads {
		logger.Logf(logger.Allow, "port", "%-22s -> %#02x", regs.Name(reg), v)
	}
	return v
}

// Write implements the Port interface.
func (t *Tracer) Write(reg uint16, v uint8) {
	logger.Logf(logger.Allow, "port", "%-22s <- %#02x", regs.Name(reg), v)
	t.Port.Write(reg, v)
}
