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


// Package monitor is an interactive console for a running link. Each command
// is a single key.
//
// Hot plug commands drive the HPD line of an emulated device. On real
// hardware they are delivered to the link as plug and unplug events.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/jetsetilly/hdmitx/hardware/link"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/logger"
)

// number of log entries shown by the log command
const logTail = 10

const help = `p  plug
u  unplug
o  power on
f  power off
s  status
r  registers
l  log
q  quit
`

// Monitor sends commands to the link through the events channel of its Run()
// loop.
type Monitor struct {
	l      *link.Link
	p      port.Port
	events chan<- link.Event
	out    io.Writer

	emulated *port.Emulated
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(l *link.Link, p port.Port, events chan<- link.Event, out io.Writer) *Monitor {
	m := &Monitor{
		l:      l,
		p:      p,
		events: events,
		out:    out,
	}
	m.emulated, _ = port.Emulation(p)
	return m
}

// Run reads commands from the input until the quit command, the end of the
// input or the context is cancelled.
func (m *Monitor) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprint(m.out, help)

	b := make([]byte, 1)
	for {
		if _, err := in.Read(b); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("monitor: %w", err)
		}

		quit, err := m.Command(ctx, b[0])
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Command runs the command for a single key. Unknown keys print the help.
func (m *Monitor) Command(ctx context.Context, key byte) (bool, error) {
	switch key {
	case 'p':
		return false, m.hotplug(ctx, true)
	case 'u':
		return false, m.hotplug(ctx, false)
	case 'o':
		return false, m.send(ctx, link.EventPowerOn)
	case 'f':
		return false, m.send(ctx, link.EventPowerOff)
	case 's':
		fmt.Fprintln(m.out, m.l.Status())
	case 'r':
		m.dump()
	case 'l':
		logger.Tail(m.out, logTail)
	case 'q':
		return true, nil
	case '\n', '\r', ' ':
	default:
		fmt.Fprint(m.out, help)
	}
	return false, nil
}

func (m *Monitor) hotplug(ctx context.Context, plugged bool) error {
	if m.emulated != nil {
		m.emulated.PlugCable(plugged)
		return m.send(ctx, link.EventInterrupt)
	}
	if plugged {
		return m.send(ctx, link.EventPlug)
	}
	return m.send(ctx, link.EventUnplug)
}

func (m *Monitor) send(ctx context.Context, ev link.Event) error {
	select {
	case m.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dump prints every named register in order of offset. the read may have
// side effects on real hardware so only registers with a name are read.
func (m *Monitor) dump() {
	offsets := make([]uint16, 0, len(regs.Names))
	for r := range regs.Names {
		offsets = append(offsets, r)
	}
	slices.Sort(offsets)

	for _, r := range offsets {
		fmt.Fprintf(m.out, "%04x %-20s %02x\n", r, regs.Name(r), m.p.Read(r))
	}
}
