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


package monitor_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/hdmitx/hardware/clocks"
	"github.com/jetsetilly/hdmitx/hardware/link"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/preferences"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/monitor"
	"github.com/jetsetilly/hdmitx/prefs"
	"github.com/jetsetilly/hdmitx/test"
)

func newMonitor(t *testing.T, p port.Port) (*monitor.Monitor, chan link.Event, *bytes.Buffer) {
	t.Helper()
	prf, err := preferences.NewPreferencesFile(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)

	l := link.NewLink(p, prf, &clocks.Instant{})
	l.SetQuiet(true)

	events := make(chan link.Event, 8)
	out := &bytes.Buffer{}
	return monitor.NewMonitor(l, p, events, out), events, out
}

func TestCommands(t *testing.T) {
	e := port.NewEmulated()
	m, events, out := newMonitor(t, e)
	ctx := context.Background()

	test.DemandSuccess(t, m.Run(ctx, strings.NewReader("po\nfq")))

	test.DemandEquality(t, len(events), 3)
	test.ExpectEquality(t, <-events, link.EventInterrupt)
	test.ExpectEquality(t, <-events, link.EventPowerOn)
	test.ExpectEquality(t, <-events, link.EventPowerOff)

	// the emulated HPD line was raised
	test.ExpectEquality(t, e.Peek(regs.PhyStat0)&regs.PhyHPD, regs.PhyHPD)

	// help is printed on start
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "p  plug"))

	out.Reset()
	quit, err := m.Command(ctx, 's')
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, quit)
	test.ExpectEquality(t, out.String(), "disabled (no mode)\n")

	out.Reset()
	_, _ = m.Command(ctx, 'r')
	test.ExpectSuccess(t, strings.Contains(out.String(), "0000 DESIGN_ID            13\n"))
	test.ExpectEquality(t, strings.Count(out.String(), "\n"), len(regs.Names))

	quit, _ = m.Command(ctx, 'q')
	test.ExpectSuccess(t, quit)
}

// a port that is not emulated gets plug events rather than interrupts
type plain struct {
	mem map[uint16]uint8
}

func (p plain) Read(reg uint16) uint8     { return p.mem[reg] }
func (p plain) Write(reg uint16, v uint8) { p.mem[reg] = v }

func TestHotPlugEvents(t *testing.T) {
	m, events, _ := newMonitor(t, plain{mem: make(map[uint16]uint8)})
	ctx := context.Background()

	test.DemandSuccess(t, m.Run(ctx, strings.NewReader("pu")))
	test.DemandEquality(t, len(events), 2)
	test.ExpectEquality(t, <-events, link.EventPlug)
	test.ExpectEquality(t, <-events, link.EventUnplug)
}

func TestCancelled(t *testing.T) {
	e := port.NewEmulated()
	m, events, _ := newMonitor(t, e)

	// fill the channel so that the next command blocks
	for len(events) < cap(events) {
		events <- link.EventPowerOn
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Command(ctx, 'o')
	test.ExpectFailure(t, err)
}
