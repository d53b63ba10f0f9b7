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


package script_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/hdmitx/hardware/clocks"
	"github.com/jetsetilly/hdmitx/hardware/link"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/preferences"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/prefs"
	"github.com/jetsetilly/hdmitx/script"
	"github.com/jetsetilly/hdmitx/test"
)

func newScript(t *testing.T) (*script.Script, *link.Link, *port.Emulated, *bytes.Buffer) {
	t.Helper()
	p, err := preferences.NewPreferencesFile(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)

	e := port.NewEmulated()
	l := link.NewLink(e, p, &clocks.Instant{})
	l.SetQuiet(true)
	l.Initialise()

	out := &bytes.Buffer{}
	return script.NewScript(l, e, out), l, e, out
}

func TestModeset(t *testing.T) {
	s, l, _, out := newScript(t)

	err := s.Run(`
assert(state() == "disabled")
assert(vic() == nil)
local ok, err = modeset(16)
assert(ok, err)
assert(state() == "active")
print(vic())
`)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.State(), link.Active)
	test.ExpectEquality(t, out.String(), "16\n")
}

func TestModesetTable(t *testing.T) {
	s, l, _, _ := newScript(t)

	err := s.Run(`
local ok, err = modeset{xres=1024, yres=768, refresh=60, hfp=24, hsync=136, hbp=160, vfp=3, vsync=6, vbp=29}
assert(ok, err)
assert(vic() == 0)
`)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, l.Status().Mode.DVI)
}

func TestModesetFailure(t *testing.T) {
	s, _, _, out := newScript(t)

	err := s.Run(`
local ok, err = modeset(200)
assert(not ok)
print(err)
ok, err = modeset{xres=0}
assert(not ok)
assert(state() == "disabled")
`)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, out.String(), "unknown VIC 200\n")

	// argument errors stop the script
	test.ExpectFailure(t, s.Run(`modeset("1080p")`))
}

func TestHotPlug(t *testing.T) {
	s, l, e, _ := newScript(t)

	err := s.Run(`
assert(modeset(4))
assert(plug())
assert(state() == "active")
assert(unplug())
assert(state() == "disabled")
assert(plug())
assert(state() == "active")
assert(dpms(false))
assert(state() == "disabled")
`)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, l.Plugged())
	test.ExpectEquality(t, e.Peek(regs.PhyPol0)&regs.PhyHPD, 0)
}

func TestPeekPoke(t *testing.T) {
	s, _, e, out := newScript(t)

	err := s.Run(`
poke("fc_ctrldur", 0x21)
poke(0x1001, 7)
print(peek("FC_CTRLDUR"), peek(0x1001), peek("DESIGN_ID"))
`)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, out.String(), "33\t7\t19\n")
	test.ExpectEquality(t, e.Peek(regs.FCCtrlDur), 0x21)

	test.ExpectFailure(t, s.Run(`peek("NOT_A_REGISTER")`))
	test.ExpectFailure(t, s.Run(`poke(0x8000, 1)`))
	test.ExpectFailure(t, s.Run(`poke(0x1000, 256)`))
}

func TestRunFile(t *testing.T) {
	s, l, _, _ := newScript(t)

	pth := filepath.Join(t.TempDir(), "bringup.lua")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("assert(modeset(16))\n"), 0o644))
	test.DemandSuccess(t, s.RunFile(pth))
	test.ExpectEquality(t, l.State(), link.Active)

	test.ExpectFailure(t, s.RunFile(filepath.Join(t.TempDir(), "missing.lua")))
}
