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


// Package script runs Lua scripts against a link. Scripts are used to drive
// bring-up sequences on the emulated device and to poke at the registers of
// real hardware.
//
// The functions available to a script are:
//
//	modeset(vic)          set a CEA mode by VIC
//	modeset(table)        set a mode from a table of timing fields
//	plug() / unplug()     change the state of the HPD line
//	dpms(on)              turn the link on or off
//	state()               the state of the link as a string
//	status()              a description of the link
//	vic()                 the VIC of the current mode
//	peek(reg)             read a register by offset or name
//	poke(reg, value)      write a register by offset or name
//	print(...)            write to the script output
//
// modeset(), plug(), unplug() and dpms() return true on success or false and
// an error message.
package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/hdmitx/edid"
	"github.com/jetsetilly/hdmitx/hardware/link"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/hardware/video"
	"github.com/jetsetilly/hdmitx/logger"
	lua "github.com/yuin/gopher-lua"
)

// Script is a Lua environment bound to a link.
type Script struct {
	l   *link.Link
	p   port.Port
	out io.Writer

	// non-nil if the port is emulated. plug() and unplug() drive the
	// emulated HPD line
	emulated *port.Emulated
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(l *link.Link, p port.Port, out io.Writer) *Script {
	s := &Script{
		l:   l,
		p:   p,
		out: out,
	}
	s.emulated, _ = port.Emulation(p)
	return s
}

// Run a script from a string.
func (s *Script) Run(src string) error {
	L := s.state()
	defer L.Close()
	if err := L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunFile runs a script from a file.
func (s *Script) RunFile(filename string) error {
	logger.Logf(logger.Allow, "script", "running %s", filename)
	L := s.state()
	defer L.Close()
	if err := L.DoFile(filename); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func (s *Script) state() *lua.LState {
	L := lua.NewState()
	for name, fn := range map[string]lua.LGFunction{
		"modeset": s.modeset,
		"plug":    s.plug,
		"unplug":  s.unplug,
		"dpms":    s.dpms,
		"state":   s.linkState,
		"status":  s.status,
		"vic":     s.vic,
		"peek":    s.peek,
		"poke":    s.poke,
		"print":   s.print,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
	return L
}

// pushes the result of an operation in the true or false, message form.
func result(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (s *Script) modeset(L *lua.LState) int {
	var t video.Timing

	switch v := L.Get(1).(type) {
	case lua.LNumber:
		var ok bool
		t, ok = edid.VIC(int(v))
		if !ok {
			return result(L, fmt.Errorf("unknown VIC %d", int(v)))
		}
	case *lua.LTable:
		t = timingFromTable(v)
	default:
		L.ArgError(1, "VIC or timing table expected")
		return 0
	}

	return result(L, s.l.Setup(t))
}

func field(tbl *lua.LTable, name string) int {
	if n, ok := tbl.RawGetString(name).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

func flag(tbl *lua.LTable, name string) bool {
	return lua.LVAsBool(tbl.RawGetString(name))
}

// the fields of the table are named after the parts of the timing. porches
// are lengths rather than positions
func timingFromTable(tbl *lua.LTable) video.Timing {
	return video.Timing{
		Name:        lua.LVAsString(tbl.RawGetString("name")),
		Refresh:     field(tbl, "refresh"),
		PixClock:    field(tbl, "clock"),
		XRes:        field(tbl, "xres"),
		YRes:        field(tbl, "yres"),
		RightMargin: field(tbl, "hfp"),
		HSyncLen:    field(tbl, "hsync"),
		LeftMargin:  field(tbl, "hbp"),
		LowerMargin: field(tbl, "vfp"),
		VSyncLen:    field(tbl, "vsync"),
		UpperMargin: field(tbl, "vbp"),
		HSyncHigh:   flag(tbl, "hpos"),
		VSyncHigh:   flag(tbl, "vpos"),
		Interlaced:  flag(tbl, "interlaced"),
	}
}

func (s *Script) hotplug(plugged bool) error {
	if s.emulated != nil {
		s.emulated.PlugCable(plugged)
		if s.l.InterruptPending() {
			return s.l.HandleInterrupt()
		}
		return nil
	}
	if plugged {
		return s.l.Apply(link.EventPlug)
	}
	return s.l.Apply(link.EventUnplug)
}

func (s *Script) plug(L *lua.LState) int {
	return result(L, s.hotplug(true))
}

func (s *Script) unplug(L *lua.LState) int {
	return result(L, s.hotplug(false))
}

func (s *Script) dpms(L *lua.LState) int {
	return result(L, s.l.DPMS(L.CheckBool(1)))
}

func (s *Script) linkState(L *lua.LState) int {
	L.Push(lua.LString(s.l.State().String()))
	return 1
}

func (s *Script) status(L *lua.LState) int {
	L.Push(lua.LString(s.l.Status().String()))
	return 1
}

func (s *Script) vic(L *lua.LState) int {
	st := s.l.Status()
	if !st.HasMode {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(st.Mode.VIC))
	return 1
}

// register arguments are either an offset or a register name
func register(L *lua.LState, n int) uint16 {
	switch v := L.Get(n).(type) {
	case lua.LNumber:
		if v < 0 || v >= port.Window {
			L.ArgError(n, fmt.Sprintf("register %#x out of range", int(v)))
		}
		return uint16(v)
	case lua.LString:
		reg, ok := regs.Lookup(string(v))
		if !ok {
			L.ArgError(n, fmt.Sprintf("unknown register %s", string(v)))
		}
		return reg
	}
	L.ArgError(n, "register expected")
	return 0
}

func (s *Script) peek(L *lua.LState) int {
	reg := register(L, 1)
	L.Push(lua.LNumber(s.p.Read(reg)))
	return 1
}

func (s *Script) poke(L *lua.LState) int {
	reg := register(L, 1)
	v := L.CheckInt(2)
	if v < 0 || v > 0xff {
		L.ArgError(2, "value out of range")
	}
	logger.Logf(logger.Allow, "script", "poke %s %#02x", regs.Name(reg), v)
	s.p.Write(reg, uint8(v))
	return 0
}

func (s *Script) print(L *lua.LState) int {
	var b strings.Builder
	for i := 1; i <= L.GetTop(); i++ {
		if i > 1 {
			b.WriteString("\t")
		}
		b.WriteString(L.ToStringMeta(L.Get(i)).String())
	}
	b.WriteString("\n")
	io.WriteString(s.out, b.String())
	return 0
}
