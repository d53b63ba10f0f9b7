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


package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/hdmitx/audiosource"
	"github.com/jetsetilly/hdmitx/edid"
	"github.com/jetsetilly/hdmitx/hardware/audio"
	"github.com/jetsetilly/hdmitx/hardware/clocks"
	"github.com/jetsetilly/hdmitx/hardware/link"
	"github.com/jetsetilly/hdmitx/hardware/phy"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/preferences"
	"github.com/jetsetilly/hdmitx/hardware/video"
	"github.com/jetsetilly/hdmitx/hpd"
	"github.com/jetsetilly/hdmitx/logger"
	"github.com/jetsetilly/hdmitx/modalflag"
	"github.com/jetsetilly/hdmitx/monitor"
	"github.com/jetsetilly/hdmitx/prefs"
	"github.com/jetsetilly/hdmitx/script"
	"github.com/jetsetilly/hdmitx/statsview"
	"github.com/jetsetilly/hdmitx/version"
	"golang.org/x/sync/errgroup"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "EDID", "ACR", "PHY", "SCRIPT", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "EDID":
		err = decodeEDID(md)

	case "ACR":
		err = acr(md)

	case "PHY":
		err = phyTables(md)

	case "SCRIPT":
		err = runScript(md)

	case "VERSION":
		v, r, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, r)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// flags shared by the modes that drive a link.
type linkFlags struct {
	emulated *bool
	trace    *bool
	prefs    *string
	log      *bool
	stats    *bool
	memviz   *string
}

func addLinkFlags(md *modalflag.Modes) linkFlags {
	return linkFlags{
		emulated: md.AddBool("emulated", false, "use an emulated transmitter instead of /dev/mem"),
		trace:    md.AddBool("trace", false, "log every register write"),
		prefs:    md.AddString("prefs", "", "preferences to override, eg. \"hdmitx.colour.depth::10\""),
		log:      md.AddBool("log", false, "echo debugging log to stdout"),
		stats:    md.AddBool("statsview", false, fmt.Sprintf("run stats server (%v)", statsview.Available())),
		memviz:   md.AddString("memviz", "", "write a graph of the link structure to file"),
	}
}

// the link and what it is built on. close() releases the register window.
type setup struct {
	prf   *preferences.Preferences
	p     port.Port
	l     *link.Link
	close func()
}

func newSetup(f linkFlags) (*setup, error) {
	if *f.log {
		logger.SetEcho(os.Stdout, true)
	}
	if *f.stats {
		statsview.Launch(os.Stdout)
	}
	if *f.prefs != "" {
		prefs.PushCommandLineStack(*f.prefs)
	}

	prf, err := preferences.NewPreferences()
	if err != nil {
		return nil, err
	}

	s := &setup{prf: prf, close: func() {}}

	if *f.emulated {
		s.p = port.NewEmulated()
	} else {
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("periph: %w", err)
		}
		m, err := port.NewMapped(uint64(prf.RegisterBase.Get().(int)))
		if err != nil {
			return nil, err
		}
		s.p = m
		s.close = func() { _ = m.Close() }
	}

	if *f.trace {
		s.p = port.NewTracer(s.p)
	}

	s.l = link.NewLink(s.p, prf, clocks.RealTime{})
	id := s.l.Initialise()
	fmt.Printf("transmitter %s\n", id)

	return s, nil
}

func writeMemviz(filename string, l *link.Link) error {
	if filename == "" {
		return nil
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("memviz: %w", err)
	}
	defer f.Close()
	memviz.Map(f, l)
	return nil
}

// ddcSource opens the DDC bus named in the preferences. A nil closer means
// there is nothing to close.
func ddcSource(prf *preferences.Preferences) (edid.Source, func(), error) {
	name := prf.DDCBus.Get().(string)
	if name == "" {
		return nil, nil, nil
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("ddc: %w", err)
	}
	return edid.NewDDC(bus), func() { _ = bus.Close() }, nil
}

// chooseTiming picks the timing for the first bring-up: the VIC if one is
// given, otherwise the preferred timing of the sink, otherwise 1080p60.
func chooseTiming(l *link.Link, vic int) (video.Timing, error) {
	if vic != 0 {
		t, ok := edid.VIC(vic)
		if !ok {
			return video.Timing{}, fmt.Errorf("unknown VIC %d", vic)
		}
		return t, nil
	}

	modes, err := l.Modes()
	if err != nil {
		logger.Logf(logger.Allow, "hdmitx", "%v", err)
	}
	if len(modes) > 0 {
		return modes[0], nil
	}

	t, _ := edid.VIC(16)
	return t, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	f := addLinkFlags(md)
	vic := md.AddInt("vic", 0, "CEA VIC to set (0 for the preferred timing of the sink)")
	edidFile := md.AddString("edid", "", "read EDID from file rather than the DDC bus")
	poll := md.AddDuration("hpdpoll", hpd.DefaultWait, "interval between checks of the HPD interrupt")
	mon := md.AddBool("monitor", false, "interactive monitor on stdin")
	unplugged := md.AddBool("unplugged", false, "start with the emulated cable unplugged")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	s, err := newSetup(f)
	if err != nil {
		return err
	}
	defer s.close()

	if *edidFile != "" {
		src, err := edid.FromFile(*edidFile)
		if err != nil {
			return err
		}
		s.l.SetSource(src)
	} else if !*f.emulated {
		src, closer, err := ddcSource(s.prf)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
			s.l.SetSource(src)
		}
	}

	t, err := chooseTiming(s.l, *vic)
	if err != nil {
		return err
	}

	// a failed bring-up is retried on the next plug event
	if err := s.l.Setup(t); err != nil {
		fmt.Printf("* %v\n", err)
	}

	if err := writeMemviz(*f.memviz, s.l); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan link.Event, 1)

	g.Go(func() error {
		return s.l.Run(ctx, events)
	})

	if pin := s.prf.HPDPin.Get().(string); pin != "" && !*f.emulated {
		gp := gpioreg.ByName(pin)
		if gp == nil {
			return fmt.Errorf("hpd: no pin named %s", pin)
		}
		w, err := hpd.NewWatcher(gp)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return w.Run(ctx, events)
		})
	} else {
		g.Go(func() error {
			return s.l.PollInterrupts(ctx, *poll, events)
		})
	}

	if e, ok := port.Emulation(s.p); ok && !*unplugged {
		e.PlugCable(true)
	}

	if *mon {
		var term monitor.Terminal
		if err := term.Initialise(os.Stdin); err != nil {
			return err
		}
		term.CBreakMode()
		defer term.CanonicalMode()

		m := monitor.NewMonitor(s.l, s.p, events, os.Stdout)
		g.Go(func() error {
			defer cancel()
			return m.Run(ctx, os.Stdin)
		})
	}

	err = g.Wait()
	fmt.Println(s.l.Status())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func decodeEDID(md *modalflag.Modes) error {
	md.NewMode()
	bus := md.AddString("bus", "", "name of the DDC bus (if no file is given)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var raw []byte

	switch len(md.RemainingArgs()) {
	case 0:
		if *bus == "" {
			return fmt.Errorf("a file or a DDC bus is required")
		}
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("periph: %w", err)
		}
		b, err := i2creg.Open(*bus)
		if err != nil {
			return fmt.Errorf("ddc: %w", err)
		}
		defer b.Close()
		raw, err = edid.NewDDC(b).Read()
		if err != nil {
			return err
		}
	case 1:
		raw, err = edid.FromFile(md.GetArg(0))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	e, err := edid.Decode(raw)
	if err != nil {
		return err
	}

	fmt.Fprintln(md.Output, e)
	for _, t := range e.Timings() {
		if v := edid.LookupVIC(t); v != 0 {
			fmt.Fprintf(md.Output, "  %s VIC %d\n", t, v)
		} else {
			fmt.Fprintf(md.Output, "  %s\n", t)
		}
	}

	return nil
}

func acr(md *modalflag.Modes) error {
	md.NewMode()
	rate := md.AddInt("rate", 48000, "audio sample rate in Hz")
	clock := md.AddInt("clock", clocks.TMDS74M25, "pixel clock in Hz")
	ratio := md.AddInt("ratio", audio.DefaultRatio, "CTS ratio as a percentage")
	md.AdditionalHelp("The sample rate is taken from a WAV or MP3 file if one is given.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		src, err := audiosource.FromFile(md.GetArg(0))
		if err != nil {
			return err
		}
		fmt.Fprintln(md.Output, src)
		*rate = src.SampleRate
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prm := audio.Params{
		SampleRate: *rate,
		PixelClock: *clock,
		Ratio:      *ratio,
		N:          audio.ComputeN(*rate, *clock, *ratio),
		CTS:        audio.ComputeCTS(*rate, *clock, *ratio),
	}
	fmt.Fprintln(md.Output, prm)

	if prm.CTS == 0 {
		return fmt.Errorf("acr: %w", audio.ErrUnsupportedClock)
	}
	return nil
}

func phyTables(md *modalflag.Modes) error {
	md.NewMode()
	clock := md.AddInt("clock", 0, "show the settings for a single pixel clock")
	depth := md.AddInt("depth", 8, "colour depth for -clock")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *clock != 0 {
		m, err := phy.LookupMPLL(*clock, *depth)
		if err != nil {
			return err
		}
		c, err := phy.LookupCurrent(*clock, *depth)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "%s %dbit: opmode %#04x gmp %#04x curr %#04x\n",
			clocks.Frequency(*clock), *depth, m.OpMode, m.GMP, c)
		return nil
	}

	fmt.Fprintln(md.Output, "MPLL")
	for _, b := range phy.MPLLTable {
		fmt.Fprintf(md.Output, "  <= %s", clocks.Frequency(b.MaxClock))
		for i, s := range b.Settings {
			fmt.Fprintf(md.Output, "  %dbit %#04x/%#04x", phy.Depths[i], s.OpMode, s.GMP)
		}
		fmt.Fprintln(md.Output)
	}

	fmt.Fprintln(md.Output, "current")
	for _, b := range phy.CurrentTable {
		fmt.Fprintf(md.Output, "  <= %s", clocks.Frequency(b.MaxClock))
		for i, c := range b.CurrCtrl {
			fmt.Fprintf(md.Output, "  %dbit %#04x", phy.Depths[i], c)
		}
		fmt.Fprintln(md.Output)
	}

	return nil
}

func runScript(md *modalflag.Modes) error {
	md.NewMode()
	f := addLinkFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("%s mode requires a single script file", md)
	}

	s, err := newSetup(f)
	if err != nil {
		return err
	}
	defer s.close()

	err = script.NewScript(s.l, s.p, md.Output).RunFile(md.GetArg(0))
	if err != nil {
		return err
	}

	if err := writeMemviz(*f.memviz, s.l); err != nil {
		return err
	}

	fmt.Fprintln(md.Output, s.l.Status())
	return nil
}
