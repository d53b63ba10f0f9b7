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

package link

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/hdmitx/hardware/audio"
	"github.com/jetsetilly/hdmitx/hardware/colour"
	"github.com/jetsetilly/hdmitx/hardware/infoframe"
	"github.com/jetsetilly/hdmitx/hardware/phy"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/hardware/video"
	"github.com/jetsetilly/hdmitx/logger"
)

// derive everything needed for a bring-up without touching the hardware.
func (l *Link) prepare(t video.Timing, opts video.Options) (video.Mode, colour.Config, phy.Params, error) {
	m, err := video.NewMode(t, opts)
	if err != nil {
		return video.Mode{}, colour.Config{}, phy.Params{}, err
	}

	cfg, err := l.prefs.ColourConfig(m.VIC, m.DVI)
	if err != nil {
		return video.Mode{}, colour.Config{}, phy.Params{}, err
	}
	if err := cfg.Validate(); err != nil {
		return video.Mode{}, colour.Config{}, phy.Params{}, err
	}

	prm := phy.Params{
		PixelClock: m.PixelClock,
		Depth:      cfg.Depth,
		CSC:        cfg.IsConversion() && !m.DVI,
	}
	if err := prm.Validate(); err != nil {
		return video.Mode{}, colour.Config{}, phy.Params{}, err
	}

	return m, cfg, prm, nil
}

// bringUp runs the power-on sequence with the stored mode. Invalid
// parameters are reported before any register is written and leave the state
// unchanged. A PHY failure leaves the link in the Error state.
//
// the critical section should be held.
func (l *Link) bringUp() error {
	m, cfg, prm, err := l.prepare(l.timing, l.opts)
	if err != nil {
		logger.Logf(l, "link", "power on: %v", err)
		return fmt.Errorf("link: %w", err)
	}

	l.state = PoweringOn
	l.err = nil
	logger.Logf(l, "link", "powering on: %s", l.timing)

	// no overflow interrupts while the data path is being changed
	l.p.Write(regs.IHMuteFCStat2, regs.FCStat2Overflow)

	if _, err := video.Compose(l.p, l.timing, l.opts); err != nil {
		return l.fail(err)
	}

	if err := l.phy.Init(prm); err != nil {
		return l.fail(err)
	}

	l.enableVideoPath(cfg.IsConversion())

	if m.DVI {
		// no audio is sent over DVI
		l.acr.Invalidate()
		logger.Log(l, "link", "DVI mode")
	} else {
		freq := l.prefs.SampleRate.Get().(int)
		ratio := l.prefs.Ratio.Get().(int)
		if _, err := l.acr.Update(freq, m.PixelClock, ratio); err != nil {
			if !errors.Is(err, audio.ErrUnsupportedClock) {
				return l.fail(err)
			}
			logger.Logf(l, "link", "audio disabled: %v", err)
		} else {
			audio.EnableClock(l.p)
		}

		l.avi = infoframe.Build(infoframe.Params{
			Out:                   cfg.Out,
			Colorimetry:           cfg.Colorimetry,
			Aspect:                l.prefs.AspectRatio(),
			Underscan:             l.prefs.Underscan.Get().(bool),
			VIC:                   m.VIC,
			PixelRepetitionInput:  m.PixelRepetitionInput,
			PixelRepetitionOutput: m.PixelRepetitionOutput,
		})
		infoframe.Write(l.p, l.avi)
	}

	if err := colour.Configure(l.p, cfg); err != nil {
		return l.fail(err)
	}

	l.configureHDCP(m)
	l.clearOverflow()

	if l.plugged && !m.DVI {
		l.p.Write(regs.FCMask2, 0x00)
		l.p.Write(regs.IHMuteFCStat2, 0x00)
	}

	l.mode = m
	l.colour = cfg
	l.state = Active
	logger.Logf(l, "link", "active: %s", l.timing)

	return nil
}

// the critical section should be held.
func (l *Link) fail(err error) error {
	l.state = Error
	l.err = err
	logger.Logf(l, "link", "error: %v", err)
	return fmt.Errorf("link: %w", err)
}

// minimum durations of the control periods and the preamble filler of each
// TMDS channel
const (
	ctrlDur    = 12
	exCtrlDur  = 32
	exCtrlSpac = 1
	ch0Pream   = 0x0b
	ch1Pream   = 0x16
	ch2Pream   = 0x21
)

// the critical section should be held.
func (l *Link) enableVideoPath(csc bool) {
	l.p.Write(regs.FCCtrlDur, ctrlDur)
	l.p.Write(regs.FCExCtrlDur, exCtrlDur)
	l.p.Write(regs.FCExCtrlSpac, exCtrlSpac)
	l.p.Write(regs.FCCh0Pream, ch0Pream)
	l.p.Write(regs.FCCh1Pream, ch1Pream)
	l.p.Write(regs.FCCh2Pream, ch2Pream)

	clkdis := regs.MCClkDisAll &^ regs.MCClkDisPixelClk
	l.p.Write(regs.MCClkDis, clkdis)
	clkdis &^= regs.MCClkDisTMDSClk
	l.p.Write(regs.MCClkDis, clkdis)
	if csc {
		clkdis &^= regs.MCClkDisCSC
		l.p.Write(regs.MCClkDis, clkdis)
	}
}

// HDCP is never negotiated. receiver detection is turned off and encryption
// is disabled.
//
// the critical section should be held.
func (l *Link) configureHDCP(m video.Mode) {
	port.Clear(l.p, regs.AHDCPCfg0, regs.AHDCPCfg0RxDetect)

	var de uint8
	if m.DataEnableHigh {
		de = regs.AVidPolCfgDataEnPolHigh
	}
	port.MaskWrite(l.p, regs.AVidPolCfg, de, 0, regs.AVidPolCfgDataEnPolMask)

	port.Set(l.p, regs.AHDCPCfg1, regs.AHDCPCfg1EncryptionDisable)
}

// number of times FC_INVIDCONF is rewritten to clear an overflow
const overflowRewrites = 5

// the critical section should be held.
func (l *Link) clearOverflow() {
	v := l.p.Read(regs.FCInvidConf)
	for i := 0; i < overflowRewrites; i++ {
		l.p.Write(regs.FCInvidConf, v)
	}
	l.p.Write(regs.MCSWRstz, ^regs.MCSWRstzTMDSReq)
}
