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
	"context"
	"fmt"
	"time"

	"github.com/jetsetilly/hdmitx/hardware/clocks"
	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/logger"
)

// ID is the identification of the transmitter.
type ID struct {
	Design   uint8
	Revision uint8
	Product0 uint8
	Product1 uint8
}

func (id ID) String() string {
	return fmt.Sprintf("%#02x:%#02x:%#02x:%#02x", id.Design, id.Revision, id.Product0, id.Product1)
}

// registers that are masked during initialisation
var interruptMasks = []uint16{
	regs.VPMask,
	regs.FCMask0, regs.FCMask1, regs.FCMask2,
	regs.PhyMask0,
	regs.PhyI2CMIntAddr, regs.PhyI2CMCtlIntAddr,
	regs.AudInt, regs.AudSPDIFInt, regs.AudHBRMask,
	regs.GPMask,
	regs.AAPIIntMsk,
	regs.CECMask,
	regs.I2CMInt, regs.I2CMCtlInt,
}

var interruptMutes = []uint16{
	regs.IHMuteFCStat0, regs.IHMuteFCStat1, regs.IHMuteFCStat2,
	regs.IHMuteASStat0,
	regs.IHMutePhyStat0,
	regs.IHMuteI2CMStat0,
	regs.IHMuteCECStat0,
	regs.IHMuteVPStat0,
	regs.IHMuteI2CMPhyStat,
	regs.IHMuteAHBDMAAud,
}

// the pixel clock the regenerator is programmed with before the first mode
// is set
const initialPixelClock = clocks.TMDS74M25

// Initialise prepares the transmitter for use. All interrupts are masked
// except for HPD, which is armed for a plug event.
func (l *Link) Initialise() ID {
	l.crit.Lock()
	defer l.crit.Unlock()

	id := ID{
		Design:   l.p.Read(regs.DesignID),
		Revision: l.p.Read(regs.RevisionID),
		Product0: l.p.Read(regs.ProductID0),
		Product1: l.p.Read(regs.ProductID1),
	}
	logger.Logf(l, "link", "transmitter %s", id)

	mute := l.p.Read(regs.IHMute) | regs.IHMuteWakeupInterrupt | regs.IHMuteAllInterrupt
	l.p.Write(regs.IHMute, mute)
	for _, r := range interruptMasks {
		l.p.Write(r, 0xff)
	}
	for _, r := range interruptMutes {
		l.p.Write(r, 0xff)
	}
	mute &^= regs.IHMuteWakeupInterrupt | regs.IHMuteAllInterrupt
	l.p.Write(regs.IHMute, mute)

	// setting N and CTS before the PHY is enabled prevents overflows
	freq := l.prefs.SampleRate.Get().(int)
	ratio := l.prefs.Ratio.Get().(int)
	if _, err := l.acr.Update(freq, initialPixelClock, ratio); err != nil {
		logger.Logf(l, "link", "initialise: %v", err)
	}

	l.p.Write(regs.PhyPol0, regs.PhyHPD)
	l.p.Write(regs.IHPhyStat0, regs.IHPhyStat0HPD)

	l.p.Write(regs.PhyI2CMIntAddr, regs.PhyI2CMIntAddrDoneHigh)
	l.p.Write(regs.PhyI2CMCtlIntAddr, regs.PhyI2CMCtlIntAddrNACKHigh|regs.PhyI2CMCtlIntAddrArbHigh)
	l.p.Write(regs.PhyMask0, ^regs.PhyHPD)
	l.p.Write(regs.IHPhyStat0, regs.IHPhyStat0HPD)
	l.p.Write(regs.IHMutePhyStat0, ^regs.IHPhyStat0HPD)

	return id
}

// InterruptPending returns true if the HPD interrupt status is raised.
func (l *Link) InterruptPending() bool {
	l.crit.Lock()
	defer l.crit.Unlock()
	return l.p.Read(regs.IHPhyStat0)&regs.IHPhyStat0HPD != 0
}

// HandleInterrupt services the HPD interrupt. The polarity of the HPD
// interrupt is flipped so that the next interrupt is for the opposite
// event. The interrupt status is acknowledged before returning.
func (l *Link) HandleInterrupt() error {
	l.crit.Lock()
	defer l.crit.Unlock()

	stat := l.p.Read(regs.IHPhyStat0)
	pol := l.p.Read(regs.PhyPol0)

	var err error
	if stat&regs.IHPhyStat0HPD != 0 {
		if pol&regs.PhyHPD != 0 {
			logger.Log(l, "link", "plug")
			l.p.Write(regs.PhyPol0, l.p.Read(regs.PhyPol0)&^regs.PhyHPD)
			err = l.plug()
		} else {
			logger.Log(l, "link", "unplug")
			l.p.Write(regs.PhyPol0, l.p.Read(regs.PhyPol0)|regs.PhyHPD)
			l.unplug()
		}
	}

	l.p.Write(regs.IHPhyStat0, stat)

	return err
}

// the critical section should be held.
func (l *Link) plug() error {
	l.plugged = true
	if !l.hasMode {
		logger.Log(l, "link", "no mode to power on with")
		return nil
	}
	return l.powerOn()
}

// the critical section should be held.
func (l *Link) unplug() {
	l.plugged = false
	l.powerOff()
}

// Plugged returns true if the sink is plugged in.
func (l *Link) Plugged() bool {
	l.crit.Lock()
	defer l.crit.Unlock()
	return l.plugged
}

// Apply applies a single event to the link.
func (l *Link) Apply(ev Event) error {
	switch ev {
	case EventInterrupt:
		return l.HandleInterrupt()
	case EventPlug:
		l.crit.Lock()
		defer l.crit.Unlock()
		return l.plug()
	case EventUnplug:
		l.crit.Lock()
		defer l.crit.Unlock()
		l.unplug()
	case EventPowerOn:
		return l.PowerOn()
	case EventPowerOff:
		l.PowerOff()
	}
	return nil
}

// Run applies events to the link until the context is cancelled or the
// events channel is closed. Events that arrive while an event is being
// applied are collapsed so that only the most recent is applied.
//
// Errors from bring-up are logged and do not stop the loop. A failed
// bring-up leaves the link in the Error state until the next event.
func (l *Link) Run(ctx context.Context, events <-chan Event) error {
	for {
		var ev Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				return nil
			}
			ev = e
		}

		// last write wins
		ev = drain(events, ev)

		if err := l.Apply(ev); err != nil {
			logger.Logf(l, "link", "%s: %v", ev, err)
		}
	}
}

// drain returns the most recent pending event or ev if there are none.
func drain(events <-chan Event, ev Event) Event {
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return ev
			}
			ev = e
		default:
			return ev
		}
	}
}

// PollInterrupts sends EventInterrupt to the events channel whenever the HPD
// interrupt is pending. Used when there is no interrupt line to wait on.
func (l *Link) PollInterrupts(ctx context.Context, interval time.Duration, events chan<- Event) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if l.InterruptPending() {
				select {
				case events <- EventInterrupt:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}
