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

// Package link is the power state machine of the transmitter. It owns the
// register port and every component that programs it, and serialises
// bring-up, tear-down and hot plug handling with a single lock.
//
// A mode is set with Setup(), which stores the timing and brings the link up.
// The stored timing is used again by later calls to PowerOn(), whether they
// come from a DPMS request or from the sink being plugged in.
//
// Hot plug events arrive either through HandleInterrupt(), which reads the
// transmitter's interrupt status, or as Events delivered to Run().
package link

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/hdmitx/edid"
	"github.com/jetsetilly/hdmitx/hardware/audio"
	"github.com/jetsetilly/hdmitx/hardware/clocks"
	"github.com/jetsetilly/hdmitx/hardware/colour"
	"github.com/jetsetilly/hdmitx/hardware/infoframe"
	"github.com/jetsetilly/hdmitx/hardware/phy"
	"github.com/jetsetilly/hdmitx/hardware/port"
	"github.com/jetsetilly/hdmitx/hardware/preferences"
	"github.com/jetsetilly/hdmitx/hardware/video"
	"github.com/jetsetilly/hdmitx/logger"
)

// ErrNoMode is returned by PowerOn() if Setup() has never been called.
var ErrNoMode = errors.New("no mode has been set")

// Link is the transmitter link.
type Link struct {
	crit sync.Mutex

	p     port.Port
	prefs *preferences.Preferences
	phy   *phy.PHY
	acr   *audio.Regenerator

	// collaborator for Modes()
	source edid.Source

	// the timing stored by Setup() and the options derived from it
	timing  video.Timing
	opts    video.Options
	hasMode bool

	// the results of the most recent bring-up
	mode   video.Mode
	colour colour.Config
	avi    infoframe.AVI

	state   State
	plugged bool
	err     error

	quiet atomic.Bool
}

// NewLink is the preferred method of initialisation for the Link type.
func NewLink(p port.Port, prefs *preferences.Preferences, delay clocks.Delay) *Link {
	return &Link{
		p:     p,
		prefs: prefs,
		phy:   phy.NewPHY(p, delay),
		acr:   audio.NewRegenerator(p),
	}
}

// AllowLogging implements the logger.Permission interface.
func (l *Link) AllowLogging() bool {
	return !l.quiet.Load()
}

// SetQuiet stops the link from logging.
func (l *Link) SetQuiet(quiet bool) {
	l.quiet.Store(quiet)
}

// SetSource sets the collaborator used by Modes().
func (l *Link) SetSource(src edid.Source) {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.source = src
}

// PHY returns the PHY of the link.
func (l *Link) PHY() *phy.PHY {
	return l.phy
}

// Status is a snapshot of the link.
type Status struct {
	State   State
	Plugged bool
	Err     error

	// only meaningful if HasMode is true
	HasMode bool
	Timing  video.Timing
	Mode    video.Mode
	Colour  colour.Config
	AVI     infoframe.AVI

	// only meaningful if HasAudio is true
	HasAudio bool
	Audio    audio.Params
}

func (s Status) String() string {
	if !s.HasMode {
		return fmt.Sprintf("%s (no mode)", s.State)
	}
	var kind string
	if s.Mode.DVI {
		kind = "DVI"
	} else {
		kind = fmt.Sprintf("HDMI VIC %d", s.Mode.VIC)
	}
	return fmt.Sprintf("%s: %s %s %s", s.State, s.Timing, kind, s.Colour)
}

// Status returns a snapshot of the link.
func (l *Link) Status() Status {
	l.crit.Lock()
	defer l.crit.Unlock()

	s := Status{
		State:   l.state,
		Plugged: l.plugged,
		Err:     l.err,
		HasMode: l.hasMode,
		Timing:  l.timing,
		Mode:    l.mode,
		Colour:  l.colour,
		AVI:     l.avi,
	}
	s.Audio, s.HasAudio = l.acr.Current()
	return s
}

// State returns the current state of the link.
func (l *Link) State() State {
	l.crit.Lock()
	defer l.crit.Unlock()
	return l.state
}

// Setup sets a new mode and brings up the link with it. The VIC is found by
// comparing the timing against the CEA modes. Timings that are not CEA modes
// are sent as DVI.
func (l *Link) Setup(t video.Timing) error {
	return l.SetupMode(t, video.Options{
		VIC:  edid.LookupVIC(t),
		HDCP: l.prefs.HDCP.Get().(bool),
	})
}

// SetupMode is like Setup() but with explicit options.
func (l *Link) SetupMode(t video.Timing, opts video.Options) error {
	l.crit.Lock()
	defer l.crit.Unlock()

	// the new mode is only stored if it can be programmed
	if _, _, _, err := l.prepare(t, opts); err != nil {
		logger.Logf(l, "link", "setup: %v", err)
		return fmt.Errorf("link: %w", err)
	}

	l.timing = t
	l.opts = opts
	l.hasMode = true

	return l.bringUp()
}

// PowerOn brings up the link with the stored mode. It does nothing if the
// link is already active.
func (l *Link) PowerOn() error {
	l.crit.Lock()
	defer l.crit.Unlock()
	return l.powerOn()
}

// the critical section should be held.
func (l *Link) powerOn() error {
	if l.state == Active {
		return nil
	}
	if !l.hasMode {
		return fmt.Errorf("link: %w", ErrNoMode)
	}
	return l.bringUp()
}

// PowerOff disables the PHY. It does nothing if the link is already
// disabled.
func (l *Link) PowerOff() {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.powerOff()
}

// the critical section should be held.
func (l *Link) powerOff() {
	if l.state == Disabled {
		return
	}
	l.phy.Disable()
	l.state = Disabled
	l.err = nil
	logger.Log(l, "link", "disabled")
}

// DPMS turns the link on or off.
func (l *Link) DPMS(on bool) error {
	if on {
		return l.PowerOn()
	}
	l.PowerOff()
	return nil
}

// Modes returns the timings supported by the sink. An empty list is returned
// if there is no source of EDID.
func (l *Link) Modes() ([]video.Timing, error) {
	l.crit.Lock()
	src := l.source
	l.crit.Unlock()

	if src == nil {
		return nil, nil
	}
	t, err := src.Timings()
	if err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}
	return t, nil
}
