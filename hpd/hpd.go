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


// Package hpd watches a hot plug detect line wired to a GPIO and turns its
// edges into link events. It is used on boards where the HPD signal of the
// connector does not reach the transmitter.
package hpd

import (
	"context"
	"fmt"
	"time"

	"github.com/jetsetilly/hdmitx/hardware/link"
	"github.com/jetsetilly/hdmitx/logger"
	"periph.io/x/conn/v3/gpio"
)

// DefaultWait is how long the watcher waits for an edge before checking
// whether it has been cancelled.
const DefaultWait = 100 * time.Millisecond

// Watcher delivers plug and unplug events from a GPIO.
type Watcher struct {
	pin gpio.PinIn

	// Wait is the longest time between checks of the context
	Wait time.Duration

	// the most recently delivered level
	level gpio.Level
}

// NewWatcher is the preferred method of initialisation for the Watcher type.
// The pin is configured as an input with edge detection on both edges. The
// line is expected to have an external pull down.
func NewWatcher(pin gpio.PinIn) (*Watcher, error) {
	if err := pin.In(gpio.PullNoChange, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("hpd: %s: %w", pin, err)
	}
	return &Watcher{
		pin:  pin,
		Wait: DefaultWait,
	}, nil
}

func event(l gpio.Level) link.Event {
	if l == gpio.High {
		return link.EventPlug
	}
	return link.EventUnplug
}

// Run sends an event for the current level of the line and then one event
// for every change of level until the context is cancelled. Edges that do
// not change the level are ignored.
func (w *Watcher) Run(ctx context.Context, events chan<- link.Event) error {
	w.level = w.pin.Read()
	logger.Logf(logger.Allow, "hpd", "%s is %s", w.pin, w.level)
	if err := send(ctx, events, event(w.level)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !w.pin.WaitForEdge(w.Wait) {
			continue
		}

		l := w.pin.Read()
		if l == w.level {
			continue
		}
		w.level = l

		logger.Logf(logger.Allow, "hpd", "%s is %s", w.pin, l)
		if err := send(ctx, events, event(l)); err != nil {
			return err
		}
	}
}

func send(ctx context.Context, events chan<- link.Event, ev link.Event) error {
	select {
	case events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
