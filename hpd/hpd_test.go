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


package hpd_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jetsetilly/hdmitx/hardware/link"
	"github.com/jetsetilly/hdmitx/hpd"
	"github.com/jetsetilly/hdmitx/test"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func expectEvent(t *testing.T, events <-chan link.Event, ev link.Event) {
	t.Helper()
	select {
	case e := <-events:
		test.ExpectEquality(t, e, ev)
	case <-time.After(5 * time.Second):
		t.Fatalf("no %s event", ev)
	}
}

func TestWatcher(t *testing.T) {
	pin := &gpiotest.Pin{N: "HPD", L: gpio.Low, EdgesChan: make(chan gpio.Level)}

	w, err := hpd.NewWatcher(pin)
	test.DemandSuccess(t, err)
	w.Wait = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan link.Event)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, events)
	}()

	// the initial level is always reported
	expectEvent(t, events, link.EventUnplug)

	pin.EdgesChan <- gpio.High
	expectEvent(t, events, link.EventPlug)

	// an edge with no change of level is not reported
	pin.EdgesChan <- gpio.High
	pin.EdgesChan <- gpio.Low
	expectEvent(t, events, link.EventUnplug)

	cancel()
	test.ExpectSuccess(t, errors.Is(<-done, context.Canceled))
}

func TestWatcherPlugged(t *testing.T) {
	pin := &gpiotest.Pin{N: "HPD", L: gpio.High, EdgesChan: make(chan gpio.Level)}

	w, err := hpd.NewWatcher(pin)
	test.DemandSuccess(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan link.Event, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, events)
	}()

	expectEvent(t, events, link.EventPlug)
	cancel()
	test.ExpectSuccess(t, errors.Is(<-done, context.Canceled))
}
