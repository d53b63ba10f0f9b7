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

import "fmt"

// State of the link.
type State int

// List of valid State values.
const (
	Disabled State = iota
	PoweringOn
	Active
	Error
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "disabled"
	case PoweringOn:
		return "powering on"
	case Active:
		return "active"
	case Error:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Event is a request delivered to the Run() loop.
type Event int

// List of valid Event values.
const (
	// the interrupt line of the transmitter has been raised
	EventInterrupt Event = iota

	// the HPD line has changed state. these are used when the HPD line is
	// watched directly rather than through the transmitter's interrupt
	EventPlug
	EventUnplug

	// display power management
	EventPowerOn
	EventPowerOff
)

func (e Event) String() string {
	switch e {
	case EventInterrupt:
		return "interrupt"
	case EventPlug:
		return "plug"
	case EventUnplug:
		return "unplug"
	case EventPowerOn:
		return "power on"
	case EventPowerOff:
		return "power off"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}
