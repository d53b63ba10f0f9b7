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

package monitor

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal puts the input terminal into cbreak mode so that the monitor sees
// every key press as it happens.
type Terminal struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// Initialise the terminal. An error is returned if the file is not a
// terminal.
func (pt *Terminal) Initialise(input *os.File) error {
	if input == nil || !term.IsTerminal(int(input.Fd())) {
		return fmt.Errorf("monitor: input is not a terminal")
	}
	pt.input = input

	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	return nil
}

// CanonicalMode puts terminal into normal, everyday canonical mode
func (pt *Terminal) CanonicalMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// CBreakMode puts terminal into cbreak mode
func (pt *Terminal) CBreakMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.cbreakAttr)
}
