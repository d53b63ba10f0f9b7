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

package logger

import (
	"io"
)

// the process has one log. the link, the PHY and the audio regenerator all
// write to it and the CLI decides where it goes.
var central = newLogger(maxCentral)

// a single bring-up logs a few dozen entries. this is enough for the monitor
// to look back over several hot plug events.
const maxCentral = 1024

// Log records detail under tag if perm allows it.
func Log(perm Permission, tag, detail string) {
	if perm == Allow || perm.AllowLogging() {
		central.log(tag, detail)
	}
}

// Logf is like Log() but detail is a format string.
func Logf(perm Permission, tag, detail string, args ...interface{}) {
	if perm == Allow || perm.AllowLogging() {
		central.logf(tag, detail, args...)
	}
}

// Clear empties the log.
func Clear() {
	central.clear()
}

// Write copies every entry to output, oldest first.
func Write(output io.Writer) {
	central.write(output)
}

// Tail copies the most recent entries to output. Asking for more entries than
// there are is not an error.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// SetEcho sends each new entry to output as it is logged. With writeRecent
// the entries that have not yet been echoed are sent first. A nil output
// stops the echo.
func SetEcho(output io.Writer, writeRecent bool) {
	central.setEcho(output, writeRecent)
}
