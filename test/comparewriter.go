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

package test

// CompareWriter collects everything written to it. Tests use it to capture
// log and console output.
type CompareWriter struct {
	buf []byte
}

// Write implements the io.Writer interface. It never fails.
func (w *CompareWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Clear discards the collected output.
func (w *CompareWriter) Clear() {
	w.buf = w.buf[:0]
}

// Compare returns true if the collected output is exactly s.
func (w *CompareWriter) Compare(s string) bool {
	return string(w.buf) == s
}

func (w *CompareWriter) String() string {
	return string(w.buf)
}
