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

//go:build !statsview

package statsview

import (
	"fmt"
	"io"
)

// Launch reports that the stats server has not been compiled in.
func Launch(output io.Writer) {
	fmt.Fprintln(output, "stats server not available (build with the statsview tag)")
}

// Available is true when the server has been compiled in.
func Available() bool {
	return false
}
