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

//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address the stats server listens on. The port is chosen so that it does not
// clash with other debug servers on the same host.
const Address = "localhost:12680"

// the page served by statsview
const page = "/debug/statsview"

// Launch starts the stats server in the background and tells output where to
// find it. The server runs until the process exits.
func Launch(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		statsview.New().Start()
	}()
	fmt.Fprintf(output, "runtime stats at http://%s%s\n", Address, page)
}

// Available is true when the server has been compiled in.
func Available() bool {
	return true
}
