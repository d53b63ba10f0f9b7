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

package version

import (
	"fmt"
	"runtime/debug"
)

// The name to use when referring to the application
const ApplicationName = "hdmitx"

// number is set by the linker for release builds:
//
//	-ldflags "-X github.com/jetsetilly/hdmitx/version.number=v0.1.0"
var number string

// the vcs revision. suffixed with "+dirty" if the source has been modified
// but not committed
var revision string

// the version string. "unreleased" if built without a version number but with
// vcs information, "local" if there is neither (eg. with "go run .")
var version string

// Version returns the version string, the revision string and whether this is a
// numbered "release" version.
func Version() (string, string, bool) {
	return version, revision, version == number
}

func init() {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	switch {
	case vcsRevision == "":
		revision = "no revision information"
	case vcsModified:
		revision = fmt.Sprintf("%s+dirty", vcsRevision)
	default:
		revision = vcsRevision
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
