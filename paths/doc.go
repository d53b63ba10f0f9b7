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

// Package paths contains functions to prepare paths to hdmitx resources, the
// preferences file and saved EDID dumps being the main ones.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate config directory:
//
//	p, err := paths.ResourcePath("edid", "sink.bin")
//
// For builds without the "release" build tag the base path is ".hdmitx" in the
// current working directory. For release builds it is a directory in the
// user's config directory, as returned by os.UserConfigDir(). On a modern
// Linux system that is something like:
//
//	/home/user/.config/hdmitx/edid/sink.bin
//
// In both cases the directories leading to the resource are created if they
// do not exist. The resource file itself is never created.
package paths
