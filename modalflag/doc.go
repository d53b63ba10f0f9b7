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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Instead of defining flags globally, flags are added to
// an instance of Modes:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	verbose := md.AddBool("v", false, "verbose output")
//
// Modes are added with AddSubModes(). The first sub-mode is the default and
// is selected if the first non-flag argument does not name a sub-mode:
//
//	md.AddSubModes("RUN", "EDID", "ACR")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		...
//	}
//
// After the mode has been determined, NewMode() starts a new layer of flags
// for that mode. Sub-mode names are case insensitive.
package modalflag
