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

// Package prefs facilitates the storage of preferential values in the
// hdmitx system. It is intended to be used to store values that are
// relatively stable between bring-ups, for example the audio sample rate
// or the name of the DDC bus.
//
// Preference values are typed (Bool, String, Int and Float) and are added
// to a Disk instance under a key. Keys are arranged hierarchically with
// full stops separating the groups:
//
//	hdmitx.audio.rate
//	hdmitx.phy.lockattempts
//
// More than one Disk can share the same file. When a Disk is saved, the
// entries in the file that belong to other Disk instances are preserved.
//
// Values can be overridden for the duration of a session with the command
// line stack. See PushCommandLineStack() for details.
package prefs
