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

// Package test bundles helper functions to remove common boilerplate from
// tests written for the standard go test harness.
//
// The Expect*() functions report a failed expectation with t.Errorf() and
// return false. The Demand*() functions are the same but the test is stopped
// with t.Fatalf(). Demand functions should be used when later parts of the
// test depend on the value being correct, for example the length of a slice
// that is about to be indexed.
//
// Success and failure are interpreted according to the type of the value
// being tested. See ExpectSuccess() for the list of supported types. A nil
// value is considered a success because that's how errors work in Go.
//
// CompareWriter implements io.Writer and is useful for
// capturing output, from the logger package for example.
package test
