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

package test_test

import (
	"testing"

	"github.com/jetsetilly/hdmitx/test"
)

func TestCompareWriter(t *testing.T) {
	var w test.CompareWriter
	w.Write([]byte("hello "))
	w.Write([]byte("world"))
	test.ExpectSuccess(t, w.Compare("hello world"))
	w.Clear()
	test.ExpectSuccess(t, w.Compare(""))
}
