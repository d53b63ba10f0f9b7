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

//go:build !release

package paths_test

import (
	"os"
	"testing"

	"github.com/jetsetilly/hdmitx/paths"
	"github.com/jetsetilly/hdmitx/test"
)

func TestPaths(t *testing.T) {
	// the development base path is relative to the working directory
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	t.Cleanup(func() { os.Chdir(wd) })
	test.DemandSuccess(t, os.Chdir(t.TempDir()))

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".hdmitx/foo/bar/baz")

	pth, err = paths.ResourcePath("foo/bar", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".hdmitx/foo/bar")

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".hdmitx/baz")

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".hdmitx")

	_, err = os.Stat(".hdmitx/foo/bar")
	test.ExpectSuccess(t, err)
}
