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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/hdmitx/prefs"
	"github.com/jetsetilly/hdmitx/test"
)

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// single value
	prefs.PushCommandLineStack("foo::bar")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")

	// single value but with additional space
	prefs.PushCommandLineStack("   foo:: bar ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")

	// more than one key/value in the prefs string. remaining string will be
	// sorted
	prefs.PushCommandLineStack("foo::bar; baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux; foo::bar")

	// invalid prefs string
	prefs.PushCommandLineStack("foo_bar")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// partially invalid prefs string
	prefs.PushCommandLineStack("foo_bar;baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")

	// get prefs value that doesn't exist after pushing a partially invalid
	// prefs string
	prefs.PushCommandLineStack("foo::bar;baz_qux")
	ok, _ := prefs.GetCommandLinePref("baz")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
}

func TestCommandLineStack(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)

	prefs.PushCommandLineStack("foo::bar")
	prefs.PushCommandLineStack("baz::qux")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)

	// a value is consumed by GetCommandLinePref
	ok, v := prefs.GetCommandLinePref("baz")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// first group still exists
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
}
