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

package logger_test

import (
	"testing"

	"github.com/jetsetilly/hdmitx/logger"
	"github.com/jetsetilly/hdmitx/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "")

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\n")

	// clear the test.Writer buffer before continuing, makes comparisons easier
	// to manage
	tw.Clear()

	logger.Log(logger.Allow, "test2", "this is another test")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	logger.Tail(tw, 100)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for exactly the correct number of entries is okay
	tw.Clear()
	logger.Tail(tw, 2)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	tw.Clear()
	logger.Tail(tw, 1)
	test.ExpectEquality(t, tw.String(), "test2: this is another test\n")

	// and no entries
	tw.Clear()
	logger.Tail(tw, 0)
	test.ExpectEquality(t, tw.String(), "")
}

func TestLoggerRepeat(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Logf(logger.Allow, "phy", "locked after %d attempts", 1)
	logger.Logf(logger.Allow, "phy", "locked after %d attempts", 1)
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "phy: locked after 1 attempts (repeat x2)\n")
}

func TestLoggerPermission(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Log(logger.Deny, "test", "should not appear")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "")
}

func TestLoggerEcho(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Log(logger.Allow, "link", "plugin")
	logger.SetEcho(tw, true)
	test.ExpectEquality(t, tw.String(), "link: plugin\n")

	logger.Log(logger.Allow, "link", "plugout")
	test.ExpectEquality(t, tw.String(), "link: plugin\nlink: plugout\n")

	logger.SetEcho(nil, false)
	logger.Log(logger.Allow, "link", "plugin")
	test.ExpectEquality(t, tw.String(), "link: plugin\nlink: plugout\n")
}
