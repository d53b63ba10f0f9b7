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

package test

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// id builds a prefix for error messages from the optional tags passed to the
// expectation functions. the tags are useful when an expectation is made in a
// loop.
func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	var s strings.Builder
	for _, t := range tags {
		s.WriteString(fmt.Sprintf("%v: ", t))
	}
	return s.String()
}

// expect returns true if v is a 'success' value for its type.
func expect(t *testing.T, v any, tags ...any) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		return v
	case error:
		return v == nil
	case nil:
		return true
	default:
		t.Fatalf("%sunsupported type (%T) for expectation testing", id(tags...), v)
	}
	return false
}

// ExpectSuccess tests argument v for a success condition suitable for its
// type. Currently supported types:
//
//	bool -> bool == true
//	error -> error == nil
//
// If type is nil then the test will succeed.
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if !expect(t, v, tags...) {
		switch v := v.(type) {
		case error:
			t.Errorf("%sexpected success (error: %v)", id(tags...), v)
		default:
			t.Errorf("%sexpected success (%T)", id(tags...), v)
		}
		return false
	}
	return true
}

// ExpectFailure tests argument v for a failure condition suitable for its
// type. Types as for ExpectSuccess(). If type is nil then the test will fail.
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if expect(t, v, tags...) {
		t.Errorf("%sexpected failure (%T)", id(tags...), v)
		return false
	}
	return true
}

// ExpectEquality is used to test equality between one value and another.
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v != expectedValue {
		t.Errorf("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// ExpectInequality is used to test inequality between one value and another.
func ExpectInequality[T comparable](t *testing.T, v T, notExpectedValue T, tags ...any) bool {
	t.Helper()
	if v == notExpectedValue {
		t.Errorf("%sinequality test of type %T failed: '%v' does equal '%v'", id(tags...), v, v, notExpectedValue)
		return false
	}
	return true
}

// Approximate types are the types that can be used with ExpectApproximate.
type Approximate interface {
	~int | ~int32 | ~int64 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// ExpectApproximate tests whether a value is within tolerance of the expected
// value. The tolerance is a proportion of the expected value.
func ExpectApproximate[T Approximate](t *testing.T, v T, expectedValue T, tolerance float64, tags ...any) bool {
	t.Helper()
	top := float64(expectedValue) * (1 + tolerance)
	bot := float64(expectedValue) * (1 - tolerance)
	if bot > top {
		top, bot = bot, top
	}
	if float64(v) < bot || float64(v) > top {
		t.Errorf("%sapproximation test of type %T failed: '%v' is outside the range %.3f to %.3f", id(tags...), v, v, bot, top)
		return false
	}
	return true
}

// ExpectWithin tests whether a duration-like value lies in the closed range
// lo to hi.
func ExpectWithin[T Approximate](t *testing.T, v T, lo T, hi T, tags ...any) bool {
	t.Helper()
	if math.IsNaN(float64(v)) || v < lo || v > hi {
		t.Errorf("%srange test of type %T failed: '%v' is outside the range %v to %v", id(tags...), v, v, lo, hi)
		return false
	}
	return true
}
