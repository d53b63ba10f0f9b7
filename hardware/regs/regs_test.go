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

package regs_test

import (
	"testing"

	"github.com/jetsetilly/hdmitx/hardware/regs"
	"github.com/jetsetilly/hdmitx/test"
)

func TestCSCCoef(t *testing.T) {
	test.ExpectEquality(t, regs.CSCCoef(0, 0), regs.CSCCoefA1MSB)
	test.ExpectEquality(t, regs.CSCCoef(1, 0), 0x410a)
	test.ExpectEquality(t, regs.CSCCoef(2, 3)+1, regs.CSCCoefC4LSB)
}

func TestNames(t *testing.T) {
	test.ExpectEquality(t, regs.Name(regs.FCInvidConf), "FC_INVIDCONF")
	test.ExpectEquality(t, regs.Name(regs.CSCCoefC4LSB), "CSC_COEF_C4_LSB")
	test.ExpectEquality(t, regs.Name(regs.CSCCoef(1, 1)), "CSC_COEF_B2_MSB")
	test.ExpectEquality(t, regs.Name(0x7fff), "0x7fff")

	reg, ok := regs.Lookup("phy_stat0")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, reg, regs.PhyStat0)
	_, ok = regs.Lookup("NOT_A_REGISTER")
	test.ExpectFailure(t, ok)

	// no two registers share a name
	seen := make(map[string]uint16)
	for reg, n := range regs.Names {
		if other, ok := seen[n]; ok {
			t.Errorf("%s used for %#04x and %#04x", n, reg, other)
		}
		seen[n] = reg
	}
}
