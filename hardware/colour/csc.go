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

package colour

// Coefficients of the colour space converter. Each coefficient is a 16-bit
// fixed point value in the converter's native encoding. The fourth column
// is the offset.
type Coefficients struct {
	Name   string
	Matrix [3][4]uint16
	Scale  uint8
}

// YCbCr to RGB.
var (
	Inverse601 = Coefficients{
		Name: "inverse ITU601",
		Matrix: [3][4]uint16{
			{0x2000, 0x6926, 0x74fd, 0x010e},
			{0x2000, 0x2cdd, 0x0000, 0x7e9a},
			{0x2000, 0x0000, 0x38b4, 0x7e3b},
		},
		Scale: 1,
	}

	Inverse709 = Coefficients{
		Name: "inverse ITU709",
		Matrix: [3][4]uint16{
			{0x2000, 0x7106, 0x7a02, 0x00a7},
			{0x2000, 0x3264, 0x0000, 0x7e6d},
			{0x2000, 0x0000, 0x3b61, 0x7e25},
		},
		Scale: 1,
	}
)

// RGB to YCbCr.
var (
	Forward601 = Coefficients{
		Name: "forward ITU601",
		Matrix: [3][4]uint16{
			{0x2591, 0x1322, 0x074b, 0x0000},
			{0x6535, 0x2000, 0x7acc, 0x0200},
			{0x6acd, 0x7534, 0x2000, 0x0200},
		},
		Scale: 0,
	}

	Forward709 = Coefficients{
		Name: "forward ITU709",
		Matrix: [3][4]uint16{
			{0x2dc5, 0x0d9b, 0x049e, 0x0000},
			{0x62f0, 0x2000, 0x7d11, 0x0200},
			{0x6756, 0x78ab, 0x2000, 0x0200},
		},
		Scale: 0,
	}
)

// Identity passes the input through unchanged.
var Identity = Coefficients{
	Name: "identity",
	Matrix: [3][4]uint16{
		{0x2000, 0x0000, 0x0000, 0x0000},
		{0x0000, 0x2000, 0x0000, 0x0000},
		{0x0000, 0x0000, 0x2000, 0x0000},
	},
	Scale: 1,
}

// SelectCoefficients chooses the converter matrix for the configuration.
// Conversions that are neither to nor from RGB use the identity matrix.
func SelectCoefficients(cfg Config) Coefficients {
	if !cfg.IsConversion() {
		return Identity
	}

	switch {
	case cfg.Out == RGB:
		if cfg.Colorimetry == ITU601 {
			return Inverse601
		}
		return Inverse709
	case cfg.In == RGB:
		if cfg.Colorimetry == ITU601 {
			return Forward601
		}
		return Forward709
	}

	return Identity
}
