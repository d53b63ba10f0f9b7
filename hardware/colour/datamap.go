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

import "fmt"

type formatDepth struct {
	format Format
	depth  int
}

// video input mapping codes for TX_INVID0
var dataMaps = map[formatDepth]uint8{
	{RGB, 8}:       0x01,
	{RGB, 10}:      0x03,
	{RGB, 12}:      0x05,
	{RGB, 16}:      0x07,
	{YCbCr444, 8}:  0x09,
	{YCbCr444, 10}: 0x0b,
	{YCbCr444, 12}: 0x0d,
	{YCbCr444, 16}: 0x0f,
	{YCbCr422, 8}:  0x16,
	{YCbCr422, 10}: 0x14,
	{YCbCr422, 12}: 0x12,
}

// DataMap returns the video input mapping code for the input format and
// colour depth.
func DataMap(format Format, depth int) (uint8, error) {
	if format == XVYCC444 {
		return 0, fmt.Errorf("%w: %s is not an input format", ErrUnsupportedFormat, format)
	}
	if m, ok := dataMaps[formatDepth{format, depth}]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %d-bit %s", ErrUnsupportedDepth, depth, format)
}
