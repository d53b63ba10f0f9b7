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


// Package edid decodes the display identification data read from a sink and
// turns it into the list of timings the sink supports.
//
// Only the parts of the data that matter to mode selection are decoded: the
// detailed timing descriptors of the base block and the CEA-861 extension,
// the short video descriptors of the CEA extension and the flags that say
// whether the sink is an HDMI device.
package edid

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/hdmitx/hardware/video"
)

// BlockSize is the size of every EDID block.
const BlockSize = 128

// Sentinel errors returned by Decode().
var (
	ErrShort    = errors.New("edid: data too short")
	ErrHeader   = errors.New("edid: bad header")
	ErrChecksum = errors.New("edid: bad checksum")
)

// Source is anything that can list the timings supported by the sink.
type Source interface {
	Timings() ([]video.Timing, error)
}

var header = [8]byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}

// offsets into the base block
const (
	baseDescriptors = 0x36
	baseExtensions  = 0x7e
	descriptorSize  = 18
	numDescriptors  = 4
)

// CEA-861 extension block
const (
	ceaTag        = 0x02
	ceaDataStart  = 0x04
	ceaBlockVideo = 2
	ceaBlockVSDB  = 3
)

// the IEEE OUI of the HDMI licensing body, as stored in a vendor specific
// data block
var hdmiOUI = [3]byte{0x03, 0x0c, 0x00}

// EDID is the decoded form of the display identification data.
type EDID struct {
	// timings from the detailed timing descriptors in the order they appear.
	// the first is the preferred timing of the sink
	Detailed []video.Timing

	// VICs from the short video descriptors of the CEA extension. Native
	// lists the VICs flagged as native by the sink
	VICs   []int
	Native []int

	// extension block count as reported by the base block
	Extensions int

	// CEA extension flags
	CEA        bool
	HDMI       bool
	Underscan  bool
	BasicAudio bool
	YCbCr444   bool
	YCbCr422   bool
}

func (e EDID) String() string {
	s := fmt.Sprintf("%d detailed, %d vics", len(e.Detailed), len(e.VICs))
	if e.HDMI {
		s = fmt.Sprintf("%s, hdmi", s)
	} else {
		s = fmt.Sprintf("%s, dvi", s)
	}
	return s
}

// Timings returns the detailed timings followed by the timings of the VICs
// that are not already in the list. Unknown VICs are ignored.
func (e EDID) Timings() []video.Timing {
	var ts []video.Timing
	seen := make(map[int]bool)

	for _, t := range e.Detailed {
		ts = append(ts, t)
		seen[LookupVIC(t)] = true
	}

	for _, v := range e.VICs {
		t, ok := VIC(v)
		if !ok {
			continue
		}

		// VICs that differ only in aspect ratio share a timing
		k := LookupVIC(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		ts = append(ts, t)
	}

	return ts
}

// Decode the raw data. The base block must be present and valid. Extension
// blocks that are missing or invalid are ignored.
func Decode(raw []byte) (EDID, error) {
	var e EDID

	if len(raw) < BlockSize {
		return e, fmt.Errorf("%w: %d bytes", ErrShort, len(raw))
	}
	if [8]byte(raw[:8]) != header {
		return e, ErrHeader
	}
	if !checksum(raw[:BlockSize]) {
		return e, fmt.Errorf("%w: base block", ErrChecksum)
	}

	e.Extensions = int(raw[baseExtensions])

	for i := 0; i < numDescriptors; i++ {
		o := baseDescriptors + i*descriptorSize
		if t, ok := decodeDTD([descriptorSize]byte(raw[o : o+descriptorSize])); ok {
			e.Detailed = append(e.Detailed, t)
		}
	}

	for b := 1; b <= e.Extensions; b++ {
		o := b * BlockSize
		if o+BlockSize > len(raw) {
			break
		}
		blk := raw[o : o+BlockSize]
		if !checksum(blk) {
			continue
		}
		if blk[0] == ceaTag {
			e.decodeCEA(blk)
		}
	}

	return e, nil
}

func checksum(blk []byte) bool {
	var sum uint8
	for _, b := range blk {
		sum += b
	}
	return sum == 0
}

func (e *EDID) decodeCEA(blk []byte) {
	e.CEA = true

	dtdStart := int(blk[2])
	flags := blk[3]
	e.Underscan = flags&0x80 != 0
	e.BasicAudio = flags&0x40 != 0
	e.YCbCr444 = flags&0x20 != 0
	e.YCbCr422 = flags&0x10 != 0

	// revision 1 extensions have no data blocks
	if blk[1] >= 3 && dtdStart > ceaDataStart && dtdStart <= BlockSize {
		e.decodeDataBlocks(blk[ceaDataStart:dtdStart])
	}

	if dtdStart < ceaDataStart {
		return
	}
	for o := dtdStart; o+descriptorSize <= BlockSize-1; o += descriptorSize {
		t, ok := decodeDTD([descriptorSize]byte(blk[o : o+descriptorSize]))
		if !ok {
			break
		}
		e.Detailed = append(e.Detailed, t)
	}
}

func (e *EDID) decodeDataBlocks(data []byte) {
	for i := 0; i < len(data); {
		n := int(data[i] & 0x1f)
		tag := data[i] >> 5
		if n == 0 || i+1+n > len(data) {
			return
		}
		payload := data[i+1 : i+1+n]

		switch tag {
		case ceaBlockVideo:
			for _, svd := range payload {
				v, native := shortVideo(svd)
				if v == 0 {
					continue
				}
				e.VICs = append(e.VICs, v)
				if native {
					e.Native = append(e.Native, v)
				}
			}
		case ceaBlockVSDB:
			if n >= 3 && [3]byte(payload[:3]) == hdmiOUI {
				e.HDMI = true
			}
		}

		i += n + 1
	}
}

// shortVideo returns the VIC of a short video descriptor and whether it is
// flagged as native. Codes 129 to 192 are native VICs 1 to 64 and codes
// above 192 are plain VICs.
func shortVideo(svd uint8) (int, bool) {
	switch {
	case svd == 0 || svd == 128 || svd == 255:
		return 0, false
	case svd > 128 && svd <= 192:
		return int(svd & 0x7f), true
	}
	return int(svd), false
}

// decodeDTD returns false if the descriptor is a display descriptor rather
// than a timing.
func decodeDTD(d [descriptorSize]byte) (video.Timing, bool) {
	// pixel clock in units of 10kHz
	clk := int(d[1])<<8 | int(d[0])
	if clk == 0 {
		return video.Timing{}, false
	}

	hActive := int(d[4]&0xf0)<<4 | int(d[2])
	hBlank := int(d[4]&0x0f)<<8 | int(d[3])
	vActive := int(d[7]&0xf0)<<4 | int(d[5])
	vBlank := int(d[7]&0x0f)<<8 | int(d[6])

	hFront := int(d[11]&0xc0)<<2 | int(d[8])
	hSync := int(d[11]&0x30)<<4 | int(d[9])
	vFront := int(d[11]&0x0c)<<2 | int(d[10]>>4)
	vSync := int(d[11]&0x03)<<4 | int(d[10]&0x0f)

	t := video.Timing{
		PixClock:    clk * 10000,
		XRes:        hActive,
		RightMargin: hFront,
		HSyncLen:    hSync,
		LeftMargin:  hBlank - hFront - hSync,
		YRes:        vActive,
		LowerMargin: vFront,
		VSyncLen:    vSync,
		UpperMargin: vBlank - vFront - vSync,
		Interlaced:  d[17]&0x80 != 0,
	}

	// polarity bits only mean something for digital separate sync
	if (d[17]&0x18)>>3 == 3 {
		t.VSyncHigh = d[17]&0x04 != 0
		t.HSyncHigh = d[17]&0x02 != 0
	}

	// refresh is the field rate. the active height of an interlaced timing
	// is the frame height
	lines := vActive + vBlank
	if lines > 0 && hActive+hBlank > 0 {
		den := (hActive + hBlank) * lines
		t.Refresh = (t.PixClock + den/2) / den
	}
	if t.Interlaced {
		t.YRes *= 2
	}

	return t, true
}
