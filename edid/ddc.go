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


package edid

import (
	"fmt"
	"os"
	"sync"

	"github.com/jetsetilly/hdmitx/hardware/video"
	"github.com/jetsetilly/hdmitx/logger"
	"periph.io/x/conn/v3/i2c"
)

// DDCAddress is the I2C address of the EDID on the display data channel.
const DDCAddress = 0x50

// MaxBlocks is the number of blocks that can be read without a segment
// pointer.
const MaxBlocks = 2

// DDC reads the EDID from the sink over the display data channel.
type DDC struct {
	crit sync.Mutex
	dev  *i2c.Dev

	// the most recent successful read
	raw []byte
}

// NewDDC is the preferred method of initialisation for the DDC type. A nil
// bus is allowed, in which case the sink is treated as having no EDID.
func NewDDC(bus i2c.Bus) *DDC {
	d := &DDC{}
	if bus != nil {
		d.dev = &i2c.Dev{Bus: bus, Addr: DDCAddress}
	}
	return d
}

// Read the base block and the first extension block if there is one.
func (d *DDC) Read() ([]byte, error) {
	d.crit.Lock()
	defer d.crit.Unlock()

	if d.dev == nil {
		return nil, nil
	}

	raw, err := d.block(0)
	if err != nil {
		return nil, err
	}

	ext := int(raw[baseExtensions])
	if ext+1 > MaxBlocks {
		logger.Logf(logger.Allow, "edid", "%d extension blocks, reading %d", ext, MaxBlocks-1)
		ext = MaxBlocks - 1
	}

	for b := 1; b <= ext; b++ {
		blk, err := d.block(b)
		if err != nil {
			return nil, err
		}
		raw = append(raw, blk...)
	}

	d.raw = raw
	return raw, nil
}

func (d *DDC) block(b int) ([]byte, error) {
	blk := make([]byte, BlockSize)
	if err := d.dev.Tx([]byte{uint8(b * BlockSize)}, blk); err != nil {
		return nil, fmt.Errorf("ddc: block %d: %w", b, err)
	}
	return blk, nil
}

// Raw returns the data from the most recent successful read.
func (d *DDC) Raw() []byte {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.raw
}

// Timings implements the Source interface. The EDID is read again on every
// call because the sink may have changed since the last call.
func (d *DDC) Timings() ([]video.Timing, error) {
	raw, err := d.Read()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return Bytes(raw).Timings()
}

// Bytes is EDID data that has already been read. It implements the Source
// interface.
type Bytes []byte

// Timings implements the Source interface.
func (b Bytes) Timings() ([]video.Timing, error) {
	e, err := Decode(b)
	if err != nil {
		return nil, err
	}
	logger.Logf(logger.Allow, "edid", "%s", e)
	return e.Timings(), nil
}

// FromFile loads EDID data from a file, as dumped from a sink.
func FromFile(filename string) (Bytes, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("edid: %w", err)
	}
	if _, err := Decode(raw); err != nil {
		return nil, err
	}
	return Bytes(raw), nil
}
