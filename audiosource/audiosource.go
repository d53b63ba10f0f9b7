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


// Package audiosource finds the sample rate of the audio that will be sent
// over the link. The sample rate is what the audio clock regenerator needs
// to choose N and CTS.
package audiosource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	acr "github.com/jetsetilly/hdmitx/hardware/audio"
	"github.com/jetsetilly/hdmitx/logger"
)

// Sentinel errors.
var (
	ErrUnknownFormat   = errors.New("unknown audio format")
	ErrUnsupportedRate = errors.New("unsupported sample rate")
)

const logTag = "audiosource"

// Source describes a stream of audio.
type Source struct {
	Name       string
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

func (s Source) String() string {
	return fmt.Sprintf("%s: %dHz %dch %dbit %s", s.Name, s.SampleRate, s.Channels, s.BitDepth, s.Duration)
}

// Validate returns an error if the sample rate cannot be carried by the
// link.
func (s Source) Validate() error {
	if !acr.IsSupportedRate(s.SampleRate) {
		return fmt.Errorf("audiosource: %w: %d", ErrUnsupportedRate, s.SampleRate)
	}
	return nil
}

// FromFormat describes audio in the given format.
func FromFormat(name string, f *audio.Format) (Source, error) {
	if f == nil {
		return Source{}, fmt.Errorf("audiosource: %w: no format", ErrUnknownFormat)
	}
	s := Source{
		Name:       name,
		SampleRate: f.SampleRate,
		Channels:   f.NumChannels,
	}
	return s, s.Validate()
}

// FromFile reads the header of a WAV or MP3 file. The type of the file is
// decided by its extension.
func FromFile(filename string) (Source, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Source{}, fmt.Errorf("audiosource: %w", err)
	}
	defer f.Close()

	var s Source

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		s, err = fromWAV(f)
	case ".mp3":
		s, err = fromMP3(f)
	default:
		return Source{}, fmt.Errorf("audiosource: %w: %s", ErrUnknownFormat, filename)
	}
	if err != nil {
		return Source{}, fmt.Errorf("audiosource: %w", err)
	}

	s.Name = filepath.Base(filename)
	logger.Logf(logger.Allow, logTag, "%s", s)

	return s, s.Validate()
}

func fromWAV(r io.ReadSeeker) (Source, error) {
	dec := wav.NewDecoder(r)
	if dec == nil {
		return Source{}, fmt.Errorf("wav: error decoding")
	}
	if !dec.IsValidFile() {
		return Source{}, fmt.Errorf("wav: not a valid wav file")
	}

	dur, err := dec.Duration()
	if err != nil {
		return Source{}, fmt.Errorf("wav: %w", err)
	}

	return Source{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Duration:   dur,
	}, nil
}

// mp3 streams are always decoded to 16bit stereo
const (
	mp3Channels = 2
	mp3BitDepth = 16
)

func fromMP3(r io.ReadSeeker) (Source, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Source{}, fmt.Errorf("mp3: %w", err)
	}

	s := Source{
		SampleRate: dec.SampleRate(),
		Channels:   mp3Channels,
		BitDepth:   mp3BitDepth,
	}

	// length is in bytes of decoded stream
	if l := dec.Length(); l > 0 && s.SampleRate > 0 {
		frames := l / (mp3Channels * mp3BitDepth / 8)
		s.Duration = time.Duration(frames) * time.Second / time.Duration(s.SampleRate)
	}

	return s, nil
}
