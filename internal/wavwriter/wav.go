// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wavwriter records the value of a signal as a WAV file, one sample
// per simulation cycle. Samples are buffered in memory and written to disk
// on Close. It is therefore only suitable for short runs.
//
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// SampleRate of the output file. It has no relation to simulated time.
const SampleRate = 44100

const bitDepth = 16

// WavWriter buffers signal samples.
type WavWriter struct {
	filename string
	buffer   []int
}

// New returns a WavWriter that will write to the named file.
func New(filename string) (*WavWriter, error) {
	if filename == "" {
		return nil, errors.New("wavwriter: empty file name")
	}
	return &WavWriter{filename: filename}, nil
}

// Add appends a sample for a signal value of the given width in bits. The
// value is scaled to the full 16 bits signed range.
func (ww *WavWriter) Add(v uint64, width int) {
	switch {
	case width <= 0:
		v = 0
	case width < bitDepth:
		max := uint64(1)<<uint(width) - 1
		v = (v & max) * 0xFFFF / max
	case width > bitDepth:
		v >>= uint(width - bitDepth)
	}
	ww.buffer = append(ww.buffer, int(v&0xFFFF)-0x8000)
}

// Len returns the number of buffered samples.
func (ww *WavWriter) Len() int { return len(ww.buffer) }

// Close writes the buffered samples to disk.
func (ww *WavWriter) Close() (rerr error) {
	f, err := os.Create(ww.filename)
	if err != nil {
		return errors.Wrap(err, "wavwriter")
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = errors.Wrap(err, "wavwriter")
		}
	}()

	enc := wav.NewEncoder(f, SampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           ww.buffer,
		SourceBitDepth: bitDepth,
	}
	if err = enc.Write(buf); err != nil {
		return errors.Wrap(err, "wavwriter")
	}
	return errors.Wrap(enc.Close(), "wavwriter")
}
