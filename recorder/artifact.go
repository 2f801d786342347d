package recorder

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"

	"github.com/echoverse/echoverse/internal/device"
	"github.com/echoverse/echoverse/internal/osutil"
)

// Artifact is a finalised recording.
type Artifact struct {
	// Locator is where the recording can be read from.
	Locator  string
	Format   device.Format
	Size     int64
	Duration time.Duration
}

// Open returns a reader for the recorded audio.
func (a Artifact) Open() (io.ReadCloser, error) {
	return os.Open(a.Locator)
}

// Assembler turns captured chunks into a playable artifact and reclaims
// artifacts that are no longer wanted.
type Assembler interface {
	Assemble(format device.Format, chunks [][]byte) (Artifact, error)
	Reclaim(a Artifact) error
}

// WAVAssembler writes recordings as WAV files into Dir.
type WAVAssembler struct {
	Dir string
}

// Assemble encodes the chunks into a new WAV file.
func (w *WAVAssembler) Assemble(
	format device.Format,
	chunks [][]byte,
) (a Artifact, err error) {
	if format.Precision != 2 {
		return a, errors.New("only 16-bit PCM is supported")
	}

	err = os.MkdirAll(w.Dir, osutil.DirPermission)
	if err != nil {
		return a, err
	}

	f, err := os.CreateTemp(w.Dir, "echo-*.wav")
	if err != nil {
		return a, err
	}

	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}

		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	pcm := newPCMStreamer(format, chunks)

	err = wav.Encode(f, pcm, beep.Format{
		SampleRate:  beep.SampleRate(format.SampleRate),
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	if err != nil {
		return a, err
	}

	info, err := f.Stat()
	if err != nil {
		return a, err
	}

	return Artifact{
		Locator:  f.Name(),
		Format:   format,
		Size:     info.Size(),
		Duration: beep.SampleRate(format.SampleRate).D(pcm.frames),
	}, nil
}

// Reclaim deletes the artifact file. Missing files are not an error.
func (w *WAVAssembler) Reclaim(a Artifact) error {
	err := os.Remove(a.Locator)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// pcmStreamer reads signed 16-bit little-endian PCM as a beep.Streamer.
type pcmStreamer struct {
	chunks [][]byte
	format device.Format
	frames int
	chunk  int
	offset int
}

func newPCMStreamer(format device.Format, chunks [][]byte) *pcmStreamer {
	p := &pcmStreamer{
		chunks: chunks,
		format: format,
	}

	// Stream skips the partial trailing frame of each chunk
	frame := format.Precision * format.NumChannels
	for _, c := range chunks {
		p.frames += len(c) / frame
	}

	return p
}

func (p *pcmStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	frame := p.format.Precision * p.format.NumChannels

	for n < len(samples) && p.chunk < len(p.chunks) {
		c := p.chunks[p.chunk]
		if p.offset+frame > len(c) {
			p.chunk++
			p.offset = 0

			continue
		}

		left := float64(int16(binary.LittleEndian.Uint16(c[p.offset:]))) / (1 << 15)
		right := left

		if p.format.NumChannels > 1 {
			right = float64(int16(binary.LittleEndian.Uint16(c[p.offset+2:]))) / (1 << 15)
		}

		samples[n] = [2]float64{left, right}
		p.offset += frame
		n++
	}

	return n, n > 0
}

func (p *pcmStreamer) Err() error {
	return nil
}
