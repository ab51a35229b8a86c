package scan

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// probeWAV reads the RIFF/WAVE header chunks at path and derives the
// duration from the data chunk size and the byte rate in the fmt chunk.
// Only the header is read; file contents are never validated.
func probeWAV(path string) Duration {
	f, err := os.Open(path)
	if err != nil {
		return Duration{State: DurationError, Err: err}
	}
	defer func() { _ = f.Close() }()

	seconds, err := wavDuration(f)
	if err != nil {
		return Duration{State: DurationError, Err: err}
	}
	return Duration{Seconds: seconds, State: DurationKnown}
}

func wavDuration(r io.ReadSeeker) (float64, error) {
	var riff struct {
		ID     [4]byte
		Size   uint32
		Format [4]byte
	}
	if err := binary.Read(r, binary.LittleEndian, &riff); err != nil {
		return 0, fmt.Errorf("read RIFF header: %w", err)
	}
	if string(riff.ID[:]) != "RIFF" || string(riff.Format[:]) != "WAVE" {
		return 0, errors.New("not a RIFF/WAVE file")
	}

	var byteRate uint32
	var dataSize uint32
	haveFmt, haveData := false, false

	// Walk chunks until both fmt and data are seen. Chunk payloads are
	// word-aligned, so odd sizes carry one pad byte.
	for !(haveFmt && haveData) {
		var header struct {
			ID   [4]byte
			Size uint32
		}
		if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return 0, errors.New("missing fmt or data chunk")
			}
			return 0, fmt.Errorf("read chunk header: %w", err)
		}

		switch string(header.ID[:]) {
		case "fmt ":
			var fmtChunk struct {
				AudioFormat   uint16
				NumChannels   uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(r, binary.LittleEndian, &fmtChunk); err != nil {
				return 0, fmt.Errorf("read fmt chunk: %w", err)
			}
			byteRate = fmtChunk.ByteRate
			haveFmt = true
			if rest := int64(header.Size) - 16; rest > 0 {
				if _, err := r.Seek(rest, io.SeekCurrent); err != nil {
					return 0, fmt.Errorf("skip fmt extension: %w", err)
				}
			}

		case "data":
			dataSize = header.Size
			haveData = true
			skip := int64(header.Size)
			if header.Size%2 == 1 {
				skip++
			}
			if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
				return 0, fmt.Errorf("skip data chunk: %w", err)
			}

		default:
			skip := int64(header.Size)
			if header.Size%2 == 1 {
				skip++
			}
			if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
				return 0, fmt.Errorf("skip %q chunk: %w", string(header.ID[:]), err)
			}
		}
	}

	if byteRate == 0 {
		return 0, errors.New("fmt chunk reports zero byte rate")
	}

	seconds := float64(dataSize) / float64(byteRate)
	return float64(int64(seconds*100+0.5)) / 100, nil
}
