package scan

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWAV assembles a minimal RIFF/WAVE file with the given byte rate
// and data payload size.
func buildWAV(t *testing.T, byteRate uint32, dataSize int) []byte {
	t.Helper()

	var buf bytes.Buffer
	write := func(v any) {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}

	buf.WriteString("RIFF")
	write(uint32(36 + dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	write(uint32(16))
	write(uint16(1))  // PCM
	write(uint16(1))  // mono
	write(byteRate / 2)
	write(byteRate)
	write(uint16(2))
	write(uint16(16))

	buf.WriteString("data")
	write(uint32(dataSize))
	buf.Write(make([]byte, dataSize))

	return buf.Bytes()
}

func TestWavDuration(t *testing.T) {
	t.Run("derives duration from data size and byte rate", func(t *testing.T) {
		data := buildWAV(t, 1024, 2048)

		seconds, err := wavDuration(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 2.0, seconds)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		data := buildWAV(t, 3000, 1000)

		seconds, err := wavDuration(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 0.33, seconds)
	})

	t.Run("skips unknown chunks before data", func(t *testing.T) {
		data := buildWAV(t, 1000, 1000)

		// Splice a LIST chunk between fmt and data.
		var buf bytes.Buffer
		buf.Write(data[:36])
		buf.WriteString("LIST")
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(4)))
		buf.WriteString("INFO")
		buf.Write(data[36:])

		seconds, err := wavDuration(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, 1.0, seconds)
	})

	t.Run("rejects non-RIFF data", func(t *testing.T) {
		_, err := wavDuration(bytes.NewReader([]byte("ID3\x04this is an mp3, not a wav")))
		assert.Error(t, err)
	})

	t.Run("rejects truncated header", func(t *testing.T) {
		_, err := wavDuration(bytes.NewReader([]byte("RIFF")))
		assert.Error(t, err)
	})

	t.Run("rejects missing data chunk", func(t *testing.T) {
		data := buildWAV(t, 1000, 1000)
		_, err := wavDuration(bytes.NewReader(data[:38])) // data chunk header cut off
		assert.Error(t, err)
	})

	t.Run("rejects zero byte rate", func(t *testing.T) {
		data := buildWAV(t, 0, 1000)
		_, err := wavDuration(bytes.NewReader(data))
		assert.Error(t, err)
	})
}

func TestProbeWAV(t *testing.T) {
	t.Run("reads duration from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.wav")
		require.NoError(t, os.WriteFile(path, buildWAV(t, 1024, 2048), 0o644))

		d := probeWAV(path)
		assert.Equal(t, DurationKnown, d.State)
		assert.Equal(t, 2.0, d.Seconds)
	})

	t.Run("missing file reports error state", func(t *testing.T) {
		d := probeWAV(filepath.Join(t.TempDir(), "missing.wav"))
		assert.Equal(t, DurationError, d.State)
		assert.Error(t, d.Err)
	})

	t.Run("corrupted file reports error state", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.wav")
		require.NoError(t, os.WriteFile(path, []byte("not audio"), 0o644))

		d := probeWAV(path)
		assert.Equal(t, DurationError, d.State)
		assert.Error(t, d.Err)
	})
}
