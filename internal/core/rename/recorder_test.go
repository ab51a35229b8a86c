package rename

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRecorder(t *testing.T) {
	t.Run("writes header and rows in order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mapping.csv")

		rec, err := NewCSVRecorder(path)
		require.NoError(t, err)

		require.NoError(t, rec.WriteRow("a.wav", "speaker_001.wav"))
		require.NoError(t, rec.WriteRow("b.mp3", "speaker_002.mp3"))
		require.NoError(t, rec.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		g := goldie.New(t,
			goldie.WithFixtureDir("testdata/golden"),
			goldie.WithNameSuffix(".golden"),
		)
		g.Assert(t, "mapping", data)
	})

	t.Run("rows are flushed before close", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mapping.csv")

		rec, err := NewCSVRecorder(path)
		require.NoError(t, err)
		defer func() { _ = rec.Close() }()

		require.NoError(t, rec.WriteRow("a.wav", "speaker_001.wav"))

		// Read back without closing: per-row flushing means a run that
		// dies mid-way still leaves completed rows behind.
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old_name,new_name\na.wav,speaker_001.wav\n", string(data))
	})

	t.Run("header only for empty run", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mapping.csv")

		rec, err := NewCSVRecorder(path)
		require.NoError(t, err)
		require.NoError(t, rec.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old_name,new_name\n", string(data))
	})

	t.Run("quotes names containing commas", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mapping.csv")

		rec, err := NewCSVRecorder(path)
		require.NoError(t, err)
		require.NoError(t, rec.WriteRow("take 1, final.wav", "speaker_001.wav"))
		require.NoError(t, rec.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old_name,new_name\n\"take 1, final.wav\",speaker_001.wav\n", string(data))
	})

	t.Run("create fails on bad path", func(t *testing.T) {
		_, err := NewCSVRecorder(filepath.Join(t.TempDir(), "missing", "mapping.csv"))
		assert.Error(t, err)
	})
}
