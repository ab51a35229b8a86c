package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/audiotidy/internal/core/config"
)

// testApp builds a root command with the rename command registered and
// a pre-loaded config, bypassing the Before hook used by main.
func testApp(t *testing.T, flags *Flags) (*cli.Command, *bytes.Buffer) {
	t.Helper()

	if flags.Config == nil {
		cfg := config.DefaultConfig()
		flags.Config = &cfg
	}

	var out bytes.Buffer
	app := &cli.Command{Name: "audiotidy", Writer: &out}
	app = NewRenameCmd(flags).Register(app)
	app = NewLsCmd(flags).Register(app)
	return app, &out
}

func TestRenameCmd(t *testing.T) {
	log.Logger = zerolog.Nop()

	t.Run("dry run leaves files untouched and writes mapping", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.wav", "b.mp3"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
		}
		mapping := filepath.Join(t.TempDir(), "mapping.csv")

		app, out := testApp(t, &Flags{})
		err := app.Run(context.Background(), []string{
			"audiotidy", "rename", "-i", dir, "--mapping", mapping,
		})
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(dir, "a.wav"))
		assert.NoError(t, err, "dry run must not rename")

		data, err := os.ReadFile(mapping)
		require.NoError(t, err)
		assert.Equal(t, "old_name,new_name\na.wav,speaker_001.wav\nb.mp3,speaker_002.mp3\n", string(data))

		assert.Contains(t, out.String(), "Previewed 2")
	})

	t.Run("apply renames files", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.wav", "b.mp3"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
		}
		mapping := filepath.Join(t.TempDir(), "mapping.csv")

		app, out := testApp(t, &Flags{})
		err := app.Run(context.Background(), []string{
			"audiotidy", "rename", "-i", dir, "--apply", "--yes", "--mapping", mapping,
		})
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(dir, "speaker_001.wav"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "speaker_002.mp3"))
		assert.NoError(t, err)

		assert.Contains(t, out.String(), "Renamed 2")
	})

	t.Run("prefix and start flags override config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.wav"), []byte("x"), 0o644))
		mapping := filepath.Join(t.TempDir(), "mapping.csv")

		app, _ := testApp(t, &Flags{})
		err := app.Run(context.Background(), []string{
			"audiotidy", "rename", "-i", dir, "-p", "datasetA", "-s", "7",
			"--apply", "--yes", "--mapping", mapping,
		})
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(dir, "datasetA_007.wav"))
		assert.NoError(t, err)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		app, _ := testApp(t, &Flags{})
		err := app.Run(context.Background(), []string{
			"audiotidy", "rename", "-i", filepath.Join(t.TempDir(), "missing"),
			"--mapping", filepath.Join(t.TempDir(), "mapping.csv"),
		})
		assert.Error(t, err)
	})

	t.Run("invalid prefix is rejected before any work", func(t *testing.T) {
		app, _ := testApp(t, &Flags{})
		err := app.Run(context.Background(), []string{
			"audiotidy", "rename", "-i", t.TempDir(), "-p", "bad/prefix",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prefix")
	})
}

func TestLsCmd(t *testing.T) {
	log.Logger = zerolog.Nop()

	t.Run("table lists candidates in order", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"b.mp3", "a.wav", "notes.txt", "speaker_001.ogg"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
		}

		app, out := testApp(t, &Flags{})
		err := app.Run(context.Background(), []string{"audiotidy", "ls", "-i", dir})
		require.NoError(t, err)

		s := out.String()
		assert.Contains(t, s, "a.wav")
		assert.Contains(t, s, "b.mp3")
		assert.Contains(t, s, "already renamed")
		assert.NotContains(t, s, "notes.txt")
		assert.Less(t, bytes.Index(out.Bytes(), []byte("a.wav")), bytes.Index(out.Bytes(), []byte("b.mp3")))
	})

	t.Run("json output is one object per line", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.wav"), []byte("x"), 0o644))

		app, out := testApp(t, &Flags{})
		err := app.Run(context.Background(), []string{"audiotidy", "ls", "-i", dir, "--json"})
		require.NoError(t, err)

		assert.JSONEq(t, `{"name":"a.wav","ext":".wav","already_renamed":false}`, out.String())
	})
}
