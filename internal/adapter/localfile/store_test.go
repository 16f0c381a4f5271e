package localfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/promptvault/internal/adapter/localfile"
	portstore "github.com/alanyang/promptvault/internal/port/store"
)

func TestLoad_MissingSlot(t *testing.T) {
	s, err := localfile.New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load(context.Background(), "prompts")
	assert.ErrorIs(t, err, portstore.ErrSlotNotFound)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, err := localfile.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	payload := []byte(`[{"id":"x"}]`)
	require.NoError(t, s.Save(ctx, "prompts", payload))

	got, err := s.Load(ctx, "prompts")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSave_OverwritesWholeSlot(t *testing.T) {
	s, err := localfile.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "prompts", []byte("first-longer-payload")))
	require.NoError(t, s.Save(ctx, "prompts", []byte("second")))

	got, err := s.Load(ctx, "prompts")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := localfile.New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "prompts", []byte("{}")))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestNew_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := localfile.New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
