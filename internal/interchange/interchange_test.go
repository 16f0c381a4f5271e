package interchange_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainprompt "github.com/alanyang/promptvault/internal/domain/prompt"
	"github.com/alanyang/promptvault/internal/interchange"
)

func TestFilename_CurrentDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "prompts-2024-06-01.json", interchange.Filename(now))
}

func TestExportImport_RoundTripIsIdentity(t *testing.T) {
	ts := time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC)
	original := []domainprompt.Prompt{
		{
			ID: uuid.New(), Title: "Refactor helper", Content: "You are…",
			Category: "dev", Tags: []string{"go", "go"}, CreatedAt: ts, UpdatedAt: ts.Add(time.Hour),
		},
		{
			ID: uuid.New(), Title: "", Content: "", Category: "",
			Tags: []string{}, CreatedAt: ts, UpdatedAt: ts,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, interchange.Export(&buf, original))

	got, bad, err := interchange.Import(&buf)
	require.NoError(t, err)
	assert.Empty(t, bad)
	require.Len(t, got, len(original))

	for i := range original {
		assert.Equal(t, original[i].ID, got[i].ID)
		assert.Equal(t, original[i].Title, got[i].Title)
		assert.Equal(t, original[i].Content, got[i].Content)
		assert.Equal(t, original[i].Category, got[i].Category)
		assert.Equal(t, original[i].Tags, got[i].Tags)
		assert.True(t, original[i].CreatedAt.Equal(got[i].CreatedAt))
		assert.True(t, original[i].UpdatedAt.Equal(got[i].UpdatedAt))
	}
}

func TestExport_PrettyPrinted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, interchange.Export(&buf, []domainprompt.Prompt{{ID: uuid.New()}}))
	assert.Contains(t, buf.String(), "\n  {", "export is indented for human diffing")
}

func TestImport_RejectsNonArrayTopLevel(t *testing.T) {
	_, _, err := interchange.Import(strings.NewReader(`{"a": 1}`))
	assert.ErrorIs(t, err, interchange.ErrNotArray)
}

func TestImport_RejectsNullTopLevel(t *testing.T) {
	_, _, err := interchange.Import(strings.NewReader(`null`))
	assert.ErrorIs(t, err, interchange.ErrNotArray)

	_, _, err = interchange.Import(strings.NewReader("  null\n"))
	assert.ErrorIs(t, err, interchange.ErrNotArray)
}

func TestImport_RejectsUnparsableText(t *testing.T) {
	_, _, err := interchange.Import(strings.NewReader(`not json at all`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, interchange.ErrNotArray)
}

func TestImport_ValidRecord(t *testing.T) {
	in := `[{"id":"` + uuid.New().String() + `","title":"New","content":"c","category":"g","tags":[],"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`

	got, bad, err := interchange.Import(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, bad)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Title)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got[0].CreatedAt.UTC())
}

func TestImport_SkipsAndReportsInvalidRecords(t *testing.T) {
	valid := uuid.New().String()
	in := `[
		{"title":"no id","content":"c","category":"g","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"},
		{"id":"` + valid + `","title":"ok","content":"c","category":"g","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"},
		{"id":"` + uuid.New().String() + `","title":"bad time","content":"c","category":"g","createdAt":"yesterday","updatedAt":"2024-01-01T00:00:00Z"}
	]`

	got, bad, err := interchange.Import(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Title)

	require.Len(t, bad, 2)
	assert.Equal(t, 0, bad[0].Index)
	assert.Contains(t, bad[0].Err, "missing id")
	assert.Equal(t, 2, bad[1].Index)
	assert.Contains(t, bad[1].Err, "invalid createdAt")
}

func TestImport_ClampsUpdatedBeforeCreated(t *testing.T) {
	in := `[{"id":"` + uuid.New().String() + `","title":"t","content":"c","category":"g","createdAt":"2024-06-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`

	got, bad, err := interchange.Import(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, bad)
	require.Len(t, got, 1)
	assert.True(t, got[0].UpdatedAt.Equal(got[0].CreatedAt), "createdAt <= updatedAt must hold after import")
}

func TestImport_MissingTagsBecomeEmptySlice(t *testing.T) {
	in := `[{"id":"` + uuid.New().String() + `","title":"t","content":"c","category":"g","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`

	got, _, err := interchange.Import(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Tags)
	assert.Empty(t, got[0].Tags)
}

func TestImport_EmptyArray(t *testing.T) {
	got, bad, err := interchange.Import(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, bad)
	assert.Empty(t, got)
}
