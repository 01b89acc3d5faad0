package taskfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskapi/internal/model"
)

func writeTaskfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTaskfile(t *testing.T) {
	path := writeTaskfile(t, `
tasks:
  - title: Renew passport
    description: bring the old one
    due_date: 2026-09-01T09:00:00Z
  - title: Pay rent
    due_date: 2026-09-03T00:00:00Z
    completed: true
`)

	tasks, err := Load(path)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Renew passport", tasks[0].Title)
	assert.Equal(t, "bring the old one", tasks[0].Description)
	assert.True(t, tasks[0].DueDate.Equal(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)))
	assert.False(t, tasks[0].Completed)

	assert.Equal(t, "Pay rent", tasks[1].Title)
	assert.Empty(t, tasks[1].Description)
	assert.True(t, tasks[1].Completed)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeTaskfile(t, `
tasks:
  - title: Pay rent
    due: 2026-09-03T00:00:00Z
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidRecord(t *testing.T) {
	path := writeTaskfile(t, `
tasks:
  - description: no title here
    due_date: 2026-09-03T00:00:00Z
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tasks[0]")
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTaskfile(t, "")

	tasks, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	in := []model.Task{
		{
			ID:          4,
			Title:       "Water plants",
			Description: "balcony first",
			DueDate:     time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC),
		},
		{
			ID:        9,
			Title:     "File taxes",
			DueDate:   time.Date(2027, 4, 15, 0, 0, 0, 0, time.UTC),
			Completed: true,
		},
	}

	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Title, out[i].Title)
		assert.Equal(t, in[i].Description, out[i].Description)
		assert.True(t, in[i].DueDate.Equal(out[i].DueDate))
		assert.Equal(t, in[i].Completed, out[i].Completed)
	}
}
