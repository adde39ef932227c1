package intent

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	return NewWithPath(filepath.Join(t.TempDir(), "intents.json"))
}

func TestLoad_CreatesDefaults(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.Load())

	assert.Equal(t, []string{"greet", "bye", "thanks", "name", "help"}, s.Tags())
	assert.FileExists(t, s.Path())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"intents\": [")
	assert.Contains(t, string(data), "\"tag\": \"greet\"")
}

func TestLoad_RoundTrip(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Load())
	before := s.Intents()

	require.NoError(t, s.Save())

	reloaded := NewWithPath(s.Path())
	require.NoError(t, reloaded.Load())

	assert.Equal(t, before, reloaded.Intents())
	assert.Equal(t, Defaults().Intents, reloaded.Intents())
}

func TestLoad_ExistingFile(t *testing.T) {
	s := newTestService(t)
	content := `{"intents":[{"tag":"weather","keywords":["rain","sun"],"responses":["Bring an umbrella."]}]}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))

	require.NoError(t, s.Load())

	assert.Equal(t, []Intent{{
		Tag:       "weather",
		Keywords:  []string{"rain", "sun"},
		Responses: []string{"Bring an umbrella."},
	}}, s.Intents())
}

func TestLoad_CorruptFile(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))

	err := s.Load()
	require.Error(t, err)

	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "parse", storageErr.Op)
	assert.Equal(t, s.Path(), storageErr.Path)
	assert.Empty(t, s.Intents())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))

	s.UseDefaults()
	assert.Len(t, s.Intents(), 5)
}

func TestLoad_MissingTag(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"intents":[{"keywords":["x"]}]}`), 0644))

	var storageErr *StorageError
	require.ErrorAs(t, s.Load(), &storageErr)
	assert.Equal(t, "parse", storageErr.Op)
}

func TestAdd_AppendsAndPersists(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Load())

	added, err := s.Add("weather", []string{"rain"}, []string{"Bring an umbrella."})
	require.NoError(t, err)
	assert.Equal(t, "weather", added.Tag)

	tags := s.Tags()
	assert.Equal(t, "weather", tags[len(tags)-1])

	reloaded := NewWithPath(s.Path())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, s.Intents(), reloaded.Intents())
}

func TestAdd_DuplicateTagKept(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Load())

	_, err := s.Add("greet", []string{"howdy"}, []string{"Howdy!"})
	require.NoError(t, err)

	intents := s.Intents()
	require.Len(t, intents, 6)
	assert.Equal(t, "greet", intents[0].Tag)
	assert.Equal(t, "greet", intents[5].Tag)
	assert.Equal(t, []string{"howdy"}, intents[5].Keywords)
}

func TestAdd_SaveFailureRollsBack(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Load())
	before := s.Intents()

	require.NoError(t, os.Remove(s.Path()))
	require.NoError(t, os.Mkdir(s.Path(), 0755))

	_, err := s.Add("weather", []string{"rain"}, []string{"Bring an umbrella."})

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "write", storageErr.Op)
	assert.Equal(t, before, s.Intents())
	assert.NotContains(t, s.Tags(), "weather")
}

func TestAdd_EmptyTagRejected(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Load())

	_, err := s.Add("", []string{"x"}, []string{"y"})
	require.Error(t, err)
	assert.Len(t, s.Intents(), 5)
}

func TestIntents_ReturnsCopy(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Load())

	intents := s.Intents()
	intents[0].Tag = "mutated"

	assert.Equal(t, "greet", s.Intents()[0].Tag)
}
