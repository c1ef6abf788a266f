package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memObjectAPI struct {
	objects map[string][]byte
	putErr  error
	delErr  error
	puts    int
}

func newMemObjectAPI() *memObjectAPI {
	return &memObjectAPI{objects: make(map[string][]byte)}
}

func (m *memObjectAPI) Put(_ context.Context, bucket, key string, data []byte, _, _ string) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memObjectAPI) Delete(_ context.Context, bucket, key string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.objects, bucket+"/"+key)
	return nil
}

func (m *memObjectAPI) PublicURL(bucket, key string) string {
	return "https://cdn.test/" + bucket + "/" + key
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage("image/png", 1024))
	assert.NoError(t, ValidateImage("image/webp", MaxUploadSize))
	assert.ErrorIs(t, ValidateImage("video/mp4", 1024), ErrNotImage)
	assert.ErrorIs(t, ValidateImage("application/octet-stream", 1024), ErrNotImage)
	assert.ErrorIs(t, ValidateImage("image/png", MaxUploadSize+1), ErrTooLarge)
}

func TestObjectName(t *testing.T) {
	name := ObjectName("background", "Sunset Final.JPG")
	assert.True(t, strings.HasPrefix(name, "background-"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	// Extensionless inputs still get a usable key.
	assert.True(t, strings.HasSuffix(ObjectName("project", "raw"), ".bin"))

	// Random suffix keeps two same-millisecond names apart.
	assert.NotEqual(t, ObjectName("project", "a.png"), ObjectName("project", "a.png"))
}

func TestStageRejectsBeforeUpload(t *testing.T) {
	store := newMemObjectAPI()
	g := NewGateway(store, zerolog.Nop())

	_, err := g.Stage(context.Background(), BucketProjects, "project", "a.txt", "text/plain", 10, strings.NewReader("hello"))
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = g.Stage(context.Background(), BucketProjects, "project", "a.png", "image/png", MaxUploadSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrTooLarge)

	// Neither rejection may touch the store.
	assert.Equal(t, 0, store.puts)
}

func TestStageCommit(t *testing.T) {
	store := newMemObjectAPI()
	g := NewGateway(store, zerolog.Nop())

	staged, err := g.Stage(context.Background(), BucketProjects, "project", "cover.png", "image/png", 5, strings.NewReader("12345"))
	require.NoError(t, err)
	assert.Contains(t, staged.URL, staged.Key)
	assert.Len(t, store.objects, 1)

	assert.Equal(t, OutcomeCommitted, staged.Commit())
	assert.Len(t, store.objects, 1)

	// A commit settles the object; a late abort must not delete it.
	assert.Equal(t, OutcomeCommitted, staged.Abort(context.Background()))
	assert.Len(t, store.objects, 1)
}

func TestStageAbortCompensates(t *testing.T) {
	store := newMemObjectAPI()
	g := NewGateway(store, zerolog.Nop())

	staged, err := g.Stage(context.Background(), BucketProjects, "project", "cover.png", "image/png", 5, strings.NewReader("12345"))
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompensated, staged.Abort(context.Background()))
	assert.Empty(t, store.objects)
}

func TestStageAbortOrphansWhenDeleteFails(t *testing.T) {
	store := newMemObjectAPI()
	store.delErr = errors.New("bucket unavailable")
	g := NewGateway(store, zerolog.Nop())

	staged, err := g.Stage(context.Background(), BucketProjects, "project", "cover.png", "image/png", 5, strings.NewReader("12345"))
	require.NoError(t, err)

	assert.Equal(t, OutcomeOrphaned, staged.Abort(context.Background()))
	assert.Len(t, store.objects, 1)
}

func TestRemoveReportsFailure(t *testing.T) {
	store := newMemObjectAPI()
	g := NewGateway(store, zerolog.Nop())

	store.objects["projects/zombie.png"] = []byte{1}
	require.NoError(t, g.Remove(context.Background(), BucketProjects, "zombie.png"))
	assert.Empty(t, store.objects)

	store.delErr = errors.New("bucket unavailable")
	assert.Error(t, g.Remove(context.Background(), BucketProjects, "zombie.png"))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "committed", OutcomeCommitted.String())
	assert.Equal(t, "compensated", OutcomeCompensated.String())
	assert.Equal(t, "orphaned", OutcomeOrphaned.String())
}
