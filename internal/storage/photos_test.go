package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(MaxPhotoBytes * 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["photo"][0]
}

func TestAllowedPhoto(t *testing.T) {
	assert.True(t, AllowedPhoto(fileHeader(t, "rex.jpg", []byte("data"))))
	assert.True(t, AllowedPhoto(fileHeader(t, "rex.JPEG", []byte("data"))))
	assert.True(t, AllowedPhoto(fileHeader(t, "rex.png", []byte("data"))))
	assert.False(t, AllowedPhoto(fileHeader(t, "rex.gif", []byte("data"))))
	assert.False(t, AllowedPhoto(fileHeader(t, "rex", []byte("data"))))

	big := fileHeader(t, "rex.jpg", []byte("data"))
	big.Size = MaxPhotoBytes + 1
	assert.False(t, AllowedPhoto(big))
}

func TestSaveDeleteAndURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPhotoStore(dir, "http://localhost:3000/")
	require.NoError(t, err)

	key, err := store.Save(fileHeader(t, "rex.JPG", []byte("photo-bytes")))
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(key))

	stored, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	assert.Equal(t, []byte("photo-bytes"), stored)

	assert.Equal(t, "http://localhost:3000/storage/"+key, store.URL(key))

	require.NoError(t, store.Delete(key))
	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))

	// Deleting again must stay silent.
	require.NoError(t, store.Delete(key))
	require.NoError(t, store.Delete(""))
}
