package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("12345"), 0o644))

	svc := newTestService(t)
	info, err := svc.Stat(file)
	require.NoError(t, err)

	assert.Equal(t, "f.txt", info.Name)
	assert.Equal(t, file, info.Path)
	assert.Equal(t, int64(5), info.Size)
	assert.Equal(t, "5.0 B", info.SizeHuman)
	assert.False(t, info.IsDir)
	assert.False(t, info.Modified.IsZero())
	assert.False(t, info.Accessed.IsZero())
}

func TestStatDir(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t)

	info, err := svc.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir)
}

func TestStatMissing(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Stat(filepath.Join(t.TempDir(), "ghost"))

	var accessErr *AccessError
	assert.ErrorAs(t, err, &accessErr)
}

func TestReadPreviewText(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "readme.txt")
	require.NoError(t, os.WriteFile(file, []byte("plain text content"), 0o644))

	svc := newTestService(t)
	p, err := svc.ReadPreview(file)
	require.NoError(t, err)

	assert.True(t, p.Text)
	assert.Equal(t, "plain text content", p.Content)
	assert.Equal(t, 18, p.Size)
}

func TestReadPreviewBinaryWithholdsContent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "img.png")
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	require.NoError(t, os.WriteFile(file, png, 0o644))

	svc := newTestService(t)
	p, err := svc.ReadPreview(file)
	require.NoError(t, err)

	assert.False(t, p.Text)
	assert.Empty(t, p.Content)
	assert.Equal(t, "image/png", p.MIME)
}

func TestIsTextMIME(t *testing.T) {
	assert.True(t, isTextMIME("text/plain; charset=utf-8"))
	assert.True(t, isTextMIME("application/json"))
	assert.False(t, isTextMIME("image/png"))
	assert.False(t, isTextMIME("application/octet-stream"))
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0.0 B"},
		{5, "5.0 B"},
		{1023, "1023.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
		{1099511627776, "1.0 TB"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatBytes(tc.n))
	}
}
