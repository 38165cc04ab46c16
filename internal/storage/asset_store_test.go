// internal/storage/asset_store_test.go
package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Corphon/ItemShowcase/internal/errors"
)

// makeFileHeaders 构造 multipart 文件头，模拟真实上传请求
func makeFileHeaders(t *testing.T, field string, names ...string) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, name := range names {
		fw, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes for " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File[field]
}

func newTestStore(t *testing.T, maxFileSize int64) *AssetStore {
	t.Helper()

	store, err := NewAssetStore(t.TempDir(), maxFileSize)
	require.NoError(t, err)
	return store
}

func storedFiles(t *testing.T, store *AssetStore) []string {
	t.Helper()

	entries, err := os.ReadDir(store.BaseDir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestIngestWritesAllFiles(t *testing.T) {
	store := newTestStore(t, 10<<20)

	cover := makeFileHeaders(t, "coverImage", "cover.png")[0]
	additional := makeFileHeaders(t, "additionalImages", "side.png", "back.png")

	coverName, additionalNames, err := store.Ingest(cover, additional)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(coverName, "-cover.png"))
	require.Len(t, additionalNames, 2)
	assert.True(t, strings.HasSuffix(additionalNames[0], "-side.png"))
	assert.True(t, strings.HasSuffix(additionalNames[1], "-back.png"))

	for _, name := range append([]string{coverName}, additionalNames...) {
		content, err := os.ReadFile(filepath.Join(store.BaseDir, name))
		require.NoError(t, err)
		assert.NotEmpty(t, content)
	}
}

func TestIngestMissingCover(t *testing.T) {
	store := newTestStore(t, 10<<20)

	_, _, err := store.Ingest(nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsAssetError(err))
	assert.Equal(t, apperrors.CodeMissingCoverImage, apperrors.ErrorCode(err))
	assert.Empty(t, storedFiles(t, store))
}

func TestIngestTooManyAdditionalImages(t *testing.T) {
	store := newTestStore(t, 10<<20)

	cover := makeFileHeaders(t, "coverImage", "cover.png")[0]
	additional := makeFileHeaders(t, "additionalImages",
		"1.png", "2.png", "3.png", "4.png", "5.png", "6.png")

	_, _, err := store.Ingest(cover, additional)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeTooManyAdditionalImages, apperrors.ErrorCode(err))

	// 整组失败，连封面都不能落盘
	assert.Empty(t, storedFiles(t, store))
}

func TestIngestAssetTooLarge(t *testing.T) {
	store := newTestStore(t, 4)

	cover := makeFileHeaders(t, "coverImage", "cover.png")[0]

	_, _, err := store.Ingest(cover, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAssetTooLarge, apperrors.ErrorCode(err))
	assert.Empty(t, storedFiles(t, store))
}

func TestIngestExactlyFiveAdditionalImages(t *testing.T) {
	store := newTestStore(t, 10<<20)

	cover := makeFileHeaders(t, "coverImage", "cover.png")[0]
	additional := makeFileHeaders(t, "additionalImages",
		"1.png", "2.png", "3.png", "4.png", "5.png")

	_, additionalNames, err := store.Ingest(cover, additional)
	require.NoError(t, err)
	assert.Len(t, additionalNames, 5)
}

func TestGenerateFilenameStripsPath(t *testing.T) {
	store := newTestStore(t, 10<<20)

	tests := []struct {
		original string
		wantBase string
	}{
		{"cover.png", "cover.png"},
		{"../../etc/passwd", "passwd"},
		{`..\..\evil.png`, "evil.png"},
		{"", "upload"},
	}

	for _, tt := range tests {
		name := store.generateFilename(tt.original)
		assert.True(t, strings.HasSuffix(name, "-"+tt.wantBase), "generateFilename(%q) = %q", tt.original, name)
		assert.NotContains(t, name, "/")
		assert.NotContains(t, name, `\`)
	}
}
