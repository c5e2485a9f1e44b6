package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filedash/filedash/internal/fs"
	"github.com/filedash/filedash/internal/infrastructure/logging"
	"github.com/filedash/filedash/internal/infrastructure/monitoring"
	"github.com/filedash/filedash/internal/session"
)

var (
	metricsOnce sync.Once
	testMetrics *monitoring.Metrics
)

// sharedMetrics avoids duplicate Prometheus registration across tests.
func sharedMetrics() *monitoring.Metrics {
	metricsOnce.Do(func() { testMetrics = monitoring.NewMetrics() })
	return testMetrics
}

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	logger := logging.NewDefault()
	svc := fs.NewService("/", logger)
	sessions := session.NewManager(svc, dir)

	r := gin.New()
	NewHandlers(svc, sessions, sharedMetrics(), logger).Register(r)
	return r, dir
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestIndexAndHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "filedash-backend", decode(t, w)["service"])

	w = doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestListEndpoint(t *testing.T) {
	r, dir := newTestRouter(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0o644))

	w := doJSON(t, r, http.MethodGet, "/fs/list?path="+dir, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(2), body["count"])
	entries := body["entries"].([]interface{})
	first := entries[0].(map[string]interface{})
	assert.Equal(t, true, first["is_dir"])
}

func TestListMissingParam(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/fs/list", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMissingDirIs404(t *testing.T) {
	r, dir := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/fs/list?path="+filepath.Join(dir, "ghost"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchEndpoint(t *testing.T) {
	r, dir := newTestRouter(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "Report.PDF"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	w := doJSON(t, r, http.MethodGet, "/fs/search?root="+dir+"&contains=report&ext=pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(1), body["count"])
}

func TestWriteThenRead(t *testing.T) {
	r, dir := newTestRouter(t)
	file := filepath.Join(dir, "note.txt")

	w := doJSON(t, r, http.MethodPost, "/fs/files", WriteFileRequest{Path: file, Content: "hello"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/fs/read?path="+file, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "hello", body["content"])
	assert.Equal(t, true, body["text"])
}

func TestWriteMissingPathIs400(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/fs/files", map[string]string{"content": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMakeDirEndpoint(t *testing.T) {
	r, dir := newTestRouter(t)
	target := filepath.Join(dir, "a", "b")

	w := doJSON(t, r, http.MethodPost, "/fs/dirs", MakeDirRequest{Path: target})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.DirExists(t, target)
}

func TestStatEndpoint(t *testing.T) {
	r, dir := newTestRouter(t)
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("12345"), 0o644))

	w := doJSON(t, r, http.MethodGet, "/fs/stat?path="+file, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(5), body["size"])
	assert.Equal(t, "5.0 B", body["size_human"])
}

func TestCopyEndpoint(t *testing.T) {
	r, dir := newTestRouter(t)
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	w := doJSON(t, r, http.MethodPost, "/fs/copy", TransferRequest{Source: src, Destination: dst})
	require.Equal(t, http.StatusOK, w.Code)
	assert.FileExists(t, src)
	assert.FileExists(t, dst)
}

func TestMoveEndpoint(t *testing.T) {
	r, dir := newTestRouter(t)
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	w := doJSON(t, r, http.MethodPost, "/fs/move", TransferRequest{Source: src, Destination: dst})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)
}

func TestDeleteEndpoint(t *testing.T) {
	r, dir := newTestRouter(t)
	sub := filepath.Join(dir, "full")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "f.txt"), []byte("x"), 0o644))

	w := doJSON(t, r, http.MethodDelete, "/fs?path="+sub, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.DirExists(t, sub)

	w = doJSON(t, r, http.MethodDelete, "/fs?path="+sub+"&recursive=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NoDirExists(t, sub)
}

func TestDeleteMissingIs404(t *testing.T) {
	r, dir := newTestRouter(t)
	w := doJSON(t, r, http.MethodDelete, "/fs?path="+filepath.Join(dir, "ghost"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	r, dir := newTestRouter(t)
	other := filepath.Join(dir, "other")
	require.NoError(t, os.Mkdir(other, 0o755))

	w := doJSON(t, r, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(t, r, http.MethodGet, "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dir, decode(t, w)["working_dir"])

	w = doJSON(t, r, http.MethodPut, "/sessions/"+id+"/workdir", WorkdirRequest{Path: other})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, other, decode(t, w)["working_dir"])

	w = doJSON(t, r, http.MethodDelete, "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkdirRejectsFile(t *testing.T) {
	r, dir := newTestRouter(t)
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	w := doJSON(t, r, http.MethodPost, "/sessions", nil)
	id := decode(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodPut, "/sessions/"+id+"/workdir", WorkdirRequest{Path: file})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
