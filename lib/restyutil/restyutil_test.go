package restyutil

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestFormatHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Add("X-B", "2")
	headers.Add("X-A", "1")
	headers.Add("X-A", "one")
	require.Equal(t, "X-A: 1\nX-A: one\nX-B: 2", formatHeaders(headers))
	require.Equal(t, "", formatHeaders(nil))
}

func TestFormatRequestBody(t *testing.T) {
	require.Equal(t, "", formatRequestBody(nil))

	get, err := http.NewRequest(http.MethodGet, "http://example.com/mini", nil)
	require.NoError(t, err)
	require.Equal(t, "", formatRequestBody(get))

	// GetBody may be set and still hand back no body.
	get.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	require.Equal(t, "", formatRequestBody(get))

	post, err := http.NewRequest(http.MethodPost, "http://example.com/mini", strings.NewReader("date=2024-08-26"))
	require.NoError(t, err)
	require.Equal(t, "date=2024-08-26", formatRequestBody(post))
}

func TestInstrumentClientDumpsMessages(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "dumps")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	client := resty.New()
	InstrumentClient(client, nil, out)

	res, err := client.R().SetContext(context.Background()).Get(server.URL + "/mini")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())

	dump, err := os.ReadFile(filepath.Join(dir, "1.txt"))
	require.NoError(t, err)
	require.Contains(t, string(dump), "GET "+server.URL+"/mini")
	require.Contains(t, string(dump), "Content-Type: text/html")
	require.Contains(t, string(dump), "<html>ok</html>")
}

func TestInstrumentClientWithoutOutput(t *testing.T) {
	client := resty.New()
	InstrumentClient(client, nil, nil)

	_, err := client.R().Get("http://127.0.0.1:0/unreachable")
	require.Error(t, err)
}
