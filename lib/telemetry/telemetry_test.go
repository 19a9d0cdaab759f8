package telemetry

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitSlogToFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	logFile := filepath.Join(t.TempDir(), "minicrossword.log")
	closer, err := InitSlog(SlogOptions{File: logFile})
	require.NoError(t, err)

	slog.Debug("hidden at info level")
	slog.Info("clues written", "count", 10)
	require.NoError(t, closer.Close())

	contents, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(contents), "level=INFO")
	require.Contains(t, string(contents), `msg="clues written" count=10`)
	require.NotContains(t, string(contents), "hidden at info level")
}

func TestInitSlogBadPath(t *testing.T) {
	_, err := InitSlog(SlogOptions{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	require.Error(t, err)
}

func TestTransport(t *testing.T) {
	kind, endpoint, err := OtlpConnConfig{GrpcEndpoint: "http://localhost:4317", HttpEndpoint: "http://localhost:4318"}.transport()
	require.NoError(t, err)
	require.Equal(t, "grpc", kind)
	require.Equal(t, "http://localhost:4317", endpoint)

	kind, _, err = OtlpConnConfig{HttpEndpoint: "http://localhost:4318"}.transport()
	require.NoError(t, err)
	require.Equal(t, "http", kind)

	_, _, err = OtlpConnConfig{}.transport()
	require.ErrorIs(t, err, ErrNoEndpoint)
}

func TestSetupWithoutEndpoints(t *testing.T) {
	_, err := Setup(context.Background(), "test:telemetry", Config{})
	require.ErrorIs(t, err, ErrNoEndpoint)
}

func TestInstrumentPerfStats(t *testing.T) {
	cleanup := SetupForTesting(t, "test:telemetry")
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, InstrumentPerfStats(ctx, time.Millisecond*10))
	time.Sleep(time.Millisecond * 30)
	cancel()

	require.NoError(t, Telemetry{}.Shutdown(context.Background()))
}
