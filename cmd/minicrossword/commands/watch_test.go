package commands

import (
	"bytes"
	"context"
	"minicrossword/lib/chrono"
	"minicrossword/lib/clues"
	"minicrossword/lib/cluestore"
	"minicrossword/lib/testutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// manualCron hands registered jobs to the test instead of scheduling them.
type manualCron struct {
	specs   chan string
	jobs    chan func()
	stopped chan struct{}
}

func newManualCron() *manualCron {
	return &manualCron{
		specs:   make(chan string, 1),
		jobs:    make(chan func(), 1),
		stopped: make(chan struct{}),
	}
}

func (c *manualCron) Cron(spec string, callback func()) error {
	c.specs <- spec
	c.jobs <- callback
	return nil
}

func (c *manualCron) Stop() context.Context {
	close(c.stopped)
	return context.Background()
}

type watchResult struct {
	stdout string
	err    error
}

func startWatch(ctx context.Context, env testEnv, cronner chrono.CronAPI, args ...string) <-chan watchResult {
	var stdout bytes.Buffer
	cmd, a := newRootCmd(&stdout)
	if cronner != nil {
		a.newCron = func() chrono.CronAPI { return cronner }
	}
	cmd.SetArgs(append([]string{"--config", env.config, "watch"}, args...))

	done := make(chan watchResult, 1)
	go func() {
		err := execute(ctx, cmd, a)
		done <- watchResult{stdout: stdout.String(), err: err}
	}()
	return done
}

func waitWatch(t *testing.T, done <-chan watchResult) watchResult {
	select {
	case res := <-done:
		return res
	case <-time.After(time.Second * 10):
		t.Fatal("watch did not stop after cancellation")
		return watchResult{}
	}
}

func TestWatchNowWritesOutput(t *testing.T) {
	env := setupEnv(t, testutil.ReadMiniPage(t))
	output := filepath.Join(env.dir, "clues.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := startWatch(ctx, env, nil, "--now", "-o", output)

	require.Eventually(t, func() bool {
		written, err := os.ReadFile(output)
		return err == nil && string(written) == expectedJSON
	}, time.Second*10, time.Millisecond*20)

	cancel()
	res := waitWatch(t, done)
	require.NoError(t, res.err)
	require.Empty(t, res.stdout)
}

func TestWatchArchivesScheduledRuns(t *testing.T) {
	env := setupEnv(t, testutil.ReadMiniPage(t))
	archive := filepath.Join(env.dir, "archive.db")
	cronner := newManualCron()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := startWatch(ctx, env, cronner, "--schedule", "*/5 * * * *", "--archive", archive, "-o", filepath.Join(env.dir, "clues.json"))

	require.Equal(t, "*/5 * * * *", <-cronner.specs)
	job := <-cronner.jobs
	job()

	cancel()
	res := waitWatch(t, done)
	require.NoError(t, res.err)

	select {
	case <-cronner.stopped:
	default:
		t.Fatal("cron was not stopped")
	}

	db, err := cluestore.OpenDB(archive)
	require.NoError(t, err)
	defer db.Close()
	store := cluestore.NewStore(db)

	summaries, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 4, summaries[0].Clues)

	model, err := store.Pull(context.Background(), summaries[0].Date)
	require.NoError(t, err)
	down, err := model.Get(clues.Down)
	require.NoError(t, err)
	require.Equal(t, "Body of water", down[1].Text())
}
