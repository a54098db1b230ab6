package view_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whaeuser/plotterm/internal/service/log"
	"github.com/whaeuser/plotterm/internal/view"
)

type fakePage struct {
	mu       sync.Mutex
	mounts   int
	cleanups int
}

func (f *fakePage) Mount(ctx context.Context) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mounts++
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cleanups++
	}
}

func (f *fakePage) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mounts, f.cleanups
}

func TestAppRun(t *testing.T) {
	p := &fakePage{}
	app := view.NewApp(p, log.Dummy)

	ctx, cancel := context.WithCancel(context.Background())
	errC := make(chan error)
	go func() { errC <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		m, _ := p.counts()
		return m == 1
	}, time.Second, 5*time.Millisecond)

	// Already running.
	assert.Error(t, app.Run(context.TODO()))

	cancel()
	select {
	case err := <-errC:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("app didn't stop")
	}

	m, c := p.counts()
	assert.Equal(t, 1, m)
	assert.Equal(t, 1, c)
}

func TestAppRunWithoutPage(t *testing.T) {
	app := view.NewApp(nil, nil)
	assert.Error(t, app.Run(context.TODO()))
}
