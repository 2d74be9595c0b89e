package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishant9805/portfolio/internal/portfolio"
	"github.com/ishant9805/portfolio/internal/store"
)

type stubSource struct {
	name  string
	text  string
	err   error
	calls atomic.Int32
	gate  chan struct{}
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Read(ctx context.Context) (string, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	return s.text, s.err
}

func TestLoadUsesFirstAvailableSource(t *testing.T) {
	empty := &stubSource{name: "store", err: ErrUnavailable}
	file := &stubSource{name: "file", text: "Name: Jane Doe"}
	never := &stubSource{name: "never", text: "Name: Nope"}

	l := NewLoader(nil, nil, empty, file, never)
	p, origin := l.Load(context.Background())

	assert.Equal(t, "file", origin)
	assert.Equal(t, "Jane Doe", p.Hero.Name)
	assert.Equal(t, int32(0), never.calls.Load())
}

func TestLoadSkipsBlankDocuments(t *testing.T) {
	blank := &stubSource{name: "store", text: "  \n "}
	file := &stubSource{name: "file", text: "Name: Jane"}

	p, origin := NewLoader(nil, nil, blank, file).Load(context.Background())

	assert.Equal(t, "file", origin)
	assert.Equal(t, "Jane", p.Hero.Name)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	broken := &stubSource{name: "store", err: errors.New("disk on fire")}
	missing := &stubSource{name: "file", err: ErrUnavailable}

	p, origin := NewLoader(nil, nil, broken, missing).Load(context.Background())

	assert.Equal(t, OriginDefaults, origin)
	assert.Empty(t, cmp.Diff(portfolio.ExtractDefaults(), p))
}

func TestLoadWithoutSources(t *testing.T) {
	l := NewLoader(nil, nil)

	_, _, err := l.Raw(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	p, origin := l.Load(context.Background())
	assert.Equal(t, OriginDefaults, origin)
	assert.Empty(t, p.Missing())
}

func TestRawReportsCombinedErrors(t *testing.T) {
	boom := errors.New("boom")
	l := NewLoader(nil, nil, &stubSource{name: "a", err: boom}, &stubSource{name: "b", err: ErrUnavailable})

	_, _, err := l.Raw(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUnavailable, "a failing source is not the same as no document")
}

func TestCancelledCallerDoesNotFailSharedRead(t *testing.T) {
	src := &ctxSource{
		text:    "Name: Real",
		entered: make(chan struct{}),
		gate:    make(chan struct{}),
		seen:    make(chan error, 2),
	}
	l := NewLoader(nil, nil, src)

	first, cancel := context.WithCancel(context.Background())
	firstDone := make(chan string)
	go func() {
		_, origin := l.Load(first)
		firstDone <- origin
	}()
	<-src.entered

	secondDone := make(chan portfolio.Profile)
	go func() {
		p, _ := l.Load(context.Background())
		secondDone <- p
	}()

	cancel()
	assert.Equal(t, OriginDefaults, <-firstDone, "the cancelled caller stops waiting")

	close(src.gate)
	p := <-secondDone
	assert.Equal(t, "Real", p.Hero.Name)
	assert.NoError(t, <-src.seen, "the shared read must not see the first caller's cancellation")
}

// ctxSource blocks until gate closes and then fails if the context it was
// given has been cancelled.
type ctxSource struct {
	text    string
	entered chan struct{}
	gate    chan struct{}
	once    sync.Once
	seen    chan error
}

func (s *ctxSource) Name() string { return "file" }

func (s *ctxSource) Read(ctx context.Context) (string, error) {
	s.once.Do(func() { close(s.entered) })
	<-s.gate
	err := ctx.Err()
	s.seen <- err
	if err != nil {
		return "", err
	}
	return s.text, nil
}

func TestConcurrentLoadsShareOneRead(t *testing.T) {
	src := &stubSource{name: "file", text: "Name: Shared", gate: make(chan struct{})}
	l := NewLoader(nil, nil, src)

	const n = 8
	var (
		wg      sync.WaitGroup
		started sync.WaitGroup
		names   = make([]string, n)
	)
	started.Add(n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			p, _ := l.Load(context.Background())
			names[i] = p.Hero.Name
		}(i)
	}
	started.Wait()
	close(src.gate)
	wg.Wait()

	for _, name := range names {
		assert.Equal(t, "Shared", name)
	}
	assert.LessOrEqual(t, src.calls.Load(), int32(n))
	assert.GreaterOrEqual(t, src.calls.Load(), int32(1))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "about_me.txt")
	require.NoError(t, os.WriteFile(path, []byte("Name: From Disk\n"), 0o644))

	text, err := FileSource{Path: path}.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Name: From Disk\n", text)

	_, err = FileSource{Path: filepath.Join(dir, "missing.txt")}.Read(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileSource{Path: path}.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStoreSource(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	src := StoreSource{Store: s}
	_, err = src.Read(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = s.SaveDocument(ctx, "Name: Uploaded")
	require.NoError(t, err)

	text, err := src.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Name: Uploaded", text)
}
