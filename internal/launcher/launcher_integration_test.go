package launcher

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarlaunch/jarl/internal/cache"
	"github.com/jarlaunch/jarl/internal/distributor"
	"github.com/jarlaunch/jarl/internal/jre"
	"github.com/jarlaunch/jarl/internal/platform"
	"github.com/jarlaunch/jarl/internal/workspace"
)

// runtimeArchive builds a minimal but well-formed runtime archive.
func runtimeArchive(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	write := func(hdr *tar.Header, body string) {
		hdr.Size = int64(len(body))
		require.NoError(t, tw.WriteHeader(hdr))
		if body != "" {
			_, err := tw.Write([]byte(body))
			require.NoError(t, err)
		}
	}

	write(&tar.Header{Name: "jdk-jre/", Typeflag: tar.TypeDir, Mode: 0o755}, "")
	write(&tar.Header{Name: "jdk-jre/bin/", Typeflag: tar.TypeDir, Mode: 0o755}, "")
	write(&tar.Header{Name: "jdk-jre/bin/java", Typeflag: tar.TypeReg, Mode: 0o755}, "#!/bin/true")

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "runtime.tar.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	return path
}

// archiveDownloader serves the prepared archive for every version.
type archiveDownloader struct {
	srcPath string
	calls   int
}

func (d *archiveDownloader) Name() string {
	return "stub"
}

func (d *archiveDownloader) Available() bool {
	return true
}

func (d *archiveDownloader) Fetch(_ context.Context, _, dest string) error {
	d.calls++

	data, err := os.ReadFile(d.srcPath)
	if err != nil {
		return err
	}

	return os.WriteFile(dest, data, 0o644)
}

// acquirerProvider adapts a real jre.Acquirer the way the CLI does.
type acquirerProvider struct {
	acquirer *jre.Acquirer
	platform platform.Platform
}

func (p *acquirerProvider) Acquire(ctx context.Context, version int, jarPath string, skipCache bool) (string, error) {
	rt, err := p.acquirer.Acquire(ctx, version, p.platform, jarPath, skipCache)
	if err != nil {
		return "", err
	}

	return rt.JavaPath(), nil
}

func TestLaunch_EndToEnd_FreshDownloadThenStandardExecution(t *testing.T) {
	jar := writeJar(t)
	dl := &archiveDownloader{srcPath: runtimeArchive(t)}

	store, err := cache.New(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	session := workspace.NewSession(false)
	defer session.Close()

	plat := platform.Platform{OS: "linux", Arch: "x64"}
	provider := &acquirerProvider{
		acquirer: jre.NewAcquirer(store, distributor.New(distributor.WithDownloaders(dl)), session),
		platform: plat,
	}

	rec := &recordingExec{}
	engine := NewEngine()
	engine.execCommand = rec.command

	result, err := NewCoordinator(provider, engine).Launch(context.Background(), Request{
		JarPath: jar,
		Version: 24,
	})
	require.NoError(t, err)

	// Cache was empty: one download, one cache write, standard execution.
	assert.Equal(t, 24, result.Version)
	assert.Equal(t, 1, dl.calls)

	_, ok := store.Lookup(cache.Key{Version: 24, OS: "linux", Arch: "x64"})
	assert.True(t, ok)

	require.Len(t, rec.invocations, 1)
	assert.Equal(t, "-jar", rec.invocations[0][1])
}

func TestLaunch_EndToEnd_FallbackVersionSucceeds(t *testing.T) {
	jar := writeJar(t)
	dl := &archiveDownloader{srcPath: runtimeArchive(t)}

	store, err := cache.New(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	session := workspace.NewSession(false)
	defer session.Close()

	provider := &acquirerProvider{
		acquirer: jre.NewAcquirer(store, distributor.New(distributor.WithDownloaders(dl)), session),
		platform: platform.Platform{OS: "linux", Arch: "x64"},
	}

	// Version 24 exhausts all four flag sets; version 21 runs standard.
	fail := errors.New("exit status 1")
	rec := &recordingExec{results: []error{fail, fail, fail, fail, nil}}
	engine := NewEngine()
	engine.execCommand = rec.command

	result, err := NewCoordinator(provider, engine).Launch(context.Background(), Request{
		JarPath: jar,
		Version: 24,
	})
	require.NoError(t, err)

	assert.Equal(t, 21, result.Version)
	assert.True(t, result.Fallback)
	assert.Len(t, rec.invocations, 5)

	// Both attempted versions were cached
	_, ok := store.Lookup(cache.Key{Version: 24, OS: "linux", Arch: "x64"})
	assert.True(t, ok)
	_, ok = store.Lookup(cache.Key{Version: 21, OS: "linux", Arch: "x64"})
	assert.True(t, ok)
}
