package launcher

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records acquisition order and can fail for chosen
// versions.
type fakeProvider struct {
	acquired   []int
	failForVer map[int]error
}

func (p *fakeProvider) Acquire(_ context.Context, version int, _ string, _ bool) (string, error) {
	p.acquired = append(p.acquired, version)

	if err := p.failForVer[version]; err != nil {
		return "", err
	}

	return fmt.Sprintf("/runtimes/%d/bin/java", version), nil
}

// versionedExec succeeds only for java paths of allowed versions.
type versionedExec struct {
	okPaths map[string]bool
	calls   []string
}

func (v *versionedExec) command(_ context.Context, name string, _ ...string) Commander {
	v.calls = append(v.calls, name)

	if v.okPaths[name] {
		return &fakeCmd{}
	}

	return &fakeCmd{err: errors.New("exit status 1")}
}

func newTestCoordinator(provider *fakeProvider, exec *versionedExec) *Coordinator {
	engine := NewEngine()
	engine.execCommand = exec.command

	return NewCoordinator(provider, engine)
}

func TestLaunch_PrimarySucceeds(t *testing.T) {
	jar := writeJar(t)
	provider := &fakeProvider{}
	exec := &versionedExec{okPaths: map[string]bool{"/runtimes/24/bin/java": true}}
	c := newTestCoordinator(provider, exec)

	result, err := c.Launch(context.Background(), Request{JarPath: jar, Version: 24})
	require.NoError(t, err)

	assert.Equal(t, 24, result.Version)
	assert.False(t, result.Fallback)
	assert.Equal(t, []int{24}, provider.acquired)
}

func TestLaunch_FallbackOrderSkipsPrimary(t *testing.T) {
	jar := writeJar(t)
	provider := &fakeProvider{}
	exec := &versionedExec{okPaths: map[string]bool{"/runtimes/11/bin/java": true}}
	c := newTestCoordinator(provider, exec)

	result, err := c.Launch(context.Background(), Request{JarPath: jar, Version: 21})
	require.NoError(t, err)

	assert.Equal(t, 11, result.Version)
	assert.True(t, result.Fallback)

	// 21 was the primary, so the candidates tried are 17 then 11;
	// the search stops at the first success.
	assert.Equal(t, []int{21, 17, 11}, provider.acquired)
}

func TestLaunch_AllVersionsFail(t *testing.T) {
	jar := writeJar(t)
	provider := &fakeProvider{}
	exec := &versionedExec{}
	c := newTestCoordinator(provider, exec)

	_, err := c.Launch(context.Background(), Request{JarPath: jar, Version: 24})
	require.Error(t, err)

	assert.Equal(t, []int{24, 21, 17, 11, 8}, provider.acquired)
	assert.Contains(t, err.Error(), "attempted")
}

func TestLaunch_NoFallbackIsTerminal(t *testing.T) {
	jar := writeJar(t)
	provider := &fakeProvider{}
	exec := &versionedExec{}
	c := newTestCoordinator(provider, exec)

	_, err := c.Launch(context.Background(), Request{JarPath: jar, Version: 21, NoFallback: true})

	var waErr *WorkaroundsError
	require.ErrorAs(t, err, &waErr)
	assert.Equal(t, []int{21}, provider.acquired)
}

func TestLaunch_AcquireFailureMovesToNextCandidate(t *testing.T) {
	jar := writeJar(t)
	provider := &fakeProvider{
		failForVer: map[int]error{
			24: errors.New("download failed"),
			21: errors.New("download failed"),
		},
	}
	exec := &versionedExec{okPaths: map[string]bool{"/runtimes/17/bin/java": true}}
	c := newTestCoordinator(provider, exec)

	result, err := c.Launch(context.Background(), Request{JarPath: jar, Version: 24})
	require.NoError(t, err)

	assert.Equal(t, 17, result.Version)
	assert.Equal(t, []int{24, 21, 17}, provider.acquired)
}

func TestLaunch_JarNotFound(t *testing.T) {
	provider := &fakeProvider{}
	exec := &versionedExec{}
	c := newTestCoordinator(provider, exec)

	_, err := c.Launch(context.Background(), Request{JarPath: "/missing.jar", Version: 21})

	assert.ErrorIs(t, err, ErrJarNotFound)
	assert.Empty(t, provider.acquired, "missing jar must not trigger acquisition")
	assert.Empty(t, exec.calls)
}
