package distributor

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCmd struct {
	err error
}

func (m *mockCmd) Run() error {
	return m.err
}

func TestCurlDownloader_FetchArguments(t *testing.T) {
	var gotName string
	var gotArgs []string

	dl := &curlDownloader{
		execCommand: func(name string, args ...string) Commander {
			gotName = name
			gotArgs = args

			return &mockCmd{}
		},
	}

	err := dl.Fetch(context.Background(), "https://example.com/runtime.tar.gz", "/tmp/out.tar.gz")
	require.NoError(t, err)

	assert.Equal(t, "curl", gotName)
	assert.Equal(t, []string{"-fsSL", "-o", "/tmp/out.tar.gz", "https://example.com/runtime.tar.gz"}, gotArgs)
}

func TestCurlDownloader_NonZeroExit(t *testing.T) {
	dl := &curlDownloader{
		execCommand: func(name string, args ...string) Commander {
			return &mockCmd{err: errors.New("exit status 22")}
		},
	}

	err := dl.Fetch(context.Background(), "https://example.com/runtime.tar.gz", "/tmp/out.tar.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "curl")
}

func TestCurlDownloader_Available(t *testing.T) {
	dl := &curlDownloader{}

	_, lookErr := exec.LookPath("curl")
	assert.Equal(t, lookErr == nil, dl.Available())
}
