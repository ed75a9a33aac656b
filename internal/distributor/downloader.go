package distributor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
)

// Downloader fetches a URL to a local file. Backends are
// interchangeable; the client picks the first one whose Available
// reports true.
type Downloader interface {
	Name() string
	Available() bool
	Fetch(ctx context.Context, url, dest string) error
}

// httpDownloader fetches with the process's own HTTP client.
type httpDownloader struct {
	client *http.Client
}

func (d *httpDownloader) Name() string {
	return "http"
}

func (d *httpDownloader) Available() bool {
	return d.client != nil
}

func (d *httpDownloader) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}

	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}

	return nil
}

// Commander interface for testing
type Commander interface {
	Run() error
}

// curlDownloader shells out to curl. Kept as a fallback so a build
// running behind an intercepting proxy that only curl is configured
// for can still fetch runtimes.
type curlDownloader struct {
	execCommand func(name string, args ...string) Commander
}

func (d *curlDownloader) Name() string {
	return "curl"
}

func (d *curlDownloader) Available() bool {
	_, err := exec.LookPath("curl")
	return err == nil
}

func (d *curlDownloader) Fetch(ctx context.Context, url, dest string) error {
	run := d.execCommand
	if run == nil {
		run = func(name string, args ...string) Commander {
			return exec.CommandContext(ctx, name, args...)
		}
	}

	c := run("curl", "-fsSL", "-o", dest, url)
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Stderr = os.Stderr
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("curl: %w", err)
	}

	return nil
}
