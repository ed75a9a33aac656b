// Package distributor talks to the runtime distributor API: a version
// catalog endpoint and a per-(version, OS, arch) binary archive
// endpoint. Archives are fetched through one of two interchangeable
// downloader backends; the first available backend wins.
package distributor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// DefaultBaseURL is the Adoptium API root.
const DefaultBaseURL = "https://api.adoptium.net/v3"

// ErrNoDownloaderAvailable indicates no downloader backend can run on
// this host.
var ErrNoDownloaderAvailable = errors.New("no downloader available")

// DownloadError indicates a fetch that started but did not produce a
// usable archive. It is fatal for the version being acquired; retry
// happens only by falling back to a different version.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %s failed: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Client resolves versions and fetches runtime archives.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	downloaders []Downloader
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the distributor API root.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the HTTP client used for catalog requests
// and the HTTP downloader backend.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDownloaders overrides the downloader backends, in priority order.
func WithDownloaders(ds ...Downloader) Option {
	return func(c *Client) {
		c.downloaders = ds
	}
}

// New creates a distributor client with the default backend order:
// the built-in HTTP downloader, then curl.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.downloaders == nil {
		c.downloaders = []Downloader{
			&httpDownloader{client: c.httpClient},
			&curlDownloader{},
		}
	}

	return c
}

// ArchiveURL returns the binary archive endpoint for a runtime.
func (c *Client) ArchiveURL(version int, osName, arch string) string {
	return fmt.Sprintf("%s/binary/latest/%d/ga/%s/%s/jre/hotspot/normal/eclipse",
		c.baseURL, version, osName, arch)
}

// Download fetches the runtime archive for (version, os, arch) into
// dest using the first available downloader backend. An empty result
// file counts as a failed download.
func (c *Client) Download(ctx context.Context, version int, osName, arch, dest string) error {
	dl, err := c.selectDownloader()
	if err != nil {
		return err
	}

	url := c.ArchiveURL(version, osName, arch)
	if err := dl.Fetch(ctx, url, dest); err != nil {
		return &DownloadError{URL: url, Err: err}
	}

	info, err := os.Stat(dest)
	if err != nil {
		return &DownloadError{URL: url, Err: err}
	}

	if info.Size() == 0 {
		return &DownloadError{URL: url, Err: errors.New("empty archive")}
	}

	return nil
}

func (c *Client) selectDownloader() (Downloader, error) {
	for _, dl := range c.downloaders {
		if dl.Available() {
			return dl, nil
		}
	}

	return nil, ErrNoDownloaderAvailable
}

// AvailableVersions fetches the list of available major versions from
// the catalog endpoint. Callers fall back to StaticVersions on any
// error.
func (c *Client) AvailableVersions(ctx context.Context) ([]int, error) {
	url := c.baseURL + "/info/available_releases"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch version catalog: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("version catalog returned status %d", resp.StatusCode)
	}

	var catalog struct {
		AvailableReleases []int `json:"available_releases"`
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to parse version catalog: %w", err)
	}

	if len(catalog.AvailableReleases) == 0 {
		return nil, errors.New("version catalog listed no releases")
	}

	return catalog.AvailableReleases, nil
}
