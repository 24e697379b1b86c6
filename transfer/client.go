// Package transfer moves bytes between local streams and a repository
// provider. Retry, checksum, and progress policy belong to the caller;
// this layer only runs the copy loops and closes provider streams.
package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tmoretti/depot/metrics"
	"github.com/tmoretti/depot/repository"
)

// Client drives a single repository.Provider.
type Client struct {
	provider repository.Provider
	logger   *zap.Logger
}

// NewClient creates a transfer client over an already-connected provider.
func NewClient(provider repository.Provider, logger *zap.Logger) *Client {
	return &Client{provider: provider, logger: logger}
}

// Get streams the named resource into w and returns the number of bytes
// copied.
func (c *Client) Get(ctx context.Context, name string, w io.Writer) (int64, error) {
	r, res, err := c.provider.OpenRead(ctx, name)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	n, err := io.Copy(w, r)
	if err != nil {
		return n, &repository.TransferError{Path: name, Msg: fmt.Sprintf("error reading resource %s", name), Err: err}
	}

	metrics.TransferBytesTotal.WithLabelValues("inbound").Add(float64(n))
	c.logger.Debug("Fetched resource",
		zap.String("name", name),
		zap.Int64("bytes", n),
		zap.Int64("content_length", res.ContentLength))
	return n, nil
}

// GetFile streams the named resource into a local file, creating parent
// directories as needed.
func (c *Client) GetFile(ctx context.Context, name, localPath string) error {
	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &repository.TransferError{Path: localPath, Msg: fmt.Sprintf("could not create parent directories for %s", localPath), Err: err}
		}
	}

	f, err := os.Create(localPath)
	if err != nil {
		return &repository.TransferError{Path: localPath, Msg: fmt.Sprintf("could not create file %s", localPath), Err: err}
	}

	_, gerr := c.Get(ctx, name, f)
	cerr := f.Close()
	if gerr != nil {
		return gerr
	}
	if cerr != nil {
		return &repository.TransferError{Path: localPath, Msg: fmt.Sprintf("could not write file %s", localPath), Err: cerr}
	}
	return nil
}

// Put streams r into the named resource and returns the number of bytes
// copied.
func (c *Client) Put(ctx context.Context, r io.Reader, name string) (int64, error) {
	w, err := c.provider.OpenWrite(ctx, name)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(w, r)
	if err != nil {
		w.Close()
		return n, &repository.TransferError{Path: name, Msg: fmt.Sprintf("error writing resource %s", name), Err: err}
	}
	if err := w.Close(); err != nil {
		return n, &repository.TransferError{Path: name, Msg: fmt.Sprintf("error flushing resource %s", name), Err: err}
	}

	metrics.TransferBytesTotal.WithLabelValues("outbound").Add(float64(n))
	c.logger.Debug("Stored resource",
		zap.String("name", name),
		zap.Int64("bytes", n))
	return n, nil
}

// PutFile streams a local file into the named resource.
func (c *Client) PutFile(ctx context.Context, localPath, name string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return &repository.TransferError{Path: localPath, Msg: fmt.Sprintf("could not read file %s", localPath), Err: err}
	}
	defer f.Close()

	_, err = c.Put(ctx, f, name)
	return err
}
