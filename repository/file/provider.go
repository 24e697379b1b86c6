// Package file implements the repository.Provider contract on top of a
// plain filesystem tree rooted at a configured base directory.
package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tmoretti/depot/internal/pathutil"
	"github.com/tmoretti/depot/metrics"
	"github.com/tmoretti/depot/repository"
)

// Provider serves one logical session against one base directory. It holds
// no cross-operation state beyond the configuration, so instances are cheap
// and meant for per-session use.
type Provider struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProvider creates a provider for the given repository. The repository
// reference may be nil or carry an empty BaseDir; Connect and the
// per-operation preconditions sort those cases out.
func NewProvider(repo *repository.Repository, logger *zap.Logger) *Provider {
	return &Provider{repo: repo, logger: logger}
}

// Connect validates the configured base directory, creating it if missing.
func (p *Provider) Connect(ctx context.Context) (err error) {
	defer observe("connect", time.Now(), &err)

	if p.repo == nil {
		return &repository.ConnectionError{Msg: "unable to operate with a null repository"}
	}

	if p.repo.BaseDir == "" {
		// Legal degraded mode used by integration harnesses: nothing is
		// validated and no directory is created.
		p.logger.Debug("Using a null basedir")
		return nil
	}

	basedir := p.repo.BaseDir
	if _, serr := os.Stat(basedir); os.IsNotExist(serr) {
		if merr := os.MkdirAll(basedir, 0755); merr != nil {
			return &repository.ConnectionError{
				Path: basedir,
				Msg:  fmt.Sprintf("repository path %s does not exist, and cannot be created", basedir),
				Err:  merr,
			}
		}
	}

	// Opening the directory is the readability probe.
	f, oerr := os.Open(basedir)
	if oerr != nil {
		return &repository.ConnectionError{
			Path: basedir,
			Msg:  fmt.Sprintf("repository path %s cannot be read", basedir),
			Err:  oerr,
		}
	}
	f.Close()

	p.logger.Debug("Connected to file repository", zap.String("basedir", basedir))
	return nil
}

// Disconnect releases nothing: the provider holds no open handles.
func (p *Provider) Disconnect() error {
	return nil
}

// basedir enforces the per-operation precondition that a base directory
// is configured.
func (p *Provider) basedir(op string) (string, error) {
	if p.repo == nil || p.repo.BaseDir == "" {
		return "", &repository.TransferError{Msg: fmt.Sprintf("unable to %s with a null basedir", op)}
	}
	return p.repo.BaseDir, nil
}

// OpenRead opens the named resource for reading and fills in its content
// length and last-modified time from file metadata. Resource names are
// followed literally: unlike destination directories they are not
// normalized before hitting the filesystem.
func (p *Provider) OpenRead(ctx context.Context, name string) (rc io.ReadCloser, res *repository.Resource, err error) {
	defer observe("open_read", time.Now(), &err)

	base, err := p.basedir("read")
	if err != nil {
		return nil, nil, err
	}

	path := pathutil.JoinRaw(base, name)

	info, serr := os.Stat(path)
	if os.IsNotExist(serr) {
		return nil, nil, &repository.NotFoundError{Path: path, Msg: fmt.Sprintf("file %s does not exist", path)}
	}
	if serr != nil {
		return nil, nil, &repository.TransferError{Path: path, Msg: fmt.Sprintf("could not read from file %s", path), Err: serr}
	}

	f, oerr := os.Open(path)
	if oerr != nil {
		return nil, nil, &repository.TransferError{Path: path, Msg: fmt.Sprintf("could not read from file %s", path), Err: oerr}
	}

	res = &repository.Resource{
		Name:          name,
		ContentLength: info.Size(),
		LastModified:  info.ModTime().UnixMilli(),
	}

	p.logger.Debug("Opened resource for read",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int64("size", info.Size()))

	return &bufferedReadCloser{Reader: bufio.NewReader(f), file: f}, res, nil
}

// OpenWrite opens the named resource for writing, creating missing parent
// directories. The returned stream is lazy: the destination file is only
// created once the first byte is written, so closing an unused stream
// leaves no empty file behind. Existing content is overwritten.
func (p *Provider) OpenWrite(ctx context.Context, name string) (wc io.WriteCloser, err error) {
	defer observe("open_write", time.Now(), &err)

	base, err := p.basedir("write")
	if err != nil {
		return nil, err
	}

	path := pathutil.JoinRaw(base, name)

	if merr := os.MkdirAll(filepath.Dir(path), 0755); merr != nil {
		return nil, &repository.TransferError{Path: path, Msg: fmt.Sprintf("could not create parent directories for %s", path), Err: merr}
	}

	p.logger.Debug("Opened resource for write",
		zap.String("name", name),
		zap.String("path", path))

	return newLazyFileWriter(path), nil
}

// FileList returns the immediate children of the given repository
// directory, in filesystem enumeration order. Subdirectories carry a
// trailing "/" so callers can tell the two kinds apart by name alone.
func (p *Provider) FileList(ctx context.Context, dir string) (list []string, err error) {
	defer observe("file_list", time.Now(), &err)

	base, err := p.basedir("getFileList")
	if err != nil {
		return nil, err
	}

	path := pathutil.Resolve(base, dir)

	info, serr := os.Stat(path)
	if os.IsNotExist(serr) {
		return nil, &repository.NotFoundError{Path: path, Msg: fmt.Sprintf("directory does not exist: %s", dir)}
	}
	if serr != nil {
		return nil, &repository.TransferError{Path: path, Msg: fmt.Sprintf("could not list directory %s", dir), Err: serr}
	}
	if !info.IsDir() {
		return nil, &repository.NotFoundError{Path: path, Msg: fmt.Sprintf("path is not a directory: %s", dir)}
	}

	f, oerr := os.Open(path)
	if oerr != nil {
		return nil, &repository.TransferError{Path: path, Msg: fmt.Sprintf("could not list directory %s", dir), Err: oerr}
	}

	entries, rerr := f.ReadDir(-1)
	if rerr != nil {
		f.Close()
		return nil, &repository.TransferError{Path: path, Msg: fmt.Sprintf("could not list directory %s", dir), Err: rerr}
	}
	// A close failure after a complete scan does not invalidate the listing.
	_ = f.Close()

	list = make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() && !strings.HasSuffix(name, "/") {
			name += "/"
		}
		list = append(list, name)
	}
	return list, nil
}

// ResourceExists reports whether the named resource exists. A trailing "/"
// narrows the check to directories; otherwise any kind of entry matches.
func (p *Provider) ResourceExists(ctx context.Context, name string) (ok bool, err error) {
	defer observe("resource_exists", time.Now(), &err)

	base, err := p.basedir("getFileList")
	if err != nil {
		return false, err
	}

	path := pathutil.Resolve(base, name)

	info, serr := os.Stat(path)
	if strings.HasSuffix(name, "/") {
		return serr == nil && info.IsDir(), nil
	}
	return serr == nil, nil
}

// PutDirectory copies the local source tree into the repository at destDir,
// preserving structure, keeping empty subdirectories, and overwriting files
// that already exist. Unrelated pre-existing content in the destination is
// left alone; nothing is rolled back on a mid-copy failure.
func (p *Provider) PutDirectory(ctx context.Context, sourceDir, destDir string) (err error) {
	defer observe("put_directory", time.Now(), &err)

	base, err := p.basedir("putDirectory")
	if err != nil {
		return err
	}

	resolved := pathutil.Resolve(base, destDir)
	raw := pathutil.JoinRaw(base, destDir)

	if !makeDestinationDir(resolved, raw) {
		msg := fmt.Sprintf("could not make directory %q", resolved)
		if !writable(base) {
			msg += fmt.Sprintf("; the base directory %s is read-only", base)
		}
		return &repository.TransferError{Path: resolved, Msg: msg}
	}

	if cerr := copyDirectoryStructure(sourceDir, resolved); cerr != nil {
		return &repository.TransferError{Path: resolved, Msg: "error copying directory structure", Err: cerr}
	}

	p.logger.Debug("Copied directory into repository",
		zap.String("source", sourceDir),
		zap.String("destination", resolved))
	return nil
}

// SupportsDirectoryCopy reports that PutDirectory is available.
func (p *Provider) SupportsDirectoryCopy() bool {
	return true
}

// makeDestinationDir creates dest, retrying with the un-normalized joined
// path when the first attempt fails; the retry covers filesystems that
// reject the collapsed form of "."-only destinations. Neither attempt's
// error decides anything: the final stat is the gate.
func makeDestinationDir(normalized, raw string) bool {
	if err := os.MkdirAll(normalized, 0755); err != nil {
		_ = os.MkdirAll(raw, 0755)
	}
	info, err := os.Stat(normalized)
	return err == nil && info.IsDir()
}

// writable is a permission-bit heuristic, used only to enrich an error
// message after directory creation has already failed.
func writable(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.Mode().Perm()&0200 != 0
}

// observe records outcome and duration for a repository operation. Meant
// to be deferred with a named error return.
func observe(op string, start time.Time, err *error) {
	status := "success"
	if *err != nil {
		status = "failure"
	}
	metrics.RepositoryOpsTotal.WithLabelValues(op, status).Inc()
	metrics.RepositoryOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// bufferedReadCloser pairs a buffered reader with the file it wraps so
// that closing the stream closes the file.
type bufferedReadCloser struct {
	*bufio.Reader
	file *os.File
}

func (r *bufferedReadCloser) Close() error {
	return r.file.Close()
}
