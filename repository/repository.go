// Package repository defines the provider contract for artifact repositories.
// A transfer orchestrator drives any Provider implementation through the same
// surface, regardless of the backend behind it.
package repository

import (
	"context"
	"io"
)

// Repository describes where a provider operates. BaseDir may be empty:
// that is a legal degraded mode in which Connect succeeds without touching
// the filesystem and every per-operation call fails its precondition.
type Repository struct {
	BaseDir string
}

// Resource is a logical named artifact within a repository. The name is a
// slash-separated relative path; ContentLength and LastModified (epoch
// milliseconds) are populated from backend metadata when the resource is
// opened for reading.
type Resource struct {
	Name          string
	ContentLength int64
	LastModified  int64
}

// Provider is the operation surface a repository backend exposes to the
// transfer orchestrator. Implementations are meant for per-session use and
// assume no concurrent calls against the same instance.
type Provider interface {
	// Connect validates the configured repository and prepares it for use.
	Connect(ctx context.Context) error

	// Disconnect releases any session resources.
	Disconnect() error

	// OpenRead opens the named resource for reading and returns the stream
	// together with a Resource populated from backend metadata. The caller
	// owns the returned stream and must close it.
	OpenRead(ctx context.Context, name string) (io.ReadCloser, *Resource, error)

	// OpenWrite opens the named resource for writing, creating missing
	// parent directories. The backing file is not created until the first
	// byte is written, so an aborted transfer leaves nothing behind. The
	// caller owns the returned stream and must close it.
	OpenWrite(ctx context.Context, name string) (io.WriteCloser, error)

	// FileList returns the immediate children of a directory, in
	// enumeration order. Subdirectory names carry a trailing "/".
	FileList(ctx context.Context, dir string) ([]string, error)

	// ResourceExists reports whether the named resource exists. A name
	// ending in "/" asks specifically for a directory; any other name
	// matches a file or a directory.
	ResourceExists(ctx context.Context, name string) (bool, error)

	// PutDirectory recursively copies the local source tree into the
	// repository at destDir, preserving structure and overwriting files.
	PutDirectory(ctx context.Context, sourceDir, destDir string) error

	// SupportsDirectoryCopy reports whether PutDirectory is available.
	SupportsDirectoryCopy() bool
}
