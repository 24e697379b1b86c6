package file

import (
	"bufio"
	"os"
)

// lazyFileWriter defers creating its backing file until the first
// non-empty write. A stream that is closed before any byte is produced
// therefore leaves no empty file behind.
type lazyFileWriter struct {
	path string
	file *os.File
	buf  *bufio.Writer
}

func newLazyFileWriter(path string) *lazyFileWriter {
	return &lazyFileWriter{path: path}
}

func (w *lazyFileWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if w.file == nil {
		f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return 0, err
		}
		w.file = f
		w.buf = bufio.NewWriter(f)
	}
	return w.buf.Write(p)
}

func (w *lazyFileWriter) Close() error {
	if w.file == nil {
		return nil
	}
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
