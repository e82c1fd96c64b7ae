package counter

import (
	"bufio"
	"io"
	"io/fs"
	"os"
)

// source is the byte stream behind one path token. It is a closed set:
// standard input or a named regular file.
type source interface {
	reader(size int) *bufio.Reader
	close() error

	isSource()
}

type stdinSource struct {
	r io.Reader
}

func (s stdinSource) reader(size int) *bufio.Reader {
	return bufio.NewReaderSize(s.r, size)
}

// close leaves standard input open for later tokens.
func (s stdinSource) close() error { return nil }

func (stdinSource) isSource() {}

type fileSource struct {
	f    *os.File
	info fs.FileInfo
}

func (s fileSource) reader(size int) *bufio.Reader {
	return bufio.NewReaderSize(s.f, size)
}

func (s fileSource) close() error { return s.f.Close() }

func (fileSource) isSource() {}
