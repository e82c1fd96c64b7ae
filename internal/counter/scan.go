package counter

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/harrison/rwc/internal/models"
)

// scanBytes counts raw bytes, and newlines when lines are requested.
// No decoding happens, so malformed UTF-8 is irrelevant here.
func scanBytes(r io.Reader, chunk []byte, opts models.Options, c *models.Counts) error {
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			c.Bytes += uint64(n)
			if opts.ShowLines {
				c.Lines += uint64(bytes.Count(chunk[:n], []byte{'\n'}))
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// textScanner decodes a byte stream as UTF-8 with lossy substitution and
// counts runes, lines and words in one pass. Its state spans chunk
// boundaries.
type textScanner struct {
	opts   models.Options
	counts *models.Counts
	inWord bool
}

// scanText streams r through a textScanner. Every maximal invalid byte
// sequence decodes to one utf8.RuneError. When bytes are requested the
// count is the re-encoded length of each decoded rune, so a malformed
// sequence contributes 3 bytes regardless of its raw length.
func scanText(r io.Reader, chunk []byte, opts models.Options, c *models.Counts) error {
	ts := &textScanner{opts: opts, counts: c}

	// pending holds up to utf8.UTFMax-1 bytes of a rune split across reads.
	var pending []byte
	data := make([]byte, 0, len(chunk)+utf8.UTFMax)
	for {
		n, err := r.Read(chunk)
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return err
		}

		data = append(data[:0], pending...)
		data = append(data, chunk[:n]...)
		consumed := ts.feed(data, eof)
		pending = append(pending[:0], data[consumed:]...)

		if eof {
			return nil
		}
	}
}

// feed decodes as much of p as possible and returns the number of bytes
// consumed. Unless final is set, an incomplete trailing sequence is left
// for the next call.
func (ts *textScanner) feed(p []byte, final bool) int {
	i := 0
	for i < len(p) {
		if !final && !utf8.FullRune(p[i:]) {
			break
		}
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size == 1 {
			size = invalidLen(p[i:])
		}
		ts.rune(r)
		i += size
	}
	return i
}

func (ts *textScanner) rune(r rune) {
	c := ts.counts
	if ts.opts.ShowChars {
		c.Chars++
	}
	if ts.opts.ShowBytes {
		c.Bytes += uint64(utf8.RuneLen(r))
	}
	if ts.opts.ShowLines && r == '\n' {
		c.Lines++
	}

	if !ts.opts.ShowWords {
		return
	}
	// A word is counted when whitespace follows it. A word still open at
	// end of stream is never counted.
	if isASCIISpace(r) {
		if ts.inWord {
			c.Words++
		}
		ts.inWord = false
	} else {
		ts.inWord = true
	}
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// invalidLen returns the length of the maximal invalid subpart starting at
// p[0]: a valid lead byte followed by the continuation bytes that could
// still have completed it. Such a run is replaced by a single RuneError.
func invalidLen(p []byte) int {
	var need int
	lo, hi := byte(0x80), byte(0xBF)
	switch b := p[0]; {
	case b >= 0xC2 && b <= 0xDF:
		need = 2
	case b == 0xE0:
		need, lo = 3, 0xA0
	case b == 0xED:
		need, hi = 3, 0x9F
	case b >= 0xE1 && b <= 0xEF:
		need = 3
	case b == 0xF0:
		need, lo = 4, 0x90
	case b == 0xF4:
		need, hi = 4, 0x8F
	case b >= 0xF1 && b <= 0xF3:
		need = 4
	default:
		return 1
	}

	if len(p) < 2 || p[1] < lo || p[1] > hi {
		return 1
	}
	k := 2
	for k < need && k < len(p) && p[k] >= 0x80 && p[k] <= 0xBF {
		k++
	}
	return k
}
