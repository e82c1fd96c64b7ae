package display

import (
	"io"
	"strconv"

	"github.com/harrison/rwc/internal/models"
)

// TotalName is the name printed on the aggregate line.
const TotalName = "total"

// FormatCounts renders the result line for name, including the trailing newline.
func FormatCounts(name string, c models.Counts, opts models.Options) string {
	buf := make([]byte, 0, 64)
	addField := func(n uint64) {
		if len(buf) > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendUint(buf, n, 10)
	}

	if opts.ShowLines {
		addField(c.Lines)
	}
	if opts.ShowWords {
		addField(c.Words)
	}
	if opts.ShowBytes {
		addField(c.Bytes)
	}
	if opts.ShowChars {
		addField(c.Chars)
	}
	if name != models.StdinMarker {
		if len(buf) > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, name...)
	}
	buf = append(buf, '\n')
	return string(buf)
}

// WriteCounts writes the result line for name with a single Write call.
func WriteCounts(w io.Writer, name string, c models.Counts, opts models.Options) error {
	_, err := io.WriteString(w, FormatCounts(name, c, opts))
	return err
}

// WriteDirectory writes the marker line for a directory token.
func WriteDirectory(w io.Writer, name string) error {
	_, err := io.WriteString(w, "dir "+name+"\n")
	return err
}

// WriteTotal writes the aggregate line.
func WriteTotal(w io.Writer, c models.Counts, opts models.Options) error {
	return WriteCounts(w, TotalName, c, opts)
}
