package models

// StdinMarker is the path token that selects standard input.
const StdinMarker = "-"

// Options is the immutable job configuration shared read-only by every task.
// Build it with NewOptions so the default-metrics rule is applied.
type Options struct {
	ShowBytes bool
	ShowWords bool
	ShowLines bool
	ShowChars bool
	ShowDirs  bool

	// UTFRequired selects the text-oriented scan. It is true when words or
	// characters are counted, since both need decoded runes.
	UTFRequired bool
}

// NewOptions derives Options from the metrics the user selected.
// When none of bytes, words, lines or chars is selected the effective
// metrics are lines, words and bytes.
func NewOptions(bytes, words, lines, chars, dirs bool) Options {
	if !bytes && !words && !lines && !chars {
		bytes, words, lines = true, true, true
	}
	return Options{
		ShowBytes:   bytes,
		ShowWords:   words,
		ShowLines:   lines,
		ShowChars:   chars,
		ShowDirs:    dirs,
		UTFRequired: words || chars,
	}
}

// AnythingButBytes reports whether any metric other than the byte count is
// requested. When it is false a named file can be sized from metadata alone.
func (o Options) AnythingButBytes() bool {
	return o.ShowLines || o.ShowWords || o.ShowChars
}
