package models

// Counts is the per-path result record. The zero value is a fresh record.
// A directory entry keeps every numeric field at zero and sets IsDirectory.
type Counts struct {
	Words       uint64 `yaml:"words"`
	Lines       uint64 `yaml:"lines"`
	Bytes       uint64 `yaml:"bytes"`
	Chars       uint64 `yaml:"chars"`
	IsDirectory bool   `yaml:"is_directory,omitempty"`
}

// Add accumulates the numeric fields of other into c.
// Directory records contribute nothing.
func (c *Counts) Add(other Counts) {
	if other.IsDirectory {
		return
	}
	c.Words += other.Words
	c.Lines += other.Lines
	c.Bytes += other.Bytes
	c.Chars += other.Chars
}
