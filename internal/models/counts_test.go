package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountsAdd(t *testing.T) {
	var total Counts
	total.Add(Counts{Words: 2, Lines: 1, Bytes: 12, Chars: 12})
	total.Add(Counts{Words: 1, Lines: 3, Bytes: 4, Chars: 2})
	total.Add(Counts{IsDirectory: true})

	assert.Equal(t, Counts{Words: 3, Lines: 4, Bytes: 16, Chars: 14}, total)
}

func TestSummaryRecord(t *testing.T) {
	var s Summary
	s.Record(Result{Path: "a.txt", Counts: Counts{Lines: 2, Bytes: 10}})
	s.Record(Result{Path: "dir", Counts: Counts{IsDirectory: true}})
	s.Record(Result{Path: "missing", Err: errors.New("no such file")})
	s.Record(Result{Pattern: "[", Err: errors.New("bad pattern")})

	assert.Equal(t, 1, s.Files)
	assert.Equal(t, 1, s.Directories)
	assert.Equal(t, 2, s.Failures)
	assert.Equal(t, Counts{Lines: 2, Bytes: 10}, s.Total)
}

func TestResultFailed(t *testing.T) {
	assert.False(t, Result{Path: "a.txt"}.Failed())
	assert.True(t, Result{Pattern: "[", Err: errors.New("x")}.Failed())
}
