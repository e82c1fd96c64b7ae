package main

import (
	"testing"

	"github.com/harrison/rwc/internal/cmd"
)

func TestRootCommandWiring(t *testing.T) {
	root := cmd.NewRootCommand()
	if root.Name() != "rwc" {
		t.Errorf("command name = %q, want rwc", root.Name())
	}
	if root.Version == "" {
		t.Error("Version should not be empty")
	}
	for _, name := range []string{"lines", "words", "bytes", "chars", "dirs"} {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("missing --%s flag", name)
		}
	}
}
