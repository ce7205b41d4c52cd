package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/lcaengine/internal/cli"
	"github.com/rshade/lcaengine/pkg/version"
)

func TestRun(t *testing.T) {
	t.Setenv("LCA_HOME", t.TempDir())
	t.Setenv("LCA_CONFIG", "")

	t.Run("version", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 0, run(context.Background(), []string{"--version"}, &stderr))
		assert.Empty(t, stderr.String())
	})

	t.Run("unknown command", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 1, run(context.Background(), []string{"frobnicate"}, &stderr))
		assert.Contains(t, stderr.String(), "Error:")
	})

	t.Run("missing inventory", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 1, run(context.Background(), []string{"calculate", "-f", "does-not-exist.yaml"}, &stderr))
		assert.Contains(t, stderr.String(), "does-not-exist.yaml")
	})
}

func TestMainComponents(t *testing.T) {
	assert.NotEmpty(t, version.GetVersion())

	root := cli.NewRootCmd(version.GetVersion())
	assert.Equal(t, "lca", root.Use)
}
