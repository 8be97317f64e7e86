// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CMDBIND_MANIFEST", "")
		t.Setenv("CMDBIND_HISTORY", "")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, Config{Prompt: "> ", Prefix: "/"}, cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("CMDBIND_MANIFEST", "./commands.hcl")
		t.Setenv("CMDBIND_PROMPT", "hunt> ")
		t.Setenv("CMDBIND_PREFIX", "!")
		t.Setenv("CMDBIND_HISTORY", "/tmp/history")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, Config{
			Manifest: "./commands.hcl",
			Prompt:   "hunt> ",
			Prefix:   "!",
			History:  "/tmp/history",
		}, cfg)
	})
}
