package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestVersionOutput(t *testing.T) {
	viper.Set("store-backend", "sqlite")
	viper.Set("llm-provider", "none")
	t.Cleanup(func() {
		viper.Set("store-backend", nil)
		viper.Set("llm-provider", nil)
	})

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	got := out.String()
	assert.Contains(t, got, "Version: dev")
	assert.Contains(t, got, "Store:   sqlite")
	assert.Contains(t, got, "LLM:     none")
}
