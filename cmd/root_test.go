/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_Subcommands 测试根命令注册了 server 与 migrate 子命令
func TestRootCmd_Subcommands(t *testing.T) {
	root := GetRootCmd()
	require.NotNil(t, root)
	assert.Equal(t, "backoffice-gin", root.Use)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "server")
	assert.Contains(t, names, "migrate")
}
