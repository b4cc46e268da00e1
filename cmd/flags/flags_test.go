// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"bytes"
	"io"
	"testing"

	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestGroupedUsage(t *testing.T) {
	var status, sort string
	var output string
	cmd := &cobra.Command{Use: "list", RunE: func(*cobra.Command, []string) error { return nil }}
	AddOutputFlag(cmd, &output)
	group := RegisterFlagGroup(cmd, "Filter Flags", func(set *pflag.FlagSet) {
		set.StringVar(&status, "status", "", "only chains in this status")
		set.StringVar(&sort, "sort", "trending", "sort key")
	})
	SetGroupedUsage(cmd, group)

	require.NoError(t, cmd.ParseFlags([]string{"--status", "graduated", "-o", "json"}))
	require.Equal(t, "graduated", status)
	require.Equal(t, "json", output)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	require.NoError(t, cmd.Usage())
	usage := out.String()
	require.Contains(t, usage, "Filter Flags:")
	flagsAt := bytes.Index(out.Bytes(), []byte("\nFlags:"))
	groupAt := bytes.Index(out.Bytes(), []byte("Filter Flags:"))
	require.Less(t, flagsAt, groupAt)
	require.Contains(t, usage[flagsAt:groupAt], "--output")
	require.NotContains(t, usage[flagsAt:groupAt], "--status")
}

func TestResolveOutputAndRender(t *testing.T) {
	format, err := ResolveOutput(nil, "")
	require.NoError(t, err)
	require.Equal(t, ux.FormatTable, format)
	_, err = ResolveOutput(nil, "xml")
	require.Error(t, err)

	var out bytes.Buffer
	called := false
	require.NoError(t, Render(&out, ux.FormatTable, nil, func(io.Writer) error {
		called = true
		return nil
	}))
	require.True(t, called)

	out.Reset()
	require.NoError(t, Render(&out, ux.FormatJSON, map[string]int{"a": 1}, nil))
	require.JSONEq(t, `{"a":1}`, out.String())
}
