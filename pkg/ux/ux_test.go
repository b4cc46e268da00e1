// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/recorder"
	"github.com/luxfi/launchpad/pkg/sample"
	luxlog "github.com/luxfi/log"
	"github.com/stretchr/testify/require"
)

func TestUserLogOutput(t *testing.T) {
	var buf bytes.Buffer
	ul := New(luxlog.NewNoOpLogger(), &buf)
	ul.PrintToUser("hello %s", "world")
	ul.GreenCheckmarkToUser("done")
	ul.RedXToUser("failed: %d", 3)
	ul.PrintError("boom")

	out := buf.String()
	require.Contains(t, out, "hello world\n")
	require.Contains(t, out, "✓ done\n")
	require.Contains(t, out, "✗ failed: 3\n")
	require.Contains(t, out, "ERROR: boom")
}

func TestStepTracker(t *testing.T) {
	var buf bytes.Buffer
	now := time.Unix(0, 0)
	st := NewStepTracker(New(nil, &buf), time.Second)
	st.now = func() time.Time { return now }

	st.Start("Waiting for inclusion")
	require.False(t, st.CheckWarn())
	now = now.Add(2 * time.Second)
	require.True(t, st.CheckWarn())
	require.False(t, st.CheckWarn())
	st.Complete("height 9")

	out := buf.String()
	require.Contains(t, out, "Waiting for inclusion...")
	require.Contains(t, out, "taking longer than expected (2.0s)")
	require.Contains(t, out, "✓ Waiting for inclusion (2.0s) - height 9")
}

func TestNumberFormatting(t *testing.T) {
	require.Equal(t, "1,234,567", ConvertToStringWithThousandSeparator(1234567))
	require.Equal(t, "$1,234.50", FormatUSD(1234.5))
	require.Equal(t, "-$3.00", FormatUSD(-3))
	require.Equal(t, "+4.20%", FormatPercentChange(4.2))
	require.Equal(t, "-1.00%", FormatPercentChange(-1))
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, f)
	f, err = ParseOutputFormat("YAML")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, f)
	_, err = ParseOutputFormat("xml")
	require.ErrorIs(t, err, constants.ErrUnknownOutput)
}

func TestEncode(t *testing.T) {
	v := map[string]int{"a": 1}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, v))
	require.JSONEq(t, `{"a":1}`, buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, FormatYAML, v))
	require.Equal(t, "a: 1\n", buf.String())

	require.Error(t, Encode(&buf, FormatTable, v))
}

func TestChainsTable(t *testing.T) {
	list := sample.Chains(3, 1)
	var buf bytes.Buffer
	require.NoError(t, ChainsTable(&buf, list))
	out := buf.String()
	for _, c := range list {
		require.Contains(t, out, c.Name)
	}
	require.Contains(t, strings.ToUpper(out), "GRADUATION")
}

func TestHistoryTableShowsErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HistoryTable(&buf, []recorder.TxRecord{
		{Type: "stake", ChainID: 1, Amount: 1_000_000, Status: recorder.TxSubmitted, Hash: "0x1234567890abcdef1234567890"},
		{Type: "send", ChainID: 1, Amount: 5, Status: recorder.TxFailed, Error: "insufficient funds"},
	}))
	out := buf.String()
	require.Contains(t, out, "0x12345678...567890")
	require.Contains(t, out, "insufficient funds")
}

func TestGraduationLine(t *testing.T) {
	require.Equal(t, "["+strings.Repeat("=", 15)+strings.Repeat(" ", 15)+"] 50%", GraduationLine(50))

	var buf bytes.Buffer
	chain := models.Chain{GraduationThreshold: 1000, VirtualPool: &models.VirtualPool{CNPYReserve: 500}}
	require.NoError(t, GraduationBar(&buf, chain, false))
	require.Contains(t, buf.String(), "] 50% 500.00 / 1,000.00 CNPY (500.00 to go)")

	buf.Reset()
	require.NoError(t, GraduationBar(&buf, chain, true))
	require.Contains(t, buf.String(), "500.00 / 1,000.00 CNPY")
}

func TestQRString(t *testing.T) {
	s, err := QRString("abcdef0123")
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(s))
}
