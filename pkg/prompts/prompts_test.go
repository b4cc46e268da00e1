// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"testing"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/chains"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"
)

func mockSelect(t *testing.T, answers ...string) *[][]string {
	t.Helper()
	orig := promptUISelectRunner
	var seen [][]string
	promptUISelectRunner = func(sel promptui.Select) (int, string, error) {
		items, _ := sel.Items.([]string)
		seen = append(seen, items)
		if len(answers) == 0 {
			return 0, "", errors.New("no more answers")
		}
		a := answers[0]
		answers = answers[1:]
		return 0, a, nil
	}
	t.Cleanup(func() { promptUISelectRunner = orig })
	return &seen
}

func mockPrompt(t *testing.T, answer string) {
	t.Helper()
	orig := promptUIRunner
	promptUIRunner = func(p promptui.Prompt) (string, error) {
		if p.Validate != nil {
			if err := p.Validate(answer); err != nil {
				return "", err
			}
		}
		return answer, nil
	}
	t.Cleanup(func() { promptUIRunner = orig })
}

func TestCaptureYesNo(t *testing.T) {
	mockSelect(t, Yes, No)
	p := NewPrompter()

	ok, err := p.CaptureYesNo("Continue?")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = p.CaptureNoYes("Continue?")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCaptureListWithSize(t *testing.T) {
	seen := mockSelect(t, "b", Done)
	got, err := NewPrompter().CaptureListWithSize("pick", []string{"a", "b", "c"}, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, got)
	require.Equal(t, []string{"a", "c", Done}, (*seen)[1])

	_, err = NewPrompter().CaptureListWithSize("pick", nil, 1)
	require.Error(t, err)
}

func TestCaptureAmount(t *testing.T) {
	mockPrompt(t, "1.25")
	got, err := NewPrompter().CaptureAmount("Amount", nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1_250_000), got)

	mockPrompt(t, "2")
	_, err = NewPrompter().CaptureAmount("Amount", func(v uint64) error {
		if v > 1_000_000 {
			return errors.New("too much")
		}
		return nil
	})
	require.EqualError(t, err, "too much")
}

func TestCaptureIntAndPassword(t *testing.T) {
	mockPrompt(t, " 40 ")
	pct, err := NewPrompter().CaptureInt("Percent", ValidatePercent)
	require.NoError(t, err)
	require.Equal(t, 40, pct)

	mockPrompt(t, "short")
	_, err = NewPrompter().CapturePassword("Password")
	require.Error(t, err)
}

func TestCaptureKeyName(t *testing.T) {
	_, err := CaptureKeyName(NewPrompter(), "stake", nil)
	require.Error(t, err)

	name, err := CaptureKeyName(NewPrompter(), "stake", []string{"solo"})
	require.NoError(t, err)
	require.Equal(t, "solo", name)

	mockSelect(t, "bob")
	name, err = CaptureKeyName(NewPrompter(), "stake", []string{"alice", "bob"})
	require.NoError(t, err)
	require.Equal(t, "bob", name)
}

func TestCaptureCommittees(t *testing.T) {
	options := []chains.CommitteeOption{
		{ChainID: 1, Name: "Main", Symbol: "CNPY", Main: true},
		{ChainID: 7, Name: "Seven", Symbol: "SVN"},
	}
	sel := chains.NewSelection(1)
	// toggle 7 on, try to drop main, then finish
	mockSelect(t, "[ ] "+options[1].Label(), "[x] "+options[0].Label(), Done)

	require.NoError(t, CaptureCommittees(NewPrompter(), sel, options))
	require.Equal(t, []chainid.ID{1, 7}, sel.Selected())
}

func TestValidations(t *testing.T) {
	require.NoError(t, ValidateKeyName("alice-1"))
	require.Error(t, ValidateKeyName("../etc"))
	require.Error(t, ValidateKeyName(""))

	require.NoError(t, ValidateAddress("0x"+"ab12cd34ef"+"ab12cd34ef"+"ab12cd34ef"+"ab12cd34ef"))
	require.Error(t, ValidateAddress("0x1234"))
	require.Error(t, ValidateAddress("zz12cd34ef"+"ab12cd34ef"+"ab12cd34ef"+"ab12cd34ef"))

	require.Error(t, ValidatePercent(0))
	require.NoError(t, ValidatePercent(100))
	require.Error(t, ValidatePercent(101))
}
