// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/chains"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/units"
	"github.com/manifoldco/promptui"
)

const (
	Yes  = "Yes"
	No   = "No"
	Done = "Done"
)

var errNoOptions = errors.New("no options provided")

// promptUIRunner is a variable for testing purposes to allow mocking prompt.Run()
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// promptUISelectRunner is a variable for testing purposes to allow mocking select.Run()
var promptUISelectRunner = func(sel promptui.Select) (int, string, error) {
	return sel.Run()
}

type Prompter interface {
	CaptureYesNo(promptStr string) (bool, error)
	CaptureNoYes(promptStr string) (bool, error)
	CaptureList(promptStr string, options []string) (string, error)
	CaptureListWithSize(promptStr string, options []string, size int) ([]string, error)
	CaptureString(promptStr string) (string, error)
	CaptureStringAllowEmpty(promptStr string) (string, error)
	CaptureValidatedString(promptStr string, validator func(string) error) (string, error)
	CapturePassword(promptStr string) (string, error)
	CaptureInt(promptStr string, validator func(int) error) (int, error)
	CaptureAmount(promptStr string, validator func(uint64) error) (uint64, error)
}

type realPrompter struct{}

// NewPrompter returns a Prompter that reads from the terminal.
func NewPrompter() Prompter {
	return &realPrompter{}
}

func yesNoBase(promptStr string, orderedOptions []string) (bool, error) {
	prompt := promptui.Select{
		Label: promptStr,
		Items: orderedOptions,
	}

	_, decision, err := promptUISelectRunner(prompt)
	if err != nil {
		return false, err
	}
	return decision == Yes, nil
}

func (*realPrompter) CaptureYesNo(promptStr string) (bool, error) {
	return yesNoBase(promptStr, []string{Yes, No})
}

func (*realPrompter) CaptureNoYes(promptStr string) (bool, error) {
	return yesNoBase(promptStr, []string{No, Yes})
}

func (*realPrompter) CaptureList(promptStr string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errNoOptions
	}
	prompt := promptui.Select{
		Label: promptStr,
		Items: options,
	}
	_, listDecision, err := promptUISelectRunner(prompt)
	if err != nil {
		return "", err
	}
	return listDecision, nil
}

// CaptureListWithSize lets the user pick up to size distinct options, one
// at a time, stopping early on Done.
func (p *realPrompter) CaptureListWithSize(promptStr string, options []string, size int) ([]string, error) {
	if len(options) == 0 {
		return nil, errNoOptions
	}

	selected := []string{}
	remaining := append([]string(nil), options...)
	for i := 0; i < size && len(remaining) > 0; i++ {
		label := promptStr
		if i > 0 {
			label = fmt.Sprintf("%s (%d of %d)", promptStr, i+1, size)
		}
		choice, err := p.CaptureList(label, append(append([]string(nil), remaining...), Done))
		if err != nil {
			return nil, err
		}
		if choice == Done {
			break
		}
		selected = append(selected, choice)
		next := remaining[:0]
		for _, opt := range remaining {
			if opt != choice {
				next = append(next, opt)
			}
		}
		remaining = next
	}
	return selected, nil
}

func (*realPrompter) CaptureString(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label: promptStr,
		Validate: func(input string) error {
			if input == "" {
				return errors.New("string cannot be empty")
			}
			return nil
		},
	}
	return promptUIRunner(prompt)
}

func (*realPrompter) CaptureStringAllowEmpty(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label: promptStr,
	}
	return promptUIRunner(prompt)
}

func (*realPrompter) CaptureValidatedString(promptStr string, validator func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validator,
	}
	return promptUIRunner(prompt)
}

// CapturePassword reads a secret without echoing it.
func (*realPrompter) CapturePassword(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Mask:     '*',
		Validate: ValidatePassword,
	}
	return promptUIRunner(prompt)
}

func (*realPrompter) CaptureInt(promptStr string, validator func(int) error) (int, error) {
	prompt := promptui.Prompt{
		Label: promptStr,
		Validate: func(input string) error {
			val, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil {
				return fmt.Errorf("%q is not a whole number", input)
			}
			if validator != nil {
				return validator(val)
			}
			return nil
		},
	}

	result, err := promptUIRunner(prompt)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(result))
}

// CaptureAmount reads a CNPY amount such as "12.5" and returns micro-units.
func (*realPrompter) CaptureAmount(promptStr string, validator func(uint64) error) (uint64, error) {
	prompt := promptui.Prompt{
		Label: promptStr + " (" + constants.TokenSymbol + ")",
		Validate: func(input string) error {
			val, err := units.ToMicroUnits(input)
			if err != nil {
				return err
			}
			if validator != nil {
				return validator(val)
			}
			return nil
		},
	}

	result, err := promptUIRunner(prompt)
	if err != nil {
		return 0, err
	}
	return units.ToMicroUnits(result)
}

// CaptureKeyName asks which key to use. A single key is chosen without asking.
func CaptureKeyName(prompter Prompter, goal string, names []string) (string, error) {
	switch len(names) {
	case 0:
		return "", errors.New("no keys found, create one with 'launchpad key create'")
	case 1:
		return names[0], nil
	}
	return prompter.CaptureList(fmt.Sprintf("Which key should be used to %s?", goal), names)
}

// CaptureCommittees toggles committees in sel until the user picks Done.
// The main chain is shown but cannot be removed.
func CaptureCommittees(prompter Prompter, sel *chains.Selection, options []chains.CommitteeOption) error {
	for {
		labels := make([]string, 0, len(options)+1)
		byLabel := make(map[string]chainid.ID, len(options))
		for _, o := range options {
			mark := "[ ]"
			if sel.Contains(o.ChainID) {
				mark = "[x]"
			}
			label := mark + " " + o.Label()
			labels = append(labels, label)
			byLabel[label] = o.ChainID
		}
		labels = append(labels, Done)
		choice, err := prompter.CaptureList("Committees to restake to", labels)
		if err != nil {
			return err
		}
		if choice == Done {
			return nil
		}
		sel.Toggle(byLabel[choice])
	}
}
