// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mocks holds a testify mock of prompts.Prompter for tests that
// script interactive answers.
package mocks

import (
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/stretchr/testify/mock"
)

// Prompter is a mock implementation of prompts.Prompter
type Prompter struct {
	mock.Mock
}

var _ prompts.Prompter = (*Prompter)(nil)

func (m *Prompter) CaptureYesNo(promptStr string) (bool, error) {
	args := m.Called(promptStr)
	return args.Bool(0), args.Error(1)
}

func (m *Prompter) CaptureNoYes(promptStr string) (bool, error) {
	args := m.Called(promptStr)
	return args.Bool(0), args.Error(1)
}

func (m *Prompter) CaptureList(promptStr string, options []string) (string, error) {
	args := m.Called(promptStr, options)
	return args.String(0), args.Error(1)
}

func (m *Prompter) CaptureListWithSize(promptStr string, options []string, size int) ([]string, error) {
	args := m.Called(promptStr, options, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *Prompter) CaptureString(promptStr string) (string, error) {
	args := m.Called(promptStr)
	return args.String(0), args.Error(1)
}

func (m *Prompter) CaptureStringAllowEmpty(promptStr string) (string, error) {
	args := m.Called(promptStr)
	return args.String(0), args.Error(1)
}

func (m *Prompter) CaptureValidatedString(promptStr string, validator func(string) error) (string, error) {
	args := m.Called(promptStr, validator)
	return args.String(0), args.Error(1)
}

func (m *Prompter) CapturePassword(promptStr string) (string, error) {
	args := m.Called(promptStr)
	return args.String(0), args.Error(1)
}

func (m *Prompter) CaptureInt(promptStr string, validator func(int) error) (int, error) {
	args := m.Called(promptStr, validator)
	return args.Int(0), args.Error(1)
}

func (m *Prompter) CaptureAmount(promptStr string, validator func(uint64) error) (uint64, error) {
	args := m.Called(promptStr, validator)
	return args.Get(0).(uint64), args.Error(1)
}
