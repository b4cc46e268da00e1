// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"strings"
	"time"

	luxlog "github.com/luxfi/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var Logger *UserLog

type UserLog struct {
	log    luxlog.Logger
	writer io.Writer
}

// NewUserLog installs the process-wide user logger.
func NewUserLog(log luxlog.Logger, userwriter io.Writer) *UserLog {
	Logger = New(log, userwriter)
	return Logger
}

func New(log luxlog.Logger, userwriter io.Writer) *UserLog {
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	return &UserLog{log: log, writer: userwriter}
}

func (ul *UserLog) Writer() io.Writer {
	return ul.writer
}

// PrintToUser prints msg directly to the user's writer. It is not logged.
func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	_, _ = fmt.Fprintln(ul.writer, fmt.Sprintf(msg, args...))
}

func (ul *UserLog) Info(msg string, args ...interface{}) {
	ul.log.Info(fmt.Sprintf(msg, args...))
}

func (ul *UserLog) PrintLineSeparator(msg ...string) {
	separator := "=========================================="
	if len(msg) > 0 && msg[0] != "" {
		separator = msg[0]
	}
	_, _ = fmt.Fprintln(ul.writer, separator)
}

func (ul *UserLog) Error(msg string, args ...interface{}) {
	ul.log.Error(fmt.Sprintf(msg, args...))
}

// RedXToUser prints a red X error message to the user
func (ul *UserLog) RedXToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf("✗ %s", fmt.Sprintf(msg, args...))
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
	ul.log.Error(formattedMsg)
}

// GreenCheckmarkToUser prints a green checkmark success message to the user
func (ul *UserLog) GreenCheckmarkToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf("✓ %s", fmt.Sprintf(msg, args...))
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
	ul.log.Info(formattedMsg)
}

// PrintError prints a visible error message with ERROR prefix to the user
func (ul *UserLog) PrintError(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintf(ul.writer, "\nERROR: %s\n\n", formattedMsg)
	ul.log.Error(formattedMsg)
}

// StepTracker times the steps of a multi-step operation and warns once
// when a step runs long.
type StepTracker struct {
	stepStart    time.Time
	warnAfter    time.Duration
	warningShown bool
	stepName     string
	ul           *UserLog
	now          func() time.Time
}

func NewStepTracker(ul *UserLog, warnAfter time.Duration) *StepTracker {
	return &StepTracker{ul: ul, warnAfter: warnAfter, now: time.Now}
}

func (st *StepTracker) Start(stepName string) {
	st.stepStart = st.now()
	st.stepName = stepName
	st.warningShown = false
	st.ul.PrintToUser("%s...", stepName)
}

func (st *StepTracker) elapsed() time.Duration {
	return st.now().Sub(st.stepStart)
}

// CheckWarn reports whether it printed the slow-step warning.
func (st *StepTracker) CheckWarn() bool {
	if st.warningShown {
		return false
	}
	elapsed := st.elapsed()
	if elapsed > st.warnAfter {
		st.ul.PrintToUser("Warning: %s taking longer than expected (%.1fs)...", st.stepName, elapsed.Seconds())
		st.warningShown = true
		return true
	}
	return false
}

func (st *StepTracker) Complete(suffix string) {
	elapsed := st.elapsed()
	if suffix != "" {
		st.ul.GreenCheckmarkToUser("%s (%.1fs) - %s", st.stepName, elapsed.Seconds(), suffix)
	} else {
		st.ul.GreenCheckmarkToUser("%s (%.1fs)", st.stepName, elapsed.Seconds())
	}
}

func (st *StepTracker) Failed(reason string) {
	st.ul.RedXToUser("%s (%.1fs) - FAILED: %s", st.stepName, st.elapsed().Seconds(), reason)
}

var printer = message.NewPrinter(language.English)

// ConvertToStringWithThousandSeparator renders 1234567 as 1,234,567.
func ConvertToStringWithThousandSeparator(input uint64) string {
	return printer.Sprintf("%d", input)
}

// FormatUSD renders a dollar figure with grouping and cents.
func FormatUSD(v float64) string {
	s := printer.Sprintf("%.2f", v)
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

// FormatPercentChange renders a signed percentage such as +4.20%.
func FormatPercentChange(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}
