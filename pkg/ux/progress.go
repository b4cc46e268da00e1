// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/luxfi/launchpad/pkg/graduation"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/schollz/progressbar/v3"
)

const barWidth = 30

// GraduationBar draws a chain's progress towards graduation. On a terminal
// it uses a progress bar; elsewhere a plain text line.
func GraduationBar(w io.Writer, chain models.Chain, tty bool) error {
	pct := graduation.Progress(chain)
	desc := graduationDescription(chain)
	if !tty {
		_, err := fmt.Fprintln(w, GraduationLine(pct)+" "+desc)
		return err
	}

	bar := progressbar.NewOptions(
		100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(barWidth),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetDescription(fmt.Sprintf("[[cyan]]%s[[reset]]", desc)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	if err := bar.Set(pct); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// GraduationLine is the text form of the bar, e.g. "[=====     ] 50%".
func GraduationLine(pct int) string {
	filled := pct * barWidth / 100
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled) + fmt.Sprintf("] %d%%", pct)
}

func graduationDescription(chain models.Chain) string {
	if graduation.IsGraduated(chain) {
		return "graduated"
	}
	reserve, threshold := graduation.Figures(chain)
	if threshold <= 0 {
		return "no graduation threshold"
	}
	return printer.Sprintf("%.2f / %.2f CNPY (%.2f to go)", reserve, threshold, graduation.Remaining(chain))
}
