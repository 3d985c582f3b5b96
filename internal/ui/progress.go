package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows grading progress with pass/fail counts
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new progress bar for count submissions on stderr
func NewProgressBar(count int) *ProgressBar {
	return newProgressBar(count, os.Stderr)
}

func newProgressBar(count int, w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

func describe(passed, failed int) string {
	return color.CyanString("Grading: ") +
		color.GreenString("[passed: %d", passed) +
		" | " +
		color.RedString("failed: %d]", failed)
}

// Update sets the number of graded submissions and the pass/fail split
func (p *ProgressBar) Update(done, passed, failed int) {
	_ = p.bar.Set(done)
	p.bar.Describe(describe(passed, failed))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}
