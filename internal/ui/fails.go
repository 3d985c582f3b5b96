package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"csplay/internal/domain"
	"csplay/internal/storage"
)

// FailureViewer displays failed checks of the last run in an interactive TUI
type FailureViewer struct {
	storage storage.Storage
}

// NewFailureViewer creates a new FailureViewer; resolved marks are written back through st
func NewFailureViewer(st storage.Storage) *FailureViewer {
	return &FailureViewer{storage: st}
}

// View displays failed checks in an interactive TUI
func (fv *FailureViewer) View(output *domain.GradesOutput) error {
	if len(output.Details) == 0 {
		color.Green("✓ No failed checks found!")
		return nil
	}

	// Track resolved failures (by index), starting from the stored state
	resolved := make(map[int]bool)
	for i, failure := range output.Details {
		if failure.Resolved {
			resolved[i] = true
		}
	}

	saveResolvedStatus := func() error {
		for i := range output.Details {
			output.Details[i].Resolved = resolved[i]
		}
		return fv.storage.SaveOutput(output)
	}

	app := tview.NewApplication()

	// Failed checks (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, listItemText(output.Details[index], index, resolved[index]), "")
	}

	for i, failure := range output.Details {
		list.AddItem(listItemText(failure, i, resolved[i]), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	// Right padding for the details view
	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// List on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := 0
		for i := range output.Details {
			if !resolved[i] {
				unresolved++
			}
		}
		headerView.SetText(fmt.Sprintf(" Failed checks (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ", len(output.Details), unresolved))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(output.Details) {
			failure := output.Details[index]
			statsView.SetText(formatFailureStats(failure))
			detailsView.SetText(formatFailureDetails(failure))
		}
	}

	var saveErr error
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(output.Details) {
					resolved[index] = !resolved[index]
					updateListItem(index)
					updateHeader()
					updateDetails()
					saveErr = saveResolvedStatus()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if saveErr != nil {
		return fmt.Errorf("save resolved status: %w", saveErr)
	}
	return nil
}

// listItemText is the list label for a failure, greyed out once resolved
func listItemText(failure domain.CheckFailure, index int, resolved bool) string {
	name := failure.CheckName
	if name == "" {
		name = fmt.Sprintf("Check %d", index+1)
	}
	if resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s %s[white]", index+1, failure.Submission, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s [red]%s[white]", index+1, failure.Submission, name)
}

// formatFailureDetails formats a failed check using tview color tags
func formatFailureDetails(failure domain.CheckFailure) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Check: %s[white]\n\n", tview.Escape(failure.CheckName))
	fmt.Fprintf(w, "[cyan]Submission: %s[white]\n", tview.Escape(failure.Submission))
	fmt.Fprintf(w, "[cyan]Topic: %s[white]\n", tview.Escape(failure.Topic))
	if failure.GradeID != "" {
		fmt.Fprintf(w, "[gray]Grade: %s[white]\n", failure.GradeID)
	}
	fmt.Fprintf(w, "\n")

	if failure.Message != "" {
		fmt.Fprintf(w, "[yellow]Expectation:[white]\n%s\n\n", tview.Escape(failure.Message))
	}
	if failure.Detail != "" {
		fmt.Fprintf(w, "[yellow]Reason:[white]\n%s\n", tview.Escape(failure.Detail))
	}

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the stats header for a failed check
func formatFailureStats(failure domain.CheckFailure) string {
	path := failure.Submission
	if path == "" {
		path = "Unknown submission"
	}
	status := "[red]open[white]"
	if failure.Resolved {
		status = "[green]resolved[white]"
	}
	return fmt.Sprintf("[cyan]submission:[white] [yellow]%s[white]::[yellow]%s[white] (%s)\n",
		tview.Escape(path), tview.Escape(failure.CheckName), status)
}
