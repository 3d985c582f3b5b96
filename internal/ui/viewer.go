package ui

import "csplay/internal/domain"

// Viewer displays stored grading failures in an interactive TUI
type Viewer interface {
	View(output *domain.GradesOutput) error
}
