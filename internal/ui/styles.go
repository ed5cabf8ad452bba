package ui

import (
	"github.com/charmbracelet/lipgloss"

	"task-manager/internal/domain"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	activeStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// PriorityStyle returns the colour used for a priority tier.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	case domain.PriorityMedium:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case domain.PriorityLow:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	}
	return lipgloss.NewStyle()
}

// StatusStyle returns the style used for a status label.
func StatusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusInProgress:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	case domain.StatusCompleted:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Faint(true)
	case domain.StatusOnHold:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	}
	return lipgloss.NewStyle()
}

// OverdueStyle is applied to deadlines that have passed on unfinished tasks.
func OverdueStyle() lipgloss.Style {
	return overdueStyle
}
