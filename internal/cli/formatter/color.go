package formatter

import (
	"fmt"

	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/alexanderramin/mainstay/internal/maintenance"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

// EquipmentStatusLabel returns a colored status string for equipment.
func EquipmentStatusLabel(s domain.EquipmentStatus) string {
	switch s {
	case domain.EquipmentOperational:
		return StyleGreen.Render(string(s))
	case domain.EquipmentMaintenance:
		return StyleYellow.Render(string(s))
	case domain.EquipmentOutOfService:
		return StyleRed.Render(string(s))
	case domain.EquipmentDecommissioned:
		return StyleDim.Render(string(s))
	default:
		return string(s)
	}
}

// WorkOrderStatusLabel returns a colored status string for work orders.
func WorkOrderStatusLabel(s domain.WorkOrderStatus) string {
	switch s {
	case domain.WorkOrderPending:
		return StyleBlue.Render(string(s))
	case domain.WorkOrderInProgress:
		return StyleYellow.Render(string(s))
	case domain.WorkOrderCompleted:
		return StyleGreen.Render(string(s))
	case domain.WorkOrderCancelled:
		return StyleDim.Render(string(s))
	default:
		return string(s)
	}
}

// PriorityLabel returns a colored priority string.
func PriorityLabel(p domain.WorkOrderPriority) string {
	switch p {
	case domain.PriorityCritical:
		return StyleRed.Render(string(p))
	case domain.PriorityHigh:
		return StyleYellow.Render(string(p))
	case domain.PriorityMedium:
		return StyleFg.Render(string(p))
	case domain.PriorityLow:
		return StyleDim.Render(string(p))
	default:
		return string(p)
	}
}

// UrgencyIndicator renders the remaining-interval percentage with a color
// reflecting how close the equipment is to its due point.
func UrgencyIndicator(p maintenance.Projection) string {
	label := fmt.Sprintf("%.0f%%", p.PercentRemaining)
	switch {
	case p.PercentRemaining < 10:
		return StyleRed.Render(label)
	case p.PercentRemaining < 30:
		return StyleYellow.Render(label)
	default:
		return StyleGreen.Render(label)
	}
}
