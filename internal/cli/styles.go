package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/kboard/internal/model"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("205"))

	dropColumnStyle = columnStyle.
			BorderForeground(lipgloss.Color("42"))

	listTitleStyle = lipgloss.NewStyle().Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1).
			MarginBottom(1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("205"))

	heldCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("42")).
			Faint(true)

	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noStyle      = lipgloss.NewStyle()

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 2)
)

var categoryColors = map[model.Category]lipgloss.Color{
	model.CategoryAssignment: lipgloss.Color("33"),
	model.CategoryLab:        lipgloss.Color("36"),
	model.CategoryProject:    lipgloss.Color("135"),
	model.CategoryMod:        lipgloss.Color("214"),
	model.CategoryUnfinished: lipgloss.Color("196"),
}

func badge(c model.Category) string {
	color, ok := categoryColors[c]
	if !ok {
		color = lipgloss.Color("240")
	}

	return lipgloss.NewStyle().Foreground(color).Render("[" + c.Label() + "]")
}
