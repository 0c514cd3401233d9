package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PackageListModel - Interactive package selection
// =============================================================================

// PackageSelection holds the result of the package selection.
type PackageSelection struct {
	Package *docs.PackageMetadata
}

// PackageListModel is the bubbletea model for interactive package selection.
type PackageListModel struct {
	Packages []docs.PackageMetadata
	Cursor   int
	Selected *PackageSelection
	Height   int
	Offset   int
}

// NewPackageListModel creates a new package list model.
func NewPackageListModel(packages []docs.PackageMetadata) PackageListModel {
	return PackageListModel{
		Packages: packages,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m PackageListModel) Init() tea.Cmd {
	return nil
}

func (m PackageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Packages)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Packages) == 0 {
				return m, tea.Quit
			}
			pkg := m.Packages[m.Cursor]
			m.Selected = &PackageSelection{Package: &pkg}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PackageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Package"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Packages) {
		end = len(m.Packages)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Packages[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{cursor, p.Name, shortRepoURL(p.SourceURL), truncate(p.Description, 48)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Repository", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			isCurrent := m.Offset+row == m.Cursor
			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorDim)
			} else {
				base = base.Foreground(colorWhite)
			}
			if isCurrent {
				if col < 2 {
					base = base.Foreground(colorCyan)
				}
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Packages))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// renderPackageTable formats resolved packages as a bordered table for
// non-interactive listings.
func renderPackageTable(packages []docs.PackageMetadata) string {
	rows := make([][]string, len(packages))
	for i, p := range packages {
		version := p.Version
		if version == "" {
			version = "—"
		}
		stars := "—"
		if p.Stars > 0 {
			stars = fmt.Sprintf("%d", p.Stars)
		}
		rows[i] = []string{p.Name, version, stars, formatRelativeTime(p.LastUpdated), shortRepoURL(p.SourceURL)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Version", "Stars", "Updated", "Repository").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	return t.Render()
}

// shortRepoURL strips the scheme so table columns stay narrow.
func shortRepoURL(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	if url == "" {
		return "—"
	}
	return url
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
