package tui

import (
	"fmt"
	"strings"

	"bitget-board/internal/domain"
	"bitget-board/internal/market"
	"bitget-board/internal/service"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// chromeHeight is everything above and below the table: header, cards, search, help.
const chromeHeight = 16

var (
	upColor   = lipgloss.Color("42")
	downColor = lipgloss.Color("203")
	dimColor  = lipgloss.Color("245")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(dimColor)
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(downColor).Padding(1, 2)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(38)
	perpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1)
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(m.cards())
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	if !m.loading && !m.snapshot.Available() {
		b.WriteString(bannerStyle.Render("Market data unavailable. Press r to retry."))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help()))
	return b.String()
}

func (m *Model) header() string {
	status := "loading..."
	if !m.loading {
		status = "no data"
		if m.snapshot.Available() {
			status = fmt.Sprintf("%d pairs, updated %s UTC", len(m.snapshot.Tickers), m.snapshot.UpdatedAt.UTC().Format("15:04:05"))
		}
	}
	return titleStyle.Render("BITGET BOARD") + "  " + dimStyle.Render(status)
}

func (m *Model) cards() string {
	rendered := make([]string, len(m.majors))
	for i, slot := range m.majors {
		rendered[i] = renderCard(slot)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) help() string {
	dir := "desc"
	if m.ascending {
		dir = "asc"
	}
	return fmt.Sprintf("sort: %s %s  •  / search  s sort  o order  r refresh  q quit", market.SortKeys[m.sortIdx], dir)
}

func renderCard(slot service.MajorSlot) string {
	d := slot.Detail
	title := lipgloss.NewStyle().Bold(true).Render(slot.Symbol) + " " + perpStyle.Render("PERP")
	if d == nil {
		return cardStyle.Render(title + "\n" + dimStyle.Render("Data unavailable"))
	}

	lines := []string{
		title,
		lipgloss.NewStyle().Bold(true).Render(market.FormatCardPrice(d.Price)),
		fmt.Sprintf("1h %s  4h %s  24h %s", colored(d.Change1h), colored(d.Change4h), colored(d.Change24h)),
		"OI " + market.FormatCurrency(d.OpenInterestValue),
	}
	if d.OpenInterestValue > 0 {
		lines = append(lines,
			fmt.Sprintf("ATH %s %s %s", market.FormatCurrency(d.OpenInterestATH),
				colored(d.OpenInterestValue/d.OpenInterestATH-1), dimStyle.Render(d.ATHDate.Format("2006-01-02"))),
			fmt.Sprintf("ATL %s %s %s", market.FormatCurrency(d.OpenInterestATL),
				colored(d.OpenInterestValue/d.OpenInterestATL-1), dimStyle.Render(d.ATLDate.Format("2006-01-02"))),
		)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func colored(change float64) string {
	color := upColor
	if market.TrendOf(change) == market.TrendDown {
		color = downColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(market.FormatPercent(change))
}

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "Symbol", Width: 12},
		{Title: "Price", Width: 16},
		{Title: "1h", Width: 9},
		{Title: "4h", Width: 9},
		{Title: "24h", Width: 9},
		{Title: "Volume 24h", Width: 12},
	}
}

func tableRows(records []domain.TickerRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			r.Symbol,
			market.FormatPrice(r.LastPrice),
			market.FormatPercent(r.Change1h),
			market.FormatPercent(r.Change4h),
			market.FormatPercent(r.Change24h),
			market.FormatCurrency(r.QuoteVolume24h),
		}
	}
	return rows
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	return s
}
