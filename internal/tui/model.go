package tui

import (
	"context"
	"time"

	"bitget-board/internal/domain"
	"bitget-board/internal/market"
	"bitget-board/internal/service"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const loadTimeout = 20 * time.Second

// MarketReader is the part of service.MarketService the dashboard renders.
type MarketReader interface {
	GetSnapshot(ctx context.Context) service.Snapshot
	GetMajorDetails(ctx context.Context) []service.MajorSlot
	Invalidate(ctx context.Context)
}

// dataMsg carries the result of load number seq.
type dataMsg struct {
	seq      uint64
	snapshot service.Snapshot
	majors   []service.MajorSlot
}

type tickMsg time.Time

// Model is the dashboard: major cards on top, the searchable ticker table below.
type Model struct {
	ctx     context.Context
	market  MarketReader
	refresh time.Duration

	width, height int

	search    textinput.Model
	table     table.Model
	searching bool
	sortIdx   int
	ascending bool

	snapshot service.Snapshot
	majors   []service.MajorSlot
	loading  bool
	loadSeq  uint64
}

// NewModel builds a dashboard that re-reads market every refresh. ctx bounds
// every read; cancel it when the session ends.
func NewModel(ctx context.Context, m MarketReader, refresh time.Duration) *Model {
	search := textinput.New()
	search.Placeholder = "search symbol"
	search.Prompt = "/ "
	search.CharLimit = 16

	t := table.New(
		table.WithColumns(tableColumns()),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	majors := make([]service.MajorSlot, len(domain.MajorSymbols))
	for i, s := range domain.MajorSymbols {
		majors[i].Symbol = s
	}

	return &Model{
		ctx:     ctx,
		market:  m,
		refresh: refresh,
		search:  search,
		table:   t,
		majors:  majors,
		loading: true,
	}
}

// SetSize adapts the table to the terminal; cards and chrome take the top rows.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	if h := height - chromeHeight; h > 3 {
		m.table.SetHeight(h)
	}
	if width > 0 {
		m.table.SetWidth(width)
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(false), m.tick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case dataMsg:
		if msg.seq != m.loadSeq {
			// superseded by a later load
			return m, nil
		}
		m.loading = false
		m.snapshot = msg.snapshot
		m.majors = msg.majors
		m.applyQuery()
		return m, nil

	case tickMsg:
		if m.loading {
			return m, m.tick()
		}
		m.loading = true
		return m, tea.Batch(m.load(false), m.tick())

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			m.searching = true
			m.table.Blur()
			return m, m.search.Focus()
		case "r":
			m.loading = true
			return m, m.load(true)
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(market.SortKeys)
			m.applyQuery()
			return m, nil
		case "o":
			m.ascending = !m.ascending
			m.applyQuery()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.search.SetValue("")
		fallthrough
	case "enter":
		m.searching = false
		m.search.Blur()
		m.table.Focus()
		m.applyQuery()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyQuery()
	return m, cmd
}

// load reads the facade; invalidate first drops its caches (the user refresh).
// Only the most recently started load may update the model.
func (m *Model) load(invalidate bool) tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, loadTimeout)
		defer cancel()
		if invalidate {
			m.market.Invalidate(ctx)
		}
		return dataMsg{
			seq:      seq,
			snapshot: m.market.GetSnapshot(ctx),
			majors:   m.market.GetMajorDetails(ctx),
		}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) query() market.Query {
	return market.Query{
		Search:    m.search.Value(),
		SortBy:    market.SortKeys[m.sortIdx],
		Ascending: m.ascending,
	}
}

func (m *Model) applyQuery() {
	rows := market.Apply(m.snapshot.Tickers, m.query())
	m.table.SetRows(tableRows(rows))
	m.table.GotoTop()
}
