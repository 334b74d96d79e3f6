package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"bitget-board/internal/domain"
	"bitget-board/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marketStub struct {
	mu          sync.Mutex
	snapshot    service.Snapshot
	details     map[string]*domain.MajorDetail
	invalidated int
}

func (m *marketStub) GetSnapshot(ctx context.Context) service.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot.Tickers == nil {
		return service.Snapshot{Tickers: []domain.TickerRecord{}}
	}
	return m.snapshot
}

func (m *marketStub) GetMajorDetails(ctx context.Context) []service.MajorSlot {
	slots := make([]service.MajorSlot, len(domain.MajorSymbols))
	for i, s := range domain.MajorSymbols {
		slots[i] = service.MajorSlot{Symbol: s, Detail: m.details[s]}
	}
	return slots
}

func (m *marketStub) Invalidate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated++
}

func fullStub() *marketStub {
	return &marketStub{
		snapshot: service.Snapshot{
			UpdatedAt: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
			Tickers: []domain.TickerRecord{
				{Symbol: "ETH", LastPrice: 3000, QuoteVolume24h: 5e9, Change24h: -0.02},
				{Symbol: "BTC", LastPrice: 65000, QuoteVolume24h: 9e9, Change24h: 0.015625},
				{Symbol: "PEPE", LastPrice: 0.00001, QuoteVolume24h: 2e6, Change24h: 0.1},
			},
		},
		details: map[string]*domain.MajorDetail{
			"BTC": {
				Symbol: "BTC", Price: 65000, Change24h: 0.015625,
				OpenInterestValue: 650000, OpenInterestATH: 975000, OpenInterestATL: 195000,
				ATHDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
				ATLDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, stub *marketStub) *Model {
	t.Helper()
	m := NewModel(context.Background(), stub, time.Second)
	m.SetSize(120, 40)
	msg := m.load(false)()
	require.IsType(t, dataMsg{}, msg)
	m.Update(msg)
	return m
}

func firstColumn(m *Model) []string {
	var out []string
	for _, r := range m.table.Rows() {
		out = append(out, r[0])
	}
	return out
}

func TestModelRendersSnapshotAndCards(t *testing.T) {
	m := loaded(t, fullStub())

	assert.Equal(t, []string{"BTC", "ETH", "PEPE"}, firstColumn(m))

	view := m.View()
	assert.Contains(t, view, "3 pairs, updated 10:30:00 UTC")
	assert.Contains(t, view, "$65,000.00")
	assert.Contains(t, view, "PERP")
	assert.Contains(t, view, "2025-01-10")
	assert.Contains(t, view, "Data unavailable", "ETH and SOL have no detail")
}

func TestModelUnavailableBanner(t *testing.T) {
	m := loaded(t, &marketStub{})

	view := m.View()
	assert.Contains(t, view, "Market data unavailable")
	assert.Contains(t, view, "no data")
	assert.Empty(t, m.table.Rows())
}

func TestModelRefreshInvalidates(t *testing.T) {
	stub := fullStub()
	m := loaded(t, stub)

	_, cmd := m.Update(key("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	msg := cmd()
	assert.Equal(t, 1, stub.invalidated)
	m.Update(msg)
	assert.False(t, m.loading)
}

func TestModelDropsSupersededLoad(t *testing.T) {
	stub := fullStub()
	m := loaded(t, stub)

	_, tickCmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, tickCmd)
	stale := m.load(false)
	_, refreshCmd := m.Update(key("r"))
	require.NotNil(t, refreshCmd)

	fresh := refreshCmd()
	m.Update(fresh)
	assert.False(t, m.loading)
	assert.Equal(t, []string{"BTC", "ETH", "PEPE"}, firstColumn(m))

	stub.mu.Lock()
	stub.snapshot = service.Snapshot{Tickers: []domain.TickerRecord{}}
	stub.mu.Unlock()

	m.Update(stale())
	assert.Equal(t, []string{"BTC", "ETH", "PEPE"}, firstColumn(m), "older load must not overwrite a newer one")
	assert.True(t, m.snapshot.Available())
}

func TestModelTickReloadsWithoutInvalidating(t *testing.T) {
	stub := fullStub()
	m := loaded(t, stub)

	_, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Zero(t, stub.invalidated)
}

func TestModelSearch(t *testing.T) {
	m := loaded(t, fullStub())

	m.Update(key("/"))
	require.True(t, m.searching)
	m.Update(key("e"))
	assert.Equal(t, []string{"ETH", "PEPE"}, firstColumn(m))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, []string{"ETH", "PEPE"}, firstColumn(m))

	m.Update(key("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{"BTC", "ETH", "PEPE"}, firstColumn(m))
}

func TestModelSortCycle(t *testing.T) {
	m := loaded(t, fullStub())

	m.Update(key("s"))
	assert.True(t, strings.HasPrefix(m.help(), "sort: price desc"))
	assert.Equal(t, []string{"BTC", "ETH", "PEPE"}, firstColumn(m))

	m.Update(key("o"))
	assert.Equal(t, []string{"PEPE", "ETH", "BTC"}, firstColumn(m))
}

func TestModelQuit(t *testing.T) {
	m := loaded(t, fullStub())

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
