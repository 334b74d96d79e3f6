package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bitget-board/internal/domain"
	"bitget-board/internal/service"

	"go.uber.org/zap"
)

type marketStub struct {
	snapshot    service.Snapshot
	detail      *domain.MajorDetail
	detailErr   error
	invalidated bool
}

func (m *marketStub) GetSnapshot(ctx context.Context) service.Snapshot {
	if m.snapshot.Tickers == nil {
		return service.Snapshot{Tickers: []domain.TickerRecord{}}
	}
	return m.snapshot
}

func (m *marketStub) GetMajorDetail(ctx context.Context, symbol string) (*domain.MajorDetail, error) {
	return m.detail, m.detailErr
}

func (m *marketStub) Invalidate(ctx context.Context) {
	m.invalidated = true
}

func sampleSnapshot() service.Snapshot {
	return service.Snapshot{
		UpdatedAt: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		Tickers: []domain.TickerRecord{
			{Symbol: "ETH", LastPrice: 3000, QuoteVolume24h: 5e9, Change24h: -0.02},
			{Symbol: "BTC", LastPrice: 65000, QuoteVolume24h: 9e9, Change24h: 0.015625},
			{Symbol: "PEPE", LastPrice: 0.0000123, QuoteVolume24h: 2e6, Change24h: 0.1},
		},
	}
}

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	b, err := StartTelegramBot("", nil, zap.NewNop())
	if err != nil || b != nil {
		t.Fatalf("expected skipped startup, got bot=%v err=%v", b, err)
	}
}

func TestMajorCommand(t *testing.T) {
	cmds := NewCommands(&marketStub{detail: &domain.MajorDetail{
		Symbol:            "BTC",
		Price:             65000,
		Change1h:          0.01,
		Change4h:          -0.02,
		Change24h:         0.015625,
		OpenInterestValue: 2_000_000_000,
		OpenInterestATH:   3_000_000_000,
		OpenInterestATL:   600_000_000,
		ATHDate:           time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		ATLDate:           time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}})

	msg := cmds.Major(context.Background(), []string{"btc"})
	for _, want := range []string{"BTC PERP", "$65,000.00", "1h: +1.00%", "4h: -2.00%", "24h: +1.56%", "$2.00B", "2025-01-10", "2024-05-02"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in reply:\n%s", want, msg)
		}
	}
}

func TestMajorCommandErrors(t *testing.T) {
	cmds := NewCommands(&marketStub{detailErr: errors.New("timeout")})

	if msg := cmds.Major(context.Background(), nil); !strings.HasPrefix(msg, "Usage") {
		t.Fatalf("expected usage, got %s", msg)
	}
	if msg := cmds.Major(context.Background(), []string{"DOGE"}); !strings.HasPrefix(msg, "Unknown symbol: DOGE") {
		t.Fatalf("expected unknown symbol, got %s", msg)
	}
	if msg := cmds.Major(context.Background(), []string{"ETH"}); msg != "ETH: data unavailable" {
		t.Fatalf("expected unavailable, got %s", msg)
	}
}

func TestTopCommand(t *testing.T) {
	cmds := NewCommands(&marketStub{snapshot: sampleSnapshot()})

	msg := cmds.Top(context.Background(), []string{"2"})
	lines := strings.Split(msg, "\n")
	if len(lines) != 3 || lines[0] != "Top 2 by 24h volume" {
		t.Fatalf("unexpected reply:\n%s", msg)
	}
	if !strings.HasPrefix(lines[1], "BTC ") || !strings.HasPrefix(lines[2], "ETH ") {
		t.Fatalf("expected volume order, got:\n%s", msg)
	}

	if msg := cmds.Top(context.Background(), []string{"zero"}); msg != "Usage: /top [N]" {
		t.Fatalf("expected usage, got %s", msg)
	}
}

func TestTopCommandUnavailable(t *testing.T) {
	cmds := NewCommands(&marketStub{})
	if msg := cmds.Top(context.Background(), nil); !strings.Contains(msg, "unavailable") {
		t.Fatalf("expected unavailable, got %s", msg)
	}
}

func TestSearchCommand(t *testing.T) {
	cmds := NewCommands(&marketStub{snapshot: sampleSnapshot()})

	msg := cmds.Search(context.Background(), []string{"pe"})
	if !strings.HasPrefix(msg, "PEPE $0.0000") {
		t.Fatalf("unexpected reply: %s", msg)
	}
	if msg := cmds.Search(context.Background(), []string{"xyz"}); msg != `No tickers match "XYZ"` {
		t.Fatalf("unexpected reply: %s", msg)
	}
}

func TestRefreshCommand(t *testing.T) {
	stub := &marketStub{snapshot: sampleSnapshot()}
	cmds := NewCommands(stub)

	msg := cmds.Refresh(context.Background())
	if !stub.invalidated {
		t.Fatal("expected invalidation")
	}
	if msg != "Refreshed 3 tickers at 10:30:00 UTC" {
		t.Fatalf("unexpected reply: %s", msg)
	}
}
