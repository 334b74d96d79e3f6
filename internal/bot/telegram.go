package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bitget-board/internal/domain"
	"bitget-board/internal/market"
	"bitget-board/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	defaultTopN = 10
	maxTopN     = 50
	commandWait = 15 * time.Second
)

// MarketReader is the part of service.MarketService the bot answers from.
type MarketReader interface {
	GetSnapshot(ctx context.Context) service.Snapshot
	GetMajorDetail(ctx context.Context, symbol string) (*domain.MajorDetail, error)
	Invalidate(ctx context.Context)
}

// Commands renders the bot replies. It is independent of Telegram so the
// text can be tested directly.
type Commands struct {
	market MarketReader
}

func NewCommands(m MarketReader) *Commands {
	return &Commands{market: m}
}

// StartTelegramBot registers the commands and starts long polling in the
// background. It returns nil, nil when token is empty.
func StartTelegramBot(token string, m MarketReader, logger *zap.Logger) (*tele.Bot, error) {
	if token == "" {
		logger.Info("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil, nil
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Warn("telegram handler error", zap.Error(err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	cmds := NewCommands(m)
	reply := func(render func(ctx context.Context, args []string) string) tele.HandlerFunc {
		return func(c tele.Context) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandWait)
			defer cancel()
			return c.Send(render(ctx, c.Args()))
		}
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})
	b.Handle("/major", reply(cmds.Major))
	b.Handle("/top", reply(cmds.Top))
	b.Handle("/search", reply(cmds.Search))
	b.Handle("/refresh", reply(func(ctx context.Context, _ []string) string {
		return cmds.Refresh(ctx)
	}))

	logger.Info("Telegram bot started")
	go b.Start()
	return b, nil
}

func (c *Commands) Major(ctx context.Context, args []string) string {
	supported := strings.Join(domain.MajorSymbols, ", ")
	if len(args) == 0 {
		return fmt.Sprintf("Usage: /major BTC\nSupported: %s", supported)
	}
	symbol := strings.ToUpper(args[0])
	if !domain.IsMajor(symbol) {
		return fmt.Sprintf("Unknown symbol: %s\nSupported: %s", symbol, supported)
	}

	d, err := c.market.GetMajorDetail(ctx, symbol)
	if err != nil || d == nil {
		return fmt.Sprintf("%s: data unavailable", symbol)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s PERP\nPrice: %s\n", d.Symbol, market.FormatCardPrice(d.Price))
	fmt.Fprintf(&sb, "1h: %s  4h: %s  24h: %s\n",
		market.FormatPercent(d.Change1h), market.FormatPercent(d.Change4h), market.FormatPercent(d.Change24h))
	fmt.Fprintf(&sb, "Open interest: %s\n", market.FormatCurrency(d.OpenInterestValue))
	if d.OpenInterestValue > 0 {
		fmt.Fprintf(&sb, "OI ATH: %s (%s, %s)\n", market.FormatCurrency(d.OpenInterestATH),
			market.FormatPercent(d.OpenInterestValue/d.OpenInterestATH-1), d.ATHDate.Format("2006-01-02"))
		fmt.Fprintf(&sb, "OI ATL: %s (%s, %s)", market.FormatCurrency(d.OpenInterestATL),
			market.FormatPercent(d.OpenInterestValue/d.OpenInterestATL-1), d.ATLDate.Format("2006-01-02"))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (c *Commands) Top(ctx context.Context, args []string) string {
	n := defaultTopN
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return "Usage: /top [N]"
		}
		n = min(v, maxTopN)
	}

	snap := c.market.GetSnapshot(ctx)
	if !snap.Available() {
		return "Market data unavailable, try again shortly."
	}
	rows := market.Apply(snap.Tickers, market.Query{Limit: n})
	return fmt.Sprintf("Top %d by 24h volume\n%s", len(rows), tickerLines(rows))
}

func (c *Commands) Search(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return "Usage: /search TERM"
	}
	term := strings.Join(args, "")

	snap := c.market.GetSnapshot(ctx)
	if !snap.Available() {
		return "Market data unavailable, try again shortly."
	}
	rows := market.Apply(snap.Tickers, market.Query{Search: term, Limit: maxTopN})
	if len(rows) == 0 {
		return fmt.Sprintf("No tickers match %q", strings.ToUpper(term))
	}
	return tickerLines(rows)
}

func (c *Commands) Refresh(ctx context.Context) string {
	c.market.Invalidate(ctx)
	snap := c.market.GetSnapshot(ctx)
	if !snap.Available() {
		return "Refreshed, but market data is unavailable."
	}
	return fmt.Sprintf("Refreshed %d tickers at %s UTC", len(snap.Tickers), snap.UpdatedAt.UTC().Format("15:04:05"))
}

func tickerLines(rows []domain.TickerRecord) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s %s %s vol %s",
			r.Symbol, market.FormatPrice(r.LastPrice), market.FormatPercent(r.Change24h), market.FormatCurrency(r.QuoteVolume24h))
	}
	return strings.Join(lines, "\n")
}
