package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"TrendScope/internal/model"
	"TrendScope/internal/notifier"
)

// Analyzer runs one analysis request; *collector.Collector implements it.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string, period model.Period) (*model.Analysis, error)
}

// Sender delivers report messages; *notifier.TelegramNotifier implements it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

const helpText = "Available commands:\n" +
	"• /analyze SYMBOL [PERIOD] - analyse one symbol (period: 1mo 3mo 6mo 1y 2y 5y 10y ytd max)\n" +
	"• /report - analyse the configured symbol now\n" +
	"• /help - show this message"

// Scheduler manages the report cron task and the bot commands.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer Analyzer
	Notifier Sender
	Symbol   string
	Period   model.Period
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler reporting on one configured symbol.
func NewScheduler(ctx context.Context, analyzer Analyzer, sender Sender, symbol string, period model.Period) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: analyzer,
		Notifier: sender,
		Symbol:   symbol,
		Period:   period,
		Ctx:      ctx,
	}
}

// RegisterAll registers the periodic report task.
func (s *Scheduler) RegisterAll(reportCron string) error {
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running report to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunReportNow executes the report task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunReportNow() {
	s.reportTask()
}

func (s *Scheduler) reportTask() {
	log.Printf("[INFO] running report task for %s (%s)", s.Symbol, s.Period)
	s.trySend(s.analyze(s.Ctx, s.Symbol, s.Period))
}

// analyze returns the formatted report or a user-safe error message.
func (s *Scheduler) analyze(ctx context.Context, symbol string, period model.Period) string {
	a, err := s.Analyzer.Analyze(ctx, symbol, period)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", symbol, err)
		return notifier.FormatError(symbol, err)
	}
	return notifier.FormatAnalysis(a)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Group chats address commands as /analyze@BotName.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	switch name {
	case "/analyze":
		if len(fields) < 2 || len(fields) > 3 {
			return "Usage: /analyze SYMBOL [PERIOD]"
		}
		period := model.DefaultPeriod
		if len(fields) == 3 {
			p, err := model.ParsePeriod(fields[2])
			if err != nil {
				return notifier.FormatError(fields[1], err)
			}
			period = p
		}
		return s.analyze(ctx, fields[1], period)
	case "/report":
		return s.analyze(ctx, s.Symbol, s.Period)
	default:
		return helpText
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Printf("[WARN] no notifier configured, dropping report:\n%s", text)
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
