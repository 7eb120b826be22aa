package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"TrendScope/internal/collector"
	"TrendScope/internal/config"
	"TrendScope/internal/indicator"
	"TrendScope/internal/model"
	"TrendScope/internal/notifier"
	"TrendScope/internal/recorder"
	"TrendScope/internal/report"
	"TrendScope/internal/scheduler"
	"TrendScope/internal/server"
	"TrendScope/internal/strategy"
)

// Version is set at build time with -ldflags "-X TrendScope/internal/cli.Version=...".
var Version = "dev"

const defaultConfigPath = "configs/config.yaml"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:           "trendscope",
		Short:         "TrendScope - technical indicators and trend labels for one ticker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultPath := defaultConfigPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "Configuration file path")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation: %w", err)
		}
		return cfg, nil
	}

	rootCmd.AddCommand(newAnalyzeCmd(loadConfig))
	rootCmd.AddCommand(newServeCmd(loadConfig))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

type configLoader func() (*config.Config, error)

// NewFetcher builds the configured series source.
func NewFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case "financego":
		return collector.NewFinanceGoFetcher()
	case "barsapi":
		return collector.NewBarsAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case "mock":
		return &collector.MockFetcher{Price: 100}
	default:
		return collector.NewYahooFetcher(cfg.DataSource.BaseURL, cfg.Proxy, cfg.DataSource.RequestsPerSecond)
	}
}

func newAnalyzeCmd(load configLoader) *cobra.Command {
	var periodFlag, policyFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Compute indicators for a symbol and print the summary",
		Long: `Fetch the daily history of SYMBOL, compute SMA, RSI, MACD, Bollinger,
Stochastic and ATR indicators and print the latest values with the trend verdict.
Example: trendscope analyze AAPL --period 2y`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			period := cfg.Period()
			if periodFlag != "" {
				if period, err = model.ParsePeriod(periodFlag); err != nil {
					return err
				}
			}
			policy := cfg.Policy()
			if policyFlag != "" {
				if policy, err = strategy.ParsePolicy(policyFlag); err != nil {
					return err
				}
			}

			col := collector.NewCollector(NewFetcher(cfg), indicator.NewPipeline(policy), nil)
			a, err := col.Analyze(cmd.Context(), args[0], period)
			if err != nil {
				return fmt.Errorf("%s (%w)", report.UserMessage(err), err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), a)
			}
			return writeSummary(cmd.OutOrStdout(), a)
		},
	}

	cmd.Flags().StringVar(&periodFlag, "period", "", "Lookback period: 1mo 3mo 6mo 1y 2y 5y 10y ytd max (config default if empty)")
	cmd.Flags().StringVar(&policyFlag, "policy", "", "Trend policy: momentum or ma_cross (config default if empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary and chart description as JSON")
	return cmd
}

func writeJSON(w io.Writer, a *model.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Summary *model.Summary `json:"summary"`
		Chart   *report.Chart  `json:"chart"`
	}{a.Summary, report.BuildChart(a.Symbol, a.Series)})
}

func writeSummary(w io.Writer, a *model.Analysis) error {
	s := a.Summary
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Symbol\t%s\n", s.Symbol)
	fmt.Fprintf(tw, "Date\t%s\n", s.Date.Format("2006-01-02"))
	fmt.Fprintf(tw, "Source\t%s (%s, %d rows)\n", a.Source, a.Period, len(a.Series))
	fmt.Fprintf(tw, "Current price\t%.2f\n", s.CurrentPrice)
	fmt.Fprintf(tw, "Price change\t%s\n", s.PriceChange.StringFixed(2))
	fmt.Fprintf(tw, "Percent change\t%s%%\n", s.PercentChange.StringFixed(2))
	for _, col := range model.Columns {
		fmt.Fprintf(tw, "%s\t%s\n", col, report.FormatIndicator(s.Indicator(col)))
	}
	fmt.Fprintf(tw, "Prediction\t%s\n", s.Prediction)
	for _, c := range s.Signal.Conditions {
		fmt.Fprintf(tw, "  %s\t%t\t%s\n", c.Name, c.Met, c.Commentary)
	}
	return tw.Flush()
}

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the report scheduler and the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log.Printf("[INFO] TrendScope %s starting...", Version)
	gin.SetMode(gin.ReleaseMode)

	fetcher := NewFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	var metrics *recorder.PrometheusRecorder
	if cfg.Server.MetricsEnabled {
		metrics = recorder.NewPrometheusRecorder()
		rec = metrics
	}
	defer rec.Close()

	col := collector.NewCollector(fetcher, indicator.NewPipeline(cfg.Policy()), rec)

	var tn *notifier.TelegramNotifier
	var sender scheduler.Sender
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	} else {
		log.Println("[WARN] telegram not configured, scheduled reports are only logged")
	}

	g, ctx := errgroup.WithContext(ctx)

	sched := scheduler.NewScheduler(ctx, col, sender, cfg.DataSource.Symbol, cfg.Period())
	if err := sched.RegisterAll(cfg.Schedule.ReportCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	g.Go(func() error {
		<-ctx.Done()
		sched.Stop()
		return nil
	})

	if tn != nil {
		g.Go(func() error {
			log.Println("[INFO] Telegram polling started")
			tn.StartPolling(ctx, sched.HandleCommand)
			return nil
		})
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing report task now")
		g.Go(func() error {
			sched.RunReportNow()
			return nil
		})
	}

	var metricsHandler http.Handler
	if metrics != nil {
		metricsHandler = metrics.Handler()
	}
	srv := server.New(cfg.Server.Addr, col, metricsHandler)
	g.Go(func() error { return srv.Run(ctx) })

	log.Println("[INFO] TrendScope is running. Press Ctrl+C to stop.")
	err := g.Wait()
	log.Println("[INFO] TrendScope stopped")
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "TrendScope %s\n", Version)
		},
	}
}
