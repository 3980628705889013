package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"trading-assistant/internal/dto"
	"trading-assistant/internal/repository"
	"trading-assistant/internal/service"
	"trading-assistant/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	forceSnapshot  bool
	snapshotFormat string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Run one refresh cycle and print the dashboard",
	RunE:  Snapshot,
}

func init() {
	snapshotCmd.Flags().BoolVar(&forceSnapshot, "force", false, "Ignore cached data")
	snapshotCmd.Flags().StringVarP(&snapshotFormat, "format", "f", "json", "Output format: json or text")
}

func Snapshot(cmd *cobra.Command, args []string) error {
	if snapshotFormat != "json" && snapshotFormat != "text" {
		return fmt.Errorf("unknown format %q, expected json or text", snapshotFormat)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := appDep.Close(); err != nil {
			log.Printf("Failed to close app dependency: %v", err)
		}
	}()

	if appDep.cfg.Refresh.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, appDep.cfg.Refresh.Timeout)
		defer cancel()
	}

	repo := repository.NewRepository(appDep.cfg, appDep.log, appDep.limiters)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache)
	snapshot := services.DashboardService.Refresh(ctx, forceSnapshot)

	if snapshotFormat == "text" {
		return writeSnapshotSummary(cmd.OutOrStdout(), snapshot)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(snapshot)
}

// writeSnapshotSummary prints a terminal-friendly view of one refresh.
func writeSnapshotSummary(w io.Writer, snapshot dto.DashboardSnapshot) error {
	var b []byte

	b = fmt.Appendf(b, "Updated %s, %d/%d quotes", snapshot.UpdatedAt.Format("2006-01-02 15:04:05 MST"), len(snapshot.Stocks), snapshot.Requested)
	if snapshot.Degraded {
		b = append(b, " (degraded)"...)
	}
	b = append(b, "\n\nQuotes\n"...)
	for _, s := range snapshot.Stocks {
		b = fmt.Appendf(b, "  %-6s %10.2f %s\n", s.Symbol, s.Price, utils.FormatPercentage(s.ChangePercent))
	}

	b = append(b, "\nSignals\n"...)
	if len(snapshot.Signals) == 0 {
		b = append(b, "  none\n"...)
	}
	for _, sig := range snapshot.Signals {
		b = fmt.Appendf(b, "  %-6s %s  confidence %.0f%%  target %.2f  stop %.2f  (%s)\n",
			sig.Symbol, sig.Type.String(), sig.Confidence*100, sig.TargetPrice, sig.StopLoss, sig.Timeframe)
	}

	if snapshot.Portfolio != nil {
		p := snapshot.Portfolio
		b = fmt.Appendf(b, "\nPortfolio  value %.2f  day %s  risk %.0f/100  beta %.2f\n",
			p.Portfolio.TotalValue, utils.FormatPercentage(p.Portfolio.DayChangePercent), p.Risk.RiskLevel, p.Risk.Beta)
		for _, rec := range p.Risk.Recommendations {
			b = fmt.Appendf(b, "  - %s\n", rec)
		}
	}

	b = append(b, "\nNews\n"...)
	for _, n := range snapshot.News {
		b = fmt.Appendf(b, "  [%s] %s (%s)\n", n.Sentiment, n.Title, n.Source)
	}

	_, err := w.Write(b)
	return err
}
