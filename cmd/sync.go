package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"rinksync/core/calendar"
	"rinksync/core/config"
	"rinksync/core/feed"
	"rinksync/core/logger"
	"rinksync/core/reconcile"
	"rinksync/feature/schedule"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	dryRunSync bool
	yesConfirm bool
)

// syncCmd performs a single reconciliation pass from the command line.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the source feed against the target calendar once",
	Long: `Run one reconciliation pass: load the schedule feed, list the managed
calendar window, plan the required mutations, and apply them.

The plan is always computed and reported. Mutations only run after
confirmation, so a plain invocation doubles as a safe preview.

Examples:
  # Plan and apply (with interactive confirmation)
  rinksync sync

  # Report only, never mutate
  rinksync sync --dry-run

  # Apply with auto-confirm (non-interactive)
  rinksync sync --yes`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm calendar mutations (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting reconciliation pass")

	// Connect to the target calendar
	cal, err := calendar.NewClient(ctx, cfg.Calendar, cfg.Sync.TitlePrefix)
	if err != nil {
		return fmt.Errorf("failed to connect to calendar: %w", err)
	}

	// Load the source feed. A feed failure aborts here, before any
	// calendar call, so a broken feed can never empty the calendar.
	sources, _, err := feed.NewClient(cfg.Feed, l).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load feed: %w", err)
	}

	from, to := cfg.Sync.Window(time.Now())
	targets, err := cal.ListWindow(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to list calendar window: %w", err)
	}

	// Keep only sources inside the listing window, matching what the
	// calendar query could have returned.
	kept := schedule.FilterWindow(sources, from, to)

	detector := reconcile.Detector{
		Prefix:    cfg.Sync.TitlePrefix,
		Tolerance: cfg.Sync.Tolerance(),
	}
	engine := reconcile.NewEngine(reconcile.Scheme(cfg.Sync.IdentityScheme), detector, l)

	// Step 1: Plan (always runs)
	l.Info("Planning reconciliation...",
		zap.Int("sources", len(kept)),
		zap.Int("targets", len(targets)),
		zap.Time("window_start", from),
		zap.Time("window_end", to),
	)
	plan := engine.Plan(kept, targets)

	// Step 2: Print report
	printSyncReport(l, plan)

	// Step 3: Nothing to do is the normal steady state
	if plan.Result.Mutations() == 0 {
		l.Info("Calendar already in sync. No changes required.")
		return nil
	}

	// Step 4: Apply (if confirmed)
	if dryRunSync {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	confirmed := confirmCalendarMutations()
	if !confirmed {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	opts := reconcile.Options{
		Confirmed: true,
		Delay:     cfg.Sync.MutationDelay(),
	}

	l.Info("Applying actions...")
	result, err := reconcile.Apply(ctx, cal, plan, opts, l)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	l.Info("Successfully executed actions",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("migrated", result.Migrated),
		zap.Int("removed", result.Removed),
		zap.Int("failed", result.Failed),
	)

	return nil
}

// printSyncReport prints a formatted reconciliation report using logger.
func printSyncReport(l *zap.Logger, plan *reconcile.Plan) {
	r := plan.Result

	l.Info("Reconciliation report",
		zap.Int("created", r.Created),
		zap.Int("updated", r.Updated),
		zap.Int("migrated", r.Migrated),
		zap.Int("unchanged", r.Unchanged),
		zap.Int("removed", r.Removed),
		zap.Int("source_collisions", r.SourceCollisions),
		zap.Int("duplicate_targets", r.DuplicateTargets),
	)

	if len(plan.Actions) > 0 {
		l.Info("Planned actions", zap.Int("total_actions", len(plan.Actions)))

		// Show sample of actions (max 5 for logger)
		maxShow := 5
		if len(plan.Actions) < maxShow {
			maxShow = len(plan.Actions)
		}
		for i := 0; i < maxShow; i++ {
			action := plan.Actions[i]
			l.Info("Sample action",
				zap.String("type", string(action.Type)),
				zap.String("identity", action.Identity),
				zap.String("title", action.Desired.Title),
				zap.String("reason", action.Reason),
			)
		}
		if len(plan.Actions) > maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
		}
	}
}

// confirmCalendarMutations prompts the user for confirmation or uses --yes flag.
func confirmCalendarMutations() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm calendar mutations: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
