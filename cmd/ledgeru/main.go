package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yurifrl/residentledger/pkg/config"
	"github.com/yurifrl/residentledger/pkg/executors"
	"github.com/yurifrl/residentledger/pkg/fields"
	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/plan"
	"github.com/yurifrl/residentledger/pkg/reconcile"
	"github.com/yurifrl/residentledger/pkg/store"
	"github.com/yurifrl/residentledger/pkg/store/postgres"
)

var (
	cfgFile    string
	dump       bool
	sheets     []string
	period     string
	cliFilters filters
	payment    paymentFlags
)

var errImportFailed = errors.New("import finished with errors")

// set up by the root command before any subcommand runs
var (
	cfg    *config.Config
	logger *log.Logger
	db     store.Store
	exec   *executors.Executor
)

type paymentFlags struct {
	name         string
	phone        string
	date         string
	registration string
	rent         string
	utilities    string
	misc         string
}

var rootCmd = &cobra.Command{
	Use:           "ledgeru",
	Short:         "Import resident fee ledgers from spreadsheets",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "ledgeru",
			Level:           cfg.LogLevel(),
		})

		db, err = openStore(cfg.Store)
		if err != nil {
			return err
		}

		opts := reconcile.Options{
			UpdateExisting: cfg.Import.UpdateExisting,
			HeaderScanRows: cfg.Import.HeaderScanRows,
			Periods:        cfg.Periods(),
		}
		exec = executors.New(logger, db, opts, cfg.Import.MaxDisplayErrors)
		if dump {
			exec.EnableDump()
		}
		logger.Debug("configured", "store", cfg.Store.Driver, "period_basis", cfg.Ledger.PeriodBasis)
		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if db == nil {
			return nil
		}
		return db.Close()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var importCmd = &cobra.Command{
	Use:   "import [flags] <file|dir|glob>...",
	Short: "Import XLS, XLSX or CSV ledgers into the store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := plan.Expand(args...)
		if err != nil {
			return err
		}
		p := plan.FromFiles(files...)
		for i := range p.Workbooks {
			p.Workbooks[i].Sheets = sheets
		}
		summaries, err := exec.Apply(cmd.Context(), p)
		if err != nil {
			return err
		}
		return checkSummaries(summaries)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <plan_file>",
	Short: "Preview a YAML plan of workbooks (dry-run)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Plan preview for %s\n", args[0])
		p.Print(os.Stdout)
		fmt.Println()
		_, err = exec.Plan(cmd.Context(), p)
		return err
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <plan_file>",
	Short: "Import every workbook of a YAML plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}
		summaries, err := exec.Apply(cmd.Context(), p)
		if err != nil {
			return err
		}
		return checkSummaries(summaries)
	},
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Export ledger aggregates as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return exec.Ledger(cmd.Context(), period, cliFilters.toFilterFunc())
	},
}

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Record a manual payment for a resident",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := payment.toPayment()
		if err != nil {
			return err
		}
		_, err = exec.Pay(cmd.Context(), payment.name, payment.phone, p)
		return err
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the postgres schema",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		pg, ok := db.(*postgres.Store)
		if !ok {
			return fmt.Errorf("migrate needs the postgres store, configured store is %q", cfg.Store.Driver)
		}
		if err := pg.Migrate(); err != nil {
			return err
		}
		logger.Info("schema up to date")
		return nil
	},
}

func (f paymentFlags) toPayment() (reconcile.Payment, error) {
	var p reconcile.Payment
	if f.name == "" {
		return p, errors.New("--name is required")
	}
	if f.date != "" {
		d, err := time.Parse("2006-01-02", f.date)
		if err != nil {
			return p, fmt.Errorf("invalid --date %q: %w", f.date, err)
		}
		p.Date = d
	}

	amounts := []struct {
		flag string
		raw  string
		dst  *decimal.Decimal
	}{
		{"registration", f.registration, &p.Registration},
		{"rent", f.rent, &p.Rent},
		{"utilities", f.utilities, &p.Utilities},
		{"misc", f.misc, &p.Misc},
	}
	total := decimal.Zero
	for _, a := range amounts {
		res, err := fields.ParseAmount(a.raw)
		if err != nil {
			return p, fmt.Errorf("invalid --%s: %w", a.flag, err)
		}
		if res.Value.IsNegative() {
			return p, fmt.Errorf("--%s must not be negative", a.flag)
		}
		*a.dst = res.Value
		total = total.Add(res.Value)
	}
	if total.IsZero() {
		return p, errors.New("payment amount is zero")
	}
	return p, nil
}

func checkSummaries(summaries []*models.Summary) error {
	for _, s := range summaries {
		if !s.Success {
			return errImportFailed
		}
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("store", "file", "Store driver (memory, file, postgres)")
	rootCmd.PersistentFlags().String("store-path", "ledger.json", "Snapshot file for the file store")
	rootCmd.PersistentFlags().String("dsn", "", "Postgres connection string")
	rootCmd.PersistentFlags().Bool("update-existing", true, "Fill blank fields of matched residents")
	rootCmd.PersistentFlags().String("period-basis", "import", "Billing period from the import date or the receipt date (import, receipt)")
	rootCmd.PersistentFlags().BoolVar(&dump, "dump", false, "Pretty-print reports and summaries")

	importCmd.Flags().StringSliceVar(&sheets, "sheet", nil, "Only import these sheets (repeatable)")

	ledgerCmd.Flags().StringVar(&period, "period", "", "Billing period, e.g. 2026-27 (default all)")
	ledgerCmd.Flags().StringVar(&cliFilters.status, "status", "", "Filter by status (unpaid, partially_paid, paid)")
	ledgerCmd.Flags().StringVar(&cliFilters.name, "name", "", "Filter by resident name (case insensitive)")
	ledgerCmd.Flags().StringVar(&cliFilters.zone, "zone", "", "Filter by zone")
	ledgerCmd.Flags().Float64Var(&cliFilters.minPending, "min-pending", 0, "Minimum pending amount")

	payCmd.Flags().StringVar(&payment.name, "name", "", "Resident name")
	payCmd.Flags().StringVar(&payment.phone, "phone", "", "Resident phone")
	payCmd.Flags().StringVar(&payment.date, "date", "", "Payment date YYYY-MM-DD (default today)")
	payCmd.Flags().StringVar(&payment.registration, "registration", "", "Registration fee")
	payCmd.Flags().StringVar(&payment.rent, "rent", "", "Rent")
	payCmd.Flags().StringVar(&payment.utilities, "utilities", "", "Utilities")
	payCmd.Flags().StringVar(&payment.misc, "misc", "", "Miscellaneous")

	rootCmd.AddCommand(importCmd, planCmd, applyCmd, ledgerCmd, payCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
