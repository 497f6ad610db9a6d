package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"vlx/internal/bootstrap"
	entrancedto "vlx/internal/modules/entrance/dto"
	settingsdto "vlx/internal/modules/settings/dto"
	workplacedto "vlx/internal/modules/workplace/dto"
	"vlx/internal/platform/config"
	"vlx/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "vlx",
		Short:         "Virtual lab sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory")

	root.AddCommand(newLabCmd(&dataDir))
	root.AddCommand(newEntranceCmd(&dataDir))
	root.AddCommand(newWorkplaceCmd(&dataDir))
	root.AddCommand(newResultsCmd(&dataDir))
	root.AddCommand(newSettingsCmd(&dataDir))
	root.AddCommand(newServeCmd(&dataDir))
	root.AddCommand(newTUICmd(&dataDir))
	return root
}

func loadApp(dataDir string, logOut io.Writer) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg, logging.NewLogger(cfg.LogLevel, logOut))
	if err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

// withApp runs fn against a freshly wired app and releases it afterwards.
func withApp(dataDir string, fn func(app *bootstrap.App) error) error {
	app, _, err := loadApp(dataDir, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

// ─── lab ─────────────────────────────────────────────────────────────────────

func newLabCmd(dataDir *string) *cobra.Command {
	lab := &cobra.Command{Use: "lab", Short: "Browse the lab catalog"}

	var branch string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List labs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				labs, err := app.CatalogCLI.ListLabs(context.Background(), branch)
				if err != nil {
					return err
				}
				if len(labs) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no labs")
					return nil
				}
				for _, l := range labs {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", l.ID, l.Branch, l.Title, l.Difficulty)
				}
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&branch, "branch", "", "filter by branch")

	showCmd := &cobra.Command{
		Use:   "show <lab-id>",
		Short: "Show a lab with its tools and parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				d, err := app.CatalogCLI.GetLab(context.Background(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s (%s)\nbranch=%s difficulty=%d\n", d.Title, d.ID, d.Branch, d.Difficulty)
				if d.Summary != "" {
					_, _ = fmt.Fprintln(out, d.Summary)
				}
				if len(d.Prerequisites) > 0 {
					_, _ = fmt.Fprintf(out, "prerequisites: %s\n", strings.Join(d.Prerequisites, ", "))
				}
				for _, t := range d.Tools {
					_, _ = fmt.Fprintf(out, "tool\t%s\t%s\n", t.ID, t.Name)
				}
				for i, p := range d.Parameters {
					_, _ = fmt.Fprintf(out, "param\t%d\t%s\t[%g, %g] default %g %s\n", i, p.Name, p.Min, p.Max, p.Default, p.Unit)
				}
				return nil
			})
		},
	}

	lab.AddCommand(listCmd, showCmd)
	return lab
}

// ─── entrance ────────────────────────────────────────────────────────────────

func printConfig(w io.Writer, c entrancedto.ConfigOutput) {
	mode := c.Mode
	if mode == "" {
		mode = "unset"
	}
	_, _ = fmt.Fprintf(w, "lab=%s mode=%s difficulty=%d tools=[%s] skip_tutorial=%t sustainability=%t\n",
		c.LabID, mode, c.Difficulty, strings.Join(c.Tools, ","), c.SkipTutorial, c.Sustainability)
}

func newEntranceCmd(dataDir *string) *cobra.Command {
	entrance := &cobra.Command{Use: "entrance", Short: "Configure a lab session before entering"}

	entrance.AddCommand(&cobra.Command{
		Use:   "show <lab-id>",
		Short: "Show the saved session configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				c, err := app.EntranceCLI.Show(context.Background(), args[0])
				if err != nil {
					return err
				}
				printConfig(cmd.OutOrStdout(), c)
				return nil
			})
		},
	})

	var (
		mode           string
		difficulty     int
		skipTutorial   bool
		sustainability bool
		toggle         []string
	)
	setCmd := &cobra.Command{
		Use:   "set <lab-id>",
		Short: "Change configuration fields; each change is saved immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var modeP *string
			var difficultyP *int
			var skipP, sustainP *bool
			if flags.Changed("mode") {
				modeP = &mode
			}
			if flags.Changed("difficulty") {
				difficultyP = &difficulty
			}
			if flags.Changed("skip-tutorial") {
				skipP = &skipTutorial
			}
			if flags.Changed("sustainability") {
				sustainP = &sustainability
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				c, err := app.EntranceCLI.Set(context.Background(), args[0], modeP, difficultyP, skipP, sustainP, toggle)
				if err != nil {
					return err
				}
				printConfig(cmd.OutOrStdout(), c)
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&mode, "mode", "", "solo|team")
	setCmd.Flags().IntVar(&difficulty, "difficulty", 0, "0 easy, 1 medium, 2 hard")
	setCmd.Flags().BoolVar(&skipTutorial, "skip-tutorial", false, "skip the tutorial")
	setCmd.Flags().BoolVar(&sustainability, "sustainability", false, "enable sustainability mode")
	setCmd.Flags().StringSliceVar(&toggle, "toggle-tool", nil, "tool ids to toggle (at most 3 selected)")

	var (
		enterMode       string
		enterDifficulty int
		enterTools      []string
		enterSkip       bool
		enterSustain    bool
	)
	enterCmd := &cobra.Command{
		Use:   "enter <lab-id>",
		Short: "Validate and save a configuration to start the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				ctx := context.Background()
				input := entrancedto.EnterInput{
					LabID:          args[0],
					Mode:           enterMode,
					Difficulty:     enterDifficulty,
					Tools:          enterTools,
					SkipTutorial:   enterSkip,
					Sustainability: enterSustain,
				}
				// Without flags the saved configuration is entered as-is.
				if !cmd.Flags().Changed("mode") && !cmd.Flags().Changed("tools") {
					saved, err := app.EntranceCLI.Show(ctx, args[0])
					if err != nil {
						return err
					}
					input = entrancedto.EnterInput(saved)
				}
				c, err := app.EntranceCLI.Enter(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "entered ")
				printConfig(cmd.OutOrStdout(), c)
				return nil
			})
		},
	}
	enterCmd.Flags().StringVar(&enterMode, "mode", "", "solo|team")
	enterCmd.Flags().IntVar(&enterDifficulty, "difficulty", 0, "0 easy, 1 medium, 2 hard")
	enterCmd.Flags().StringSliceVar(&enterTools, "tools", nil, "tool ids (first 3 are kept)")
	enterCmd.Flags().BoolVar(&enterSkip, "skip-tutorial", false, "skip the tutorial")
	enterCmd.Flags().BoolVar(&enterSustain, "sustainability", false, "enable sustainability mode")

	entrance.AddCommand(setCmd, enterCmd)
	return entrance
}

// ─── workplace ───────────────────────────────────────────────────────────────

func printState(w io.Writer, s workplacedto.StateOutput) {
	_, _ = fmt.Fprintf(w, "%s (%s) phase=%s progress=%d%% paused=%t sustainability=%t\n",
		s.LabTitle, s.LabID, s.Phase, s.Progress, s.Paused, s.SustainabilityEnabled)
	_, _ = fmt.Fprintf(w, "tools: [%s]\n", strings.Join(s.SelectedTools, ","))
	for i, p := range s.Parameters {
		_, _ = fmt.Fprintf(w, "param\t%d\t%s\t%g %s\t[%g, %g]\n", i, p.Name, p.Value, p.Unit, p.Min, p.Max)
	}
	if s.Ready {
		_, _ = fmt.Fprintln(w, "ready to complete")
	}
}

func workplaceStateCmd(dataDir *string, use, short string, args cobra.PositionalArgs, fn func(ctx context.Context, app *bootstrap.App, args []string) (workplacedto.StateOutput, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				s, err := fn(context.Background(), app, args)
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}
}

func newWorkplaceCmd(dataDir *string) *cobra.Command {
	workplace := &cobra.Command{Use: "workplace", Short: "Run an entered lab session"}

	workplace.AddCommand(
		workplaceStateCmd(dataDir, "show <lab-id>", "Open the workplace and show its state", cobra.ExactArgs(1),
			func(ctx context.Context, app *bootstrap.App, args []string) (workplacedto.StateOutput, error) {
				return app.WorkplaceCLI.Show(ctx, args[0])
			}),
		workplaceStateCmd(dataDir, "tool <lab-id> <tool-id>...", "Toggle tools on the bench (at most 5)", cobra.MinimumNArgs(2),
			func(ctx context.Context, app *bootstrap.App, args []string) (workplacedto.StateOutput, error) {
				return app.WorkplaceCLI.ToggleTools(ctx, args[0], args[1:])
			}),
		workplaceStateCmd(dataDir, "param <lab-id> <index> <value>", "Set a parameter; values are clamped to its range", cobra.ExactArgs(3),
			func(ctx context.Context, app *bootstrap.App, args []string) (workplacedto.StateOutput, error) {
				index, err := strconv.Atoi(args[1])
				if err != nil {
					return workplacedto.StateOutput{}, fmt.Errorf("invalid index %q", args[1])
				}
				value, err := strconv.ParseFloat(args[2], 64)
				if err != nil {
					return workplacedto.StateOutput{}, fmt.Errorf("invalid value %q", args[2])
				}
				return app.WorkplaceCLI.SetParameter(ctx, args[0], index, value)
			}),
		workplaceStateCmd(dataDir, "pause <lab-id>", "Pause or resume the experiment", cobra.ExactArgs(1),
			func(ctx context.Context, app *bootstrap.App, args []string) (workplacedto.StateOutput, error) {
				return app.WorkplaceCLI.TogglePause(ctx, args[0])
			}),
		workplaceStateCmd(dataDir, "reset <lab-id>", "Reset tools and parameters to their defaults", cobra.ExactArgs(1),
			func(ctx context.Context, app *bootstrap.App, args []string) (workplacedto.StateOutput, error) {
				return app.WorkplaceCLI.Reset(ctx, args[0])
			}),
	)
	var score int
	completeCmd := &cobra.Command{
		Use:   "complete <lab-id>",
		Short: "Finish the experiment and record the score (needs 80% progress)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.WorkplaceCLI.Complete(context.Background(), args[0], score)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %s score=%d result=%s at=%s\n",
					out.State.LabTitle, out.Score, out.ResultID, out.Timestamp.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
	completeCmd.Flags().IntVar(&score, "score", 100, "score to record (0-100)")

	workplace.AddCommand(completeCmd)
	return workplace
}

// ─── results ─────────────────────────────────────────────────────────────────

func newResultsCmd(dataDir *string) *cobra.Command {
	results := &cobra.Command{Use: "results", Short: "Recorded lab results (last 10)"}

	results.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded results, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				records, err := app.ResultsCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(records) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no results")
					return nil
				}
				for _, r := range records {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%s\n",
						r.Timestamp.Format("2006-01-02 15:04"), r.LabID, r.LabTitle, r.Score, r.ID)
				}
				return nil
			})
		},
	})

	results.AddCommand(&cobra.Command{
		Use:   "latest",
		Short: "Show the most recent result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				r, err := app.ResultsCLI.Latest(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s score=%d at=%s id=%s\n",
					r.LabID, r.LabTitle, r.Score, r.Timestamp.Format("2006-01-02 15:04:05"), r.ID)
				return nil
			})
		},
	})

	exportCmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Write results as markdown notes with an index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ResultsCLI.Export(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes to %s (index %s)\n",
					len(out.Notes), out.Dir, filepath.Base(out.Index))
				return nil
			})
		},
	}

	results.AddCommand(exportCmd)
	return results
}

// ─── settings ────────────────────────────────────────────────────────────────

func printSettings(w io.Writer, s settingsdto.SettingsOutput) {
	_, _ = fmt.Fprintf(w, "font_size=%d high_contrast=%t haptic_intensity=%d\n",
		s.FontSize, s.HighContrast, s.HapticIntensity)
}

func newSettingsCmd(dataDir *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Accessibility settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show accessibility settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				s, err := app.SettingsCLI.Show(context.Background())
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), s)
				return nil
			})
		},
	})

	var (
		fontSize     int
		highContrast bool
		haptic       int
	)
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update accessibility settings; out-of-range values are clamped",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input settingsdto.UpdateInput
			if cmd.Flags().Changed("font-size") {
				input.FontSize = &fontSize
			}
			if cmd.Flags().Changed("high-contrast") {
				input.HighContrast = &highContrast
			}
			if cmd.Flags().Changed("haptic") {
				input.HapticIntensity = &haptic
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				s, err := app.SettingsCLI.Set(context.Background(), input)
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}
	setCmd.Flags().IntVar(&fontSize, "font-size", 16, "font size (14-20)")
	setCmd.Flags().BoolVar(&highContrast, "high-contrast", false, "high contrast palette")
	setCmd.Flags().IntVar(&haptic, "haptic", 1, "haptic intensity (0-2)")

	settings.AddCommand(setCmd)
	return settings
}

// ─── serve / tui ─────────────────────────────────────────────────────────────

func newServeCmd(dataDir *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lab session API over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(*dataDir, os.Stderr)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if addr == "" {
				addr = cfg.HTTPAddr
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return bootstrap.Serve(ctx, addr, app)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the vlx terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.New(*dataDir)
			if err != nil {
				return err
			}
			// The terminal belongs to the UI; logs go to a file next to the database.
			logDir := filepath.Dir(cfg.DBPath)
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return err
			}
			logFile, err := os.OpenFile(filepath.Join(logDir, "vlx.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return err
			}
			defer func() { _ = logFile.Close() }()

			app, _, err := loadApp(*dataDir, logFile)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}
