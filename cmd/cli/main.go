package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/StageCue/internal/config"
	"github.com/himanishpuri/StageCue/pkg/logger"
	"github.com/himanishpuri/StageCue/pkg/stagecue"
)

// globals holds the flags shared by every command.
type globals struct {
	cfg        *config.Config
	dbPath     string
	tempDir    string
	sampleRate int
	timeout    time.Duration
	verbose    bool
}

// createService creates a new StageCue service with configured options
func (g *globals) createService() (stagecue.Service, error) {
	return stagecue.NewService(
		stagecue.WithDBPath(g.dbPath),
		stagecue.WithTempDir(g.tempDir),
		stagecue.WithSampleRate(g.sampleRate),
		stagecue.WithMeterConfig(g.cfg.MeterConfig()),
		stagecue.WithLogger(logger.GetLogger()),
	)
}

func (g *globals) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), g.timeout)
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	g := &globals{cfg: cfg}

	root := &cobra.Command{
		Use:   "stagecue",
		Short: "Rehearse lines and delivery from the terminal",
		Long: `StageCue helps actors learn a script.

Import a script, recite it to check every word, and record a take to have
its delivery scored against what the character wants.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.verbose {
				logger.SetLevel(logger.DEBUG)
			}
		},
	}

	root.PersistentFlags().StringVar(&g.dbPath, "db", cfg.DBPath, "Path to the SQLite database (env: STAGECUE_DB_PATH)")
	root.PersistentFlags().StringVar(&g.tempDir, "temp", cfg.TempDir, "Directory for temporary audio conversion files (env: STAGECUE_TEMP_DIR)")
	root.PersistentFlags().IntVar(&g.sampleRate, "rate", cfg.SampleRate, "Sample rate recordings are converted to")
	root.PersistentFlags().DurationVar(&g.timeout, "timeout", 2*time.Minute, "Operation timeout")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newImportCmd(g),
		newSamplesCmd(g),
		newListCmd(g),
		newShowCmd(g),
		newDeleteCmd(g),
		newEditBeatCmd(g),
		newReciteCmd(g),
		newPerformCmd(g),
		newGuideCmd(g),
		newPresetsCmd(g),
		newTakesCmd(g),
	)
	return root
}

func printBanner() {
	banner := `
 ____  _                   ____
/ ___|| |_ __ _  __ _  ___/ ___|_   _  ___
\___ \| __/ _` + "`" + ` |/ _` + "`" + ` |/ _ \ |   | | | |/ _ \
 ___) | || (_| | (_| |  __/ |___| |_| |  __/
|____/ \__\__,_|\__, |\___|\____|\__,_|\___|
                |___/
           Rehearsal CLI Tool
`
	fmt.Fprintln(os.Stderr, banner)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(cfg.Logger())
	log := logger.GetLogger()

	if len(os.Args) < 2 {
		printBanner()
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\n❌ %v\n", err)
		log.Errorf("Command failed: %v", err)
		os.Exit(1)
	}
}
