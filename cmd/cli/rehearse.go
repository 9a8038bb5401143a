package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/StageCue/pkg/models"
	"github.com/himanishpuri/StageCue/pkg/stagecue"
	"github.com/himanishpuri/StageCue/pkg/stagecue/align"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
	"github.com/himanishpuri/StageCue/pkg/stagecue/scoring"
)

func newReciteCmd(g *globals) *cobra.Command {
	var beatID, transcript, file string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recite <script-id>",
		Short: "Check a recited transcript word by word",
		Example: `  stagecue recite 3f2c... --text "to be or not to be"
  stagecue recite 3f2c... --beat 9a1e... --file take1.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				transcript = string(data)
			}

			svc, err := g.createService()
			if err != nil {
				return fmt.Errorf("failed to create service: %w", err)
			}
			defer svc.Close()

			ctx, cancel := g.context()
			defer cancel()

			report, err := svc.CheckRecitation(ctx, args[0], beatID, transcript)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printRecitation(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVar(&beatID, "beat", "", "Check one beat instead of the whole script")
	cmd.Flags().StringVar(&transcript, "text", "", "What was said")
	cmd.Flags().StringVar(&file, "file", "", "Read what was said from a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	return cmd
}

func printRecitation(out io.Writer, r *stagecue.RecitationReport) {
	s := r.Summary
	fmt.Fprintf(out, "\n📝 %.0f%% accurate (%d correct, %d substituted, %d missing, %d extra)\n\n",
		s.Accuracy*100, s.Correct, s.Substituted, s.Missing, s.Extra)

	for _, w := range r.Words {
		switch w.Kind {
		case align.Correct.String():
			fmt.Fprintf(out, "   ✅ %s\n", w.Expected)
		case align.Substitution.String():
			note := ""
			if w.SoundsAlike {
				note = " (sounds alike)"
			}
			fmt.Fprintf(out, "   🔁 %s → %s%s\n", w.Expected, w.Actual, note)
		case align.Missing.String():
			fmt.Fprintf(out, "   ❌ %s (missing)\n", w.Expected)
		case align.Extra.String():
			fmt.Fprintf(out, "   ➕ %s (extra)\n", w.Actual)
		}
	}
	if r.TakeID != "" {
		fmt.Fprintf(out, "\n   Take: %s\n", r.TakeID)
	}
}

func newPerformCmd(g *globals) *cobra.Command {
	var req stagecue.PerformanceRequest
	var metricsFile string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "perform [audio-file]",
		Short: "Score the delivery of a recorded take",
		Long: `Measure a recording's loudness, variation and pauses and score them
against the character context.

WAV files are read directly; other formats need ffmpeg on PATH. Use
--metrics to score pre-measured values from a JSON file instead.`,
		Example: `  stagecue perform take.wav --script 3f2c...
  stagecue perform take.m4a --intent Plead --motivation Desperation`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (metricsFile == "") {
				return fmt.Errorf("give either an audio file or --metrics")
			}

			svc, err := g.createService()
			if err != nil {
				return fmt.Errorf("failed to create service: %w", err)
			}
			defer svc.Close()

			ctx, cancel := g.context()
			defer cancel()

			var report *stagecue.PerformanceReport
			if metricsFile != "" {
				var m scoring.PerformanceMetrics
				if err := readJSON(metricsFile, &m); err != nil {
					return err
				}
				report, err = svc.ScorePerformance(ctx, req, m)
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "🎵 Analyzing recording...")
				report, err = svc.PerformRecording(ctx, req, args[0])
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printPerformance(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.ScriptID, "script", "", "Script the take belongs to (its context is used when none is given)")
	cmd.Flags().StringVar(&req.BeatID, "beat", "", "Beat the take belongs to")
	cmd.Flags().StringVar(&metricsFile, "metrics", "", "JSON file of measured performance metrics")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	contextFlags(cmd, &req.Context)
	return cmd
}

func printPerformance(out io.Writer, r *stagecue.PerformanceReport) {
	res := r.Result
	fmt.Fprintf(out, "\n⭐ Score: %.1f / %.1f\n", res.Score, scoring.MaxScore)
	fmt.Fprintf(out, "   %s\n", res.Summary)

	m := r.Metrics
	fmt.Fprintf(out, "\n📊 Avg level %.2f | Peak %.2f | Variation %.2f | Silence %.0f%% | %.1fs\n",
		m.AverageAmplitude, m.PeakAmplitude, m.AmplitudeVariation, m.SilenceRatio*100, m.DurationSec)

	fmt.Fprintln(out, "\n💪 Strengths:")
	for _, s := range res.Strengths {
		fmt.Fprintf(out, "   • %s\n", s)
	}
	fmt.Fprintln(out, "\n🔧 To work on:")
	for _, s := range res.Improvements {
		fmt.Fprintf(out, "   • %s\n", s)
	}
	fmt.Fprintf(out, "\n💡 Tip: %s\n", res.PracticalTip)
	if r.TakeID != "" {
		fmt.Fprintf(out, "\n   Take: %s\n", r.TakeID)
	}
}

func newGuideCmd(g *globals) *cobra.Command {
	var cc guidance.CharacterContext
	var scenario string

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Show delivery guidance for a character context",
		Example: `  stagecue guide --intent Persuade --motivation "Urgent need"
  stagecue guide --scenario "Desperate plea"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scenario != "" {
				p, ok := guidance.Scenario(scenario)
				if !ok {
					return fmt.Errorf("unknown scenario %q (see 'stagecue presets')", scenario)
				}
				cc = p.Context
			}
			out := cmd.OutOrStdout()
			printContext(out, cc)
			printGuidance(out, guidance.Derive(cc))
			return nil
		},
	}
	cmd.Flags().StringVar(&scenario, "scenario", "", "Use a preset scenario")
	contextFlags(cmd, &cc)
	return cmd
}

func newPresetsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List preset context values and scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := guidance.DefaultPresets()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Origins:      %s\n", strings.Join(p.Origins, ", "))
			fmt.Fprintf(out, "Destinations: %s\n", strings.Join(p.Destinations, ", "))
			fmt.Fprintf(out, "Intents:      %s\n", strings.Join(p.Intents, ", "))
			fmt.Fprintf(out, "Motivations:  %s\n", strings.Join(p.Motivations, ", "))
			fmt.Fprintln(out, "\nScenarios:")
			for _, s := range p.Scenarios {
				fmt.Fprintf(out, "  %-22s %s / %s\n", s.Label, s.Context.Intent, s.Context.Motivation)
			}
			return nil
		},
	}
}

func newTakesCmd(g *globals) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "takes <script-id>",
		Short: "List recent takes of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.createService()
			if err != nil {
				return fmt.Errorf("failed to create service: %w", err)
			}
			defer svc.Close()

			if _, err := svc.GetScript(args[0]); err != nil {
				return err
			}
			takes, err := svc.ListTakes(args[0], limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(takes) == 0 {
				fmt.Fprintln(out, "\n📭 No takes yet")
				return nil
			}
			fmt.Fprintf(out, "\n🎬 %d take(s):\n\n", len(takes))
			for i, t := range takes {
				when := t.CreatedAt.Local().Format("2006-01-02 15:04")
				switch t.Kind {
				case models.KindMemorization:
					fmt.Fprintf(out, "%d. %s  recitation  %.0f%%  %s\n", i+1, when, t.Accuracy*100, t.Summary)
				default:
					fmt.Fprintf(out, "%d. %s  performance %.1f  %s\n", i+1, when, t.Score, t.Summary)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum takes to show (0 for all)")
	return cmd
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
