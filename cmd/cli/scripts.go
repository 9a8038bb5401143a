package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/StageCue/pkg/logger"
	"github.com/himanishpuri/StageCue/pkg/models"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
)

// contextFlags binds the four character context fields to a command.
func contextFlags(cmd *cobra.Command, cc *guidance.CharacterContext) {
	cmd.Flags().StringVar(&cc.Origin, "origin", "", "Where the scene starts (e.g. Confrontation)")
	cmd.Flags().StringVar(&cc.Destination, "destination", "", "Where the character wants it to end (e.g. Dominance)")
	cmd.Flags().StringVar(&cc.Intent, "intent", "", "What the character is doing (e.g. Threaten)")
	cmd.Flags().StringVar(&cc.Motivation, "motivation", "", "Why they are doing it (e.g. Controlled power)")
}

func newImportCmd(g *globals) *cobra.Command {
	var title, text string
	var cc guidance.CharacterContext

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a script from a text or YAML file, or from --text",
		Example: `  stagecue import othello.yaml
  stagecue import --title "Villain" --text "You will leave. Now." --intent Threaten --motivation "Controlled power"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && text == "" {
				return fmt.Errorf("give a script file or --text")
			}

			svc, err := g.createService()
			if err != nil {
				return fmt.Errorf("failed to create service: %w", err)
			}
			defer svc.Close()

			ctx, cancel := g.context()
			defer cancel()

			var sc *models.Script
			if len(args) == 1 {
				sc, err = svc.ImportScriptFile(ctx, args[0])
			} else {
				sc, err = svc.ImportScript(ctx, title, text, cc)
			}
			if err != nil {
				return fmt.Errorf("failed to import script: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\n✅ Imported script!")
			fmt.Fprintf(out, "   ID:     %s\n", sc.ID)
			fmt.Fprintf(out, "   Title:  %s\n", sc.Title)
			fmt.Fprintf(out, "   Beats:  %d\n", len(sc.Beats))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "Untitled", "Script title when importing --text")
	cmd.Flags().StringVar(&text, "text", "", "Script text to import instead of a file")
	contextFlags(cmd, &cc)
	return cmd
}

func newSamplesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "Import the built-in sample monologues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.createService()
			if err != nil {
				return fmt.Errorf("failed to create service: %w", err)
			}
			defer svc.Close()

			ctx, cancel := g.context()
			defer cancel()

			scripts, err := svc.ImportSamples(ctx)
			if err != nil {
				return fmt.Errorf("failed to import samples: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✅ Imported %d sample script(s):\n\n", len(scripts))
			for i, sc := range scripts {
				fmt.Fprintf(out, "%d. %s (ID: %s, %d beats)\n", i+1, sc.Title, sc.ID, len(sc.Beats))
			}
			return nil
		},
	}
}

func newListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.createService()
			if err != nil {
				return fmt.Errorf("failed to create service: %w", err)
			}
			defer svc.Close()

			scripts, err := svc.ListScripts()
			if err != nil {
				return fmt.Errorf("failed to list scripts: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(scripts) == 0 {
				fmt.Fprintln(out, "\n📭 No scripts in database")
				return nil
			}

			fmt.Fprintf(out, "\n📚 Found %d script(s):\n\n", len(scripts))
			for i, sc := range scripts {
				fmt.Fprintf(out, "%d. \"%s\" (ID: %s)\n", i+1, sc.Title, sc.ID)
				fmt.Fprintf(out, "   Beats: %d", sc.BeatCount)
				if sc.Intent != "" || sc.Motivation != "" {
					fmt.Fprintf(out, " | %s / %s", sc.Intent, sc.Motivation)
				}
				fmt.Fprintln(out)
			}
			logger.Debugf("Listed %d scripts", len(scripts))
			return nil
		},
	}
}

func newShowCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show <script-id>",
		Short: "Show a script's beats and delivery guidance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.createService()
			if err != nil {
				return fmt.Errorf("failed to create service: %w", err)
			}
			defer svc.Close()

			sc, err := svc.GetScript(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n🎭 %s\n", sc.Title)
			if !sc.Context.IsZero() {
				printContext(out, sc.Context)
			}
			fmt.Fprintln(out)
			for _, b := range sc.Beats {
				fmt.Fprintf(out, "%2d. %s\n", b.Position+1, b.Text)
				var tags []string
				if b.Emotion != "" {
					tags = append(tags, b.Emotion)
				}
				if b.HasPause {
					tags = append(tags, "pause")
				}
				tags = append(tags, fmt.Sprintf("intensity %.0f", b.Intensity))
				fmt.Fprintf(out, "    [%s] %s\n", strings.Join(tags, ", "), b.ID)
			}
			printGuidance(out, svc.Guidance(sc.Context))
			return nil
		},
	}
}

func newDeleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <script-id>",
		Short: "Delete a script with its beats and takes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.createService()
			if err != nil {
				return fmt.Errorf("failed to create service: %w", err)
			}
			defer svc.Close()

			sc, err := svc.GetScript(args[0])
			if err != nil {
				return err
			}
			if err := svc.DeleteScript(sc.ID); err != nil {
				return fmt.Errorf("failed to delete script: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✅ Successfully deleted script:\n")
			fmt.Fprintf(out, "   ID:     %s\n", sc.ID)
			fmt.Fprintf(out, "   Title:  %s\n", sc.Title)
			return nil
		},
	}
}

func newEditBeatCmd(g *globals) *cobra.Command {
	var text, emotion string
	var pause bool
	var intensity float64

	cmd := &cobra.Command{
		Use:   "edit-beat <beat-id>",
		Short: "Change a beat's text, emotion, pause or intensity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.createService()
			if err != nil {
				return fmt.Errorf("failed to create service: %w", err)
			}
			defer svc.Close()

			beat, err := svc.GetBeat(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("text") {
				beat.Text = text
			}
			if flags.Changed("emotion") {
				beat.Emotion = emotion
			}
			if flags.Changed("pause") {
				beat.HasPause = pause
			}
			if flags.Changed("intensity") {
				beat.Intensity = intensity
			}

			updated, err := svc.UpdateBeat(*beat)
			if err != nil {
				return fmt.Errorf("failed to update beat: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\n✅ Beat updated:")
			fmt.Fprintf(out, "   %s\n", updated.Text)
			fmt.Fprintf(out, "   emotion=%q pause=%t intensity=%.1f\n", updated.Emotion, updated.HasPause, updated.Intensity)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New beat text")
	cmd.Flags().StringVar(&emotion, "emotion", "", "Calm, Angry, Fearful, Conflicted or Loving (empty clears)")
	cmd.Flags().BoolVar(&pause, "pause", false, "Mark a pause after the beat")
	cmd.Flags().Float64Var(&intensity, "intensity", 5, "Intensity from 0 to 10")
	return cmd
}

func printContext(out io.Writer, cc guidance.CharacterContext) {
	fmt.Fprintf(out, "   Origin: %s → Destination: %s\n", orDash(cc.Origin), orDash(cc.Destination))
	fmt.Fprintf(out, "   Intent: %s | Motivation: %s\n", orDash(cc.Intent), orDash(cc.Motivation))
}

func printGuidance(out io.Writer, dg guidance.DeliveryGuidance) {
	vc := dg.Characteristics
	fmt.Fprintln(out, "\n🎯 Delivery guidance:")
	for _, tip := range dg.Tips {
		fmt.Fprintf(out, "   • %s\n", tip)
	}
	fmt.Fprintln(out, "\n🎙️  Vocal characteristics:")
	fmt.Fprintf(out, "   Pitch:    %s\n", vc.PitchRange)
	fmt.Fprintf(out, "   Pace:     %s\n", vc.Pace)
	fmt.Fprintf(out, "   Emphasis: %s\n", vc.Emphasis)
	fmt.Fprintf(out, "   Pauses:   %s\n", vc.BreathPauses)
	fmt.Fprintf(out, "   Energy:   %s\n", vc.Energy)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
