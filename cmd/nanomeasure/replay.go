package main

import (
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/spf13/cobra"

	"nano-analyzer/internal/app"
	"nano-analyzer/internal/image"
	"nano-analyzer/internal/render"
	"nano-analyzer/internal/script"
)

func newReplayCmd(e *env) *cobra.Command {
	var outputText string
	var outputPNG string
	var outputPDF string

	cmd := &cobra.Command{
		Use:   "replay <session.yaml>",
		Short: "Replay a recorded session and print the measurement tree",
		Long: `Replay a YAML session script against its micrograph and print the
flattened measurement tree.

The script names the image (or a blank width x height), the viewport the
pointer coordinates refer to, and an ordered list of steps: tool, mode,
length, units, undo, pointer and drag.`,
		Example: `  # Print the measurement tree
  nanomeasure replay session.yaml

  # Also write the annotated image as PNG and PDF
  nanomeasure replay session.yaml --png annotated.png --pdf annotated.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReplay(cmd.OutOrStdout(), e, args[0], outputText, outputPNG, outputPDF)
		},
	}

	cmd.Flags().StringVarP(&outputText, "output", "o", "", "Write the measurement tree to this file instead of stdout")
	cmd.Flags().StringVar(&outputPNG, "png", "", "Write the annotated image as PNG")
	cmd.Flags().StringVar(&outputPDF, "pdf", "", "Write the annotated image as PDF")

	return cmd
}

func executeReplay(stdout io.Writer, e *env, path, outputText, outputPNG, outputPDF string) error {
	s, err := script.LoadFile(path)
	if err != nil {
		return err
	}

	state := app.NewState(e.log)
	if err := state.ApplySettings(e.settings); err != nil {
		return err
	}
	state.On(app.EventCalibrationRejected, func(data interface{}) {
		e.log.Warn().Interface("reason", data).Msg("calibration step rejected")
	})

	res, err := s.Run(state)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}
	e.log.Info().
		Str("script", path).
		Int("steps", res.Steps).
		Int("changed", res.Changed).
		Int("ignored", res.Ignored).
		Int("annotations", len(state.Objects())).
		Msg("replay complete")

	text := state.ExportText()
	if outputText == "" {
		if _, err := io.WriteString(stdout, text); err != nil {
			return err
		}
	} else if err := writeFile(outputText, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	}); err != nil {
		return err
	}

	if outputPNG == "" && outputPDF == "" {
		return nil
	}

	style, err := e.settings.Render.Style()
	if err != nil {
		return err
	}
	layer, scene, err := state.Snapshot()
	if err != nil {
		return err
	}

	if outputPNG != "" {
		if err := writeFile(outputPNG, func(w io.Writer) error {
			return png.Encode(w, render.Composite(layer.Image, scene, style))
		}); err != nil {
			return err
		}
		e.log.Info().Str("path", outputPNG).Msg("annotated PNG written")
	}
	if outputPDF != "" {
		if err := writeFile(outputPDF, func(w io.Writer) error {
			return render.WritePDF(w, layer.Image, scene, style)
		}); err != nil {
			return err
		}
		e.log.Info().Str("path", outputPDF).Msg("annotated PDF written")
	}
	return nil
}

func newInfoCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>...",
		Short: "Print name, format and pixel size of micrographs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				layer, err := image.Load(path)
				if err != nil {
					return err
				}
				e.log.Debug().Str("path", path).Str("format", layer.Format).Msg("image decoded")
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%dx%d\n", layer.Name, layer.Format, layer.Width(), layer.Height())
			}
			return nil
		},
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
