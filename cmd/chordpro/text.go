package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sukalov/chordsheet/internal/chordpro"
)

func (a *app) newTextCmd() *cobra.Command {
	var (
		colorMode string
		noHeader  bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "text [file ...]",
		Short: "Print songs as chords over lyrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("color") && a.cfg.Render.ChordColor != "" {
				colorMode = a.cfg.Render.ChordColor
			}
			style, err := chordStyle(colorMode)
			if err != nil {
				return err
			}

			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			engine := a.engine(false)
			opts := chordpro.TextOptions{ChordStyle: style, NoHeader: noHeader}
			texts, err := mapInputs(cmd.Context(), inputs, func(in input) (string, error) {
				return chordpro.RenderText(engine.Parse(in.text), opts), nil
			})
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), output, []byte(strings.Join(texts, "\n")))
		},
	}

	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize chords (auto|on|off)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "omit title, artist and metadata")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

// chordStyle returns the chord decorator for a --color mode. In auto mode
// colour is used only when stdout is a terminal.
func chordStyle(mode string) (func(string) string, error) {
	c := color.New(color.FgCyan, color.Bold)

	switch mode {
	case "auto":
	case "on":
		c.EnableColor()
	case "off":
		c.DisableColor()
	default:
		return nil, fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}

	return func(chord string) string { return c.Sprint(chord) }, nil
}
