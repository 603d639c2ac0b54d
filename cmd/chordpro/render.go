package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newRenderCmd() *cobra.Command {
	var (
		escape bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [file ...]",
		Short: "Render ChordPro files as HTML chord sheets",
		Long: `Render each file (or stdin when no file or "-" is given) as an HTML chord
sheet. Sheets are written in argument order, one per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			engine := a.engine(escape)
			sheets, err := mapInputs(cmd.Context(), inputs, func(in input) (string, error) {
				return engine.ParseAndRender(in.text), nil
			})
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), output, []byte(strings.Join(sheets, "\n")+"\n"))
		},
	}

	cmd.Flags().BoolVar(&escape, "escape", false, "HTML-escape lyrics, chords and metadata")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}
