package main

import (
	"github.com/spf13/cobra"

	"github.com/sukalov/chordsheet/internal/logger"
	"github.com/sukalov/chordsheet/internal/lyrics"
)

func (a *app) newImportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "import <url>",
		Short:   "Convert a chord site page to ChordPro",
		Example: "  chordpro import https://amdm.ru/akkordi/mihail_krug/102195/vladimirskiy_tsentral/",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := lyrics.NewService().Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			logger.Info("song imported",
				"title", res.Song.Title,
				"artist", res.Song.Artist,
				"sections", len(res.Song.Sections))

			return writeOutput(cmd.OutOrStdout(), output, []byte(res.ChordPro))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}
