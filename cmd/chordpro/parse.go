package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/sukalov/chordsheet/internal/chordpro"
)

var parseFormats = []string{"json", "yaml"}

func (a *app) newParseCmd() *cobra.Command {
	var (
		format string
		escape bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the parsed song structure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			out, err := marshalSong(a.engine(escape).Parse(inputs[0].text), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json|yaml)")
	cmd.Flags().BoolVar(&escape, "escape", false, "HTML-escape rendered lines")

	err := cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(parseFormats, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func marshalSong(song chordpro.Song, format string) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(song, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(out, '\n'), nil
	case "yaml":
		out, err := yaml.Marshal(song)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (must be json or yaml)", format)
	}
}
