// Package main provides the chordpro CLI, which renders ChordPro documents
// as HTML chord sheets or monospaced text and imports songs from chord sites.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sukalov/chordsheet/internal/chordpro"
	"github.com/sukalov/chordsheet/internal/config"
	"github.com/sukalov/chordsheet/internal/logger"
)

type app struct {
	configPath string
	logConfig  *logger.Config
	cfg        config.Config
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logConfig: logger.NewConfig()}

	rootCmd := &cobra.Command{
		Use:   "chordpro",
		Short: "Render ChordPro chord sheets",
		Long: `chordpro renders ChordPro documents as HTML chord sheets or as chords over
lyrics text, and imports songs from supported chord sites.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		fmt.Sprintf("path to a TOML config file (default %s if present)", config.DefaultPath))
	a.logConfig.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := a.logConfig.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	rootCmd.AddCommand(
		a.newRenderCmd(),
		a.newParseCmd(),
		a.newTextCmd(),
		a.newImportCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func (a *app) setup(stderr io.Writer) error {
	l, err := a.logConfig.NewLogger(stderr)
	if err != nil {
		return err
	}
	logger.SetDefault(l)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	return nil
}

func (a *app) engine(escape bool) *chordpro.Engine {
	opts := []chordpro.Option{chordpro.WithLogger(logger.Logger())}
	if escape || a.cfg.Render.Escape {
		opts = append(opts, chordpro.WithEscaping())
	}
	return chordpro.NewEngine(opts...)
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}

	err := os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Debug("output written", "path", path, "bytes", len(data))
	return nil
}
