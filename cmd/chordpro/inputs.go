package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// input is one ChordPro document read from a file or stdin.
type input struct {
	name string
	text string
}

// readInputs reads every path, with "-" or no paths meaning stdin. CRLF line
// endings are normalised to LF.
func readInputs(stdin io.Reader, paths []string) ([]input, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	inputs := make([]input, 0, len(paths))
	for _, path := range paths {
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		text := strings.ReplaceAll(string(data), "\r\n", "\n")
		inputs = append(inputs, input{name: path, text: text})
	}
	return inputs, nil
}

// mapInputs applies fn to every input concurrently. Results keep the order
// of inputs.
func mapInputs(ctx context.Context, inputs []input, fn func(input) (string, error)) ([]string, error) {
	results := make([]string, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(runtime.GOMAXPROCS(0), len(inputs))))

	for i, in := range inputs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			out, err := fn(in)
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
