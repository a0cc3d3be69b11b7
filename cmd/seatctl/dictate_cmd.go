package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/classroom-seating-api/internal/dictation"
)

func newDictateCmd() *cobra.Command {
	var basePath string
	var follow bool

	cmd := &cobra.Command{
		Use:   "dictate",
		Short: "Rebuild roster text from cumulative transcript lines read on stdin",
		Long: "Each stdin line is the full transcript heard so far. The output is the base text\n" +
			"followed by the latest transcript, so repeated partial results never duplicate words.",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := ""
			if basePath != "" {
				data, err := os.ReadFile(basePath)
				if err != nil {
					return fmt.Errorf("reading base text: %w", err)
				}
				base = string(data)
			}
			return runDictate(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), base, follow)
		},
	}

	cmd.Flags().StringVar(&basePath, "base", "", "File holding the text captured before dictation started")
	cmd.Flags().BoolVar(&follow, "follow", false, "Print every intermediate text, not only the final one")
	return cmd
}

func runDictate(ctx context.Context, in io.Reader, out io.Writer, base string, follow bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	transcripts := make(chan dictation.Transcript)
	scanErr := make(chan error, 1)
	go func() {
		defer close(transcripts)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				scanErr <- ctx.Err()
				return
			case transcripts <- dictation.Transcript{Text: scanner.Text()}:
			}
		}
		scanErr <- scanner.Err()
	}()

	session := dictation.NewSession(nil)
	for text := range session.Start(ctx, base, transcripts) {
		if follow {
			fmt.Fprintln(out, text)
		}
	}
	if err := <-scanErr; err != nil {
		return fmt.Errorf("reading transcripts: %w", err)
	}
	if !follow {
		fmt.Fprintln(out, session.Latest())
	}
	return nil
}
