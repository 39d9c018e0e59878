package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"polyglot-blog-be/content"
)

var sanitizeCmd = cobra.Command{
	Use:   "sanitize [file]",
	Short: "Print the reader-safe HTML for a file or standard input",
	Args:  cobra.MaximumNArgs(1),

	// Works offline, no configuration needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		return sanitize(in, cmd.OutOrStdout())
	},
}

func sanitize(r io.Reader, w io.Writer) error {
	// One byte past the limit is enough for the pipeline to truncate
	raw, err := io.ReadAll(io.LimitReader(r, content.MaxInputBytes+1))
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	_, err = fmt.Fprintln(w, content.SanitizeForDisplay(string(raw)))
	return err
}
