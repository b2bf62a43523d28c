package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/alumni/internal/ux"
	"github.com/felixgeelhaar/alumni/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the CLI version. --verbose adds the commit, build date, Go version
and platform. -o json or -o yaml prints them as structured output.`,
		Args: cobra.NoArgs,
		// version works without a valid configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              runVersion,
	}

	cmd.Flags().BoolP("verbose", "v", false, "show detailed version information")

	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.GetInfo()
	out := cmd.OutOrStdout()

	format, _ := cmd.Flags().GetString("output")
	if format != ux.FormatText && format != "" {
		formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: out})
		if err != nil {
			return invalidInputError(err)
		}
		return formatter.Format(info)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		_, err := fmt.Fprintln(out, info.String())
		return err
	}

	_, err := fmt.Fprintf(out, "alumni %s\n", info.Version)
	return err
}
