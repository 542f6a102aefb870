/*
Copyright © 2026 the pqdif authors
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pqdif/pqdif/logical"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Walk the full Container/DataSource/MonitorSettings/Observation protocol and report violations",
	Args:  cobra.MinimumNArgs(1),
	Run:   runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	failures := 0
	for _, filename := range args {
		if err := validateFile(cmd, filename); err != nil {
			failures++
			fmt.Fprintf(cmd.ErrOrStderr(), "%v %s: %v\n", color.RedString("fail"), filename, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%v %s\n", color.GreenString("ok"), filename)
	}
	if failures > 0 {
		os.Exit(1)
	}
}

func validateFile(cmd *cobra.Command, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	seq, err := logical.Open(f)
	if err != nil {
		return err
	}

	observations := 0
	for {
		_, err := seq.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		observations++
	}

	if errs := seq.Errors(); len(errs) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%v %d structural error(s) within otherwise valid records\n", color.YellowString("warning"), len(errs))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %d observation(s), %d data source(s)\n", observations, len(seq.DataSources()))
	return nil
}
