/*
Copyright © 2026 the pqdif authors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/pqdif/pqdif/registry"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tag definitions known to the registry",
	Run:   runTags,
}

var tagsDocPath string

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().StringVar(&tagsDocPath, "doc", "", "Directory to search for a tag-definition document (defaults to the --config/PQDIF_TAGS_DOC setting, then the working directory, falling back to the bundled copy)")
}

func runTags(cmd *cobra.Command, args []string) {
	dir := tagsDocPath
	if dir == "" {
		dir = cfg.TagsDoc
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v %v\n", color.RedString("error"), err)
			os.Exit(1)
		}
		dir = wd
	}

	doc, err := registry.LocateDocument(dir)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v %v\n", color.RedString("error"), err)
		os.Exit(1)
	}

	reg := registry.NewRegistry()
	if err := reg.Refresh(doc); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v %v\n", color.RedString("error"), err)
		os.Exit(1)
	}

	table := uitable.New()
	table.Separator = "  "
	table.MaxColWidth = 60
	table.AddRow("ID", "NAME", "KIND", "TYPE", "REQUIRED")
	for _, id := range doc.TagIDs() {
		info, ok := reg.Get(id)
		if !ok {
			continue
		}
		table.AddRow(info.ID, info.Name, info.ElementKind, info.PhysicalType, info.Required)
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
}
