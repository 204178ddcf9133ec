package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openrelayxyz/partmanager/internal/part"
)

func (a *app) newCombineCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "combine [--dir DIR] FILE",
		Aliases: []string{"c"},
		Short:   "combine multiple parts",
		Long: `Combine the parts described by the partinfo FILE.

The output name is FILE without its extension; parts are read as
<name>.<i>.part from DIR (default: the current directory) and the combined
file is written to DIR/<name>, replacing any existing file. Nothing is written
if any part or the whole file fails its checksum.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			wd, err := a.workDir(dir)
			if err != nil {
				return err
			}
			out, err := part.NewCombiner(part.CombinerOpts{Logger: a.logger}).Combine(args[0], wd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "File successfully combined: %v\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory holding the parts and receiving the output")
	return cmd
}
