package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openrelayxyz/partmanager/internal/part"
)

func (a *app) newVerifyCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "verify [--dir DIR] FILE",
		Short: "check parts against their checksums without combining",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			wd, err := a.workDir(dir)
			if err != nil {
				return err
			}
			meta, err := part.NewCombiner(part.CombinerOpts{Logger: a.logger}).Verify(args[0], wd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "All %d parts verified\n", meta.PartCount)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory holding the parts")
	return cmd
}
