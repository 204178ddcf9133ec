package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openrelayxyz/partmanager/internal/part"
)

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "print the contents of a partinfo file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			meta, err := part.ReadMetadata(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "File:\t%v\n", meta.OriginalFilename)
			fmt.Fprintf(w, "Parts:\t%d\n", meta.PartCount)
			fmt.Fprintf(w, "CRC-32:\t%08x\n", meta.Checksum)
			for i, sum := range meta.PartChecksums {
				fmt.Fprintf(w, "Part %d:\t%08x\n", i, sum)
			}
			return w.Flush()
		},
	}
}
