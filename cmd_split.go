package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/openrelayxyz/partmanager/internal/part"
)

func (a *app) newSplitCmd() *cobra.Command {
	var (
		count uint64
		size  string
	)
	cmd := &cobra.Command{
		Use:     "split [-n PARTS | -s SIZE] FILE",
		Aliases: []string{"s"},
		Short:   "split into multiple parts",
		Long: `Split FILE into FILE.0.part .. FILE.<n-1>.part plus FILE.partinfo.

With -n the file is cut into exactly PARTS parts; with -s every part is SIZE
bytes. In both cases the last part also takes the remaining bytes. Existing
part and partinfo files of the same name are overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode part.Mode
			if cmd.Flags().Changed("number") {
				mode = part.ByCount(count)
			} else {
				s, err := humanize.ParseBytes(size)
				if err != nil {
					return fmt.Errorf("invalid size %q: %w", size, err)
				}
				mode = part.BySize(s)
			}
			cmd.SilenceUsage = true

			splitter := part.NewSplitter(part.SplitterOpts{
				Logger:           a.logger,
				CleanupOnFailure: a.cfg.Split.CleanupOnFailure,
			})
			meta, err := splitter.Split(args[0], mode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Split %v into %d parts (%v)\n", args[0], meta.PartCount, part.MetadataPath(args[0]))
			return nil
		},
	}
	cmd.Flags().Uint64VarP(&count, "number", "n", 0, "number of part files")
	cmd.Flags().StringVarP(&size, "size", "s", "", "size of individual part files (e.g. 1048576, 512KiB, 10MB)")
	cmd.MarkFlagsMutuallyExclusive("number", "size")
	cmd.MarkFlagsOneRequired("number", "size")
	return cmd
}
