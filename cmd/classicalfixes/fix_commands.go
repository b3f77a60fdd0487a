package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dpetit12345/classical-fixes/internal/errmsg"
	"github.com/dpetit12345/classical-fixes/internal/fixes"
	"github.com/dpetit12345/classical-fixes/internal/library"
)

func newCombineCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "combine DIR...",
		Short: "Merge the discs of a multi-disc album",
		Long: "Each DIR holds one album split over several discs. Its files get the\n" +
			"album title of disc 1 with the disc marker removed and one disc total.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(_ *fixes.Service, runner *fixes.Runner) error {
				rep := &report{op: errmsg.OpCombineDiscs, dryRun: runner.DryRun}
				for _, dir := range args {
					files := library.Discover(ctx.fs, []string{dir})
					if len(files) == 0 {
						log.Warn().Str("dir", dir).Msg("no music files")
						continue
					}
					rep.add(runner.CombineDiscs(files))
				}
				return rep.write(cmd.OutOrStdout())
			})
		},
	}
}

func newFixCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fix PATH...",
		Short: "Apply the classical fixes",
		Long: "Files are grouped by directory and album; each group is fixed as one\n" +
			"batch so shared album values stay consistent.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(_ *fixes.Service, runner *fixes.Runner) error {
				rep := &report{op: errmsg.OpClassicalFixes, dryRun: runner.DryRun}
				clusters := ctx.scan(args, rep)
				for _, c := range clusters {
					log.Debug().Str("dir", c.Dir).Str("album", c.Album).Int("files", len(c.Records)).Msg("fixing cluster")
					rep.add(runner.ClassicalFixesLoaded(c.Records))
				}
				return rep.write(cmd.OutOrStdout())
			})
		},
	}
}

func newRenumberCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "renumber PATH...",
		Short: "Number tracks sequentially across discs",
		Long: "Tracks of each album are numbered 1..n in disc then track order. The\n" +
			"first renumbering keeps the original numbers in separate fields.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(_ *fixes.Service, runner *fixes.Runner) error {
				rep := &report{op: errmsg.OpRenumber, dryRun: runner.DryRun}
				files := library.Discover(ctx.fs, args)
				if len(files) > 0 {
					rep.add(runner.RenumberSequential(files))
				}
				return rep.write(cmd.OutOrStdout())
			})
		},
	}
}

// scan reads the files under paths and groups them into clusters. Files
// that cannot be read are added to rep as failures.
func (c *commandContext) scan(paths []string, rep *report) []library.Cluster {
	files := library.Discover(c.fs, paths)
	res := library.Scan(files, c.access.Load)
	for _, f := range files {
		if err, ok := res.Failed[f]; ok {
			rep.addFailure(f, errmsg.OpTagsRead, err)
		}
	}
	return library.ClusterRecords(res.Records)
}
