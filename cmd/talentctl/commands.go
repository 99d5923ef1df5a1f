package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Flamage82/WowTalentComparer/internal/bootstrap"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/branch"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/diff"
	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
	"github.com/Flamage82/WowTalentComparer/internal/report"
	"github.com/Flamage82/WowTalentComparer/internal/repository"
	talentuc "github.com/Flamage82/WowTalentComparer/internal/usecase/talent"
)

type cli struct {
	logLevel string
	log      *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "talentctl",
		Short: "Decode and compare talent loadout export strings",
		Long: `talentctl decodes talent loadout export strings, diffs two builds of
the same specialization and places a build on its talent tree.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.log = bootstrap.NewLogger(c.logLevel)
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "zap log level")

	root.AddCommand(
		c.decodeCmd(),
		c.diffCmd(),
		c.branchCmd(),
		c.reportCmd(),
	)
	return root
}

// useCase builds a use case around store; nil means no topology data.
func (c *cli) useCase(store talentuc.TopologyStore) *talentuc.TalentUseCase {
	if store == nil {
		store = staticStore{}
	}
	return talentuc.NewTalentUseCase(c.log, store, talentuc.NewPartitionCache(c.log, branch.DefaultPolicy, nil, nil))
}

func (c *cli) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [export-string]",
		Short: "Print the decoded selection record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.useCase(nil).ParseBuild(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
}

func (c *cli) diffCmd() *cobra.Command {
	var summaryOnly bool
	cmd := &cobra.Command{
		Use:   "diff [baseline] [candidate]",
		Short: "Compare two builds of the same specialization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.useCase(nil).CompareBuilds(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if summaryOnly {
				return printJSON(cmd.OutOrStdout(), res.Summary)
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "print only the added/removed/changed index lists")
	return cmd
}

func (c *cli) branchCmd() *cobra.Command {
	var topologyPath string
	cmd := &cobra.Command{
		Use:   "branch [export-string] --topology FILE",
		Short: "Show the active hero tree and the overlap-resolved node list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadTopologyFile(topologyPath)
			if err != nil {
				return err
			}
			layout, err := c.useCase(store).Layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), layout)
		},
	}
	cmd.Flags().StringVar(&topologyPath, "topology", "", "YAML or JSON topology document")
	_ = cmd.MarkFlagRequired("topology")
	return cmd
}

func (c *cli) reportCmd() *cobra.Command {
	var (
		output           string
		includeUnchanged bool
	)
	cmd := &cobra.Command{
		Use:   "report [baseline] [candidate] -o FILE.pdf",
		Short: "Write a PDF comparison report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.useCase(nil)
			baseline, err := uc.ParseBuild(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("baseline: %w", err)
			}
			candidate, err := uc.ParseBuild(cmd.Context(), args[1])
			if err != nil {
				return fmt.Errorf("candidate: %w", err)
			}
			res, err := diff.Diff(baseline, candidate)
			if err != nil {
				return err
			}

			rep := report.NewDiffReport(baseline, candidate, res)
			rep.IncludeUnchanged = includeUnchanged

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := rep.WritePDF(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			c.log.Infow("report written", "id", rep.ID, "path", output)
			fmt.Fprintf(cmd.OutOrStdout(), "report %s written to %s\n", rep.ID, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "talent-report.pdf", "PDF file to write")
	cmd.Flags().BoolVar(&includeUnchanged, "all", false, "include unchanged nodes")
	return cmd
}

// staticStore serves at most one topology, loaded from a file given on the
// command line.
type staticStore struct {
	topo *talent.Topology
}

func (s staticStore) Topology(_ context.Context, specID int) (*talent.Topology, error) {
	if s.topo == nil {
		return nil, fmt.Errorf("%w: spec %d", talenterrors.ErrTopologyNotFound, specID)
	}
	if s.topo.SpecID != 0 && s.topo.SpecID != specID {
		return nil, fmt.Errorf("%w: spec %d (topology file is for spec %d)",
			talenterrors.ErrTopologyNotFound, specID, s.topo.SpecID)
	}
	return s.topo, nil
}

func loadTopologyFile(path string) (staticStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return staticStore{}, err
	}
	doc, err := repository.DecodeTopologyDocument(data)
	if err != nil {
		return staticStore{}, fmt.Errorf("%s: %w", path, err)
	}
	return staticStore{topo: doc.Topology()}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
