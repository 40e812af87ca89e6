package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/shortname/pkg/logger"
	"github.com/dmitrymomot/shortname/pkg/shortname"
)

type app struct {
	cfg appConfig
	log *slog.Logger

	// open is replaced in tests.
	open func(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error)
}

func newApp(cfg appConfig, log *slog.Logger) *app {
	return &app{cfg: cfg, log: log, open: openBackend}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "shortname",
		Short:         "Derive unique short display names from full names",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		a.candidatesCommand(),
		a.resolveCommand(),
		a.addCommand(),
		a.adjustCommand(),
		a.checkCommand(),
	)

	// Cobra is silenced; failures are logged once here.
	for _, c := range root.Commands() {
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil {
				a.log.LogAttrs(cmd.Context(), slog.LevelError, "command failed",
					slog.String("command", cmd.Name()),
					logger.Error(err),
				)
			}
			return err
		}
	}
	return root
}

type candidatesOutput struct {
	Name       string   `yaml:"name"`
	Candidates []string `yaml:"candidates"`
}

func (a *app) candidatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "candidates NAME...",
		Short: "Print the candidate list of each name, shortest first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := shortname.NewEngine(shortname.DefaultRules())
			out := make([]candidatesOutput, len(args))
			for i, name := range args {
				out[i] = candidatesOutput{Name: name, Candidates: engine.Candidates(name)}
			}
			return writeYAML(cmd, out)
		},
	}
}

type resolveInput struct {
	Names    []string `yaml:"names"`
	Reserved []string `yaml:"reserved"`
}

type resolvedName struct {
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
}

const (
	kindField    = "kind"
	kindName     = "name"
	kindReserved = "reserved"
)

func (a *app) resolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve FILE.yaml",
		Short: "Level short names for a YAML list of names",
		Long: "Reads a YAML document with a \"names\" list and an optional \"reserved\" list.\n" +
			"Reserved names take part in collisions but are never abbreviated.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Join(ErrReadInput, err)
			}
			var in resolveInput
			if err := yaml.Unmarshal(raw, &in); err != nil {
				return errors.Join(ErrReadInput, err)
			}

			out, err := a.resolve(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeYAML(cmd, out)
		},
	}
}

// resolve levels the input through an in-memory store, the same path stored
// records take.
func (a *app) resolve(ctx context.Context, in resolveInput) ([]resolvedName, error) {
	if len(in.Names)+len(in.Reserved) == 0 {
		return nil, ErrNoNames
	}

	store := shortname.NewMemoryStore()
	records := make([]*shortname.Record, 0, len(in.Names)+len(in.Reserved))
	add := func(names []string, kind string) error {
		for _, n := range names {
			rec := shortname.NewRecord("", map[string]string{
				shortname.DefaultSource: n,
				kindField:               kind,
			})
			if err := store.Save(ctx, rec); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	}
	if err := add(in.Names, kindName); err != nil {
		return nil, err
	}
	if err := add(in.Reserved, kindReserved); err != nil {
		return nil, err
	}

	assigner := shortname.New(store,
		shortname.NewBinding(shortname.WithPredicate(shortname.FieldPredicate(kindField, kindName))),
		shortname.WithLogger(a.log),
	)
	if _, err := assigner.AdjustAll(ctx, nil); err != nil {
		return nil, err
	}

	stored, err := store.All(ctx, nil)
	if err != nil {
		return nil, err
	}
	short := make(map[string]string, len(stored))
	for _, e := range stored {
		short[e.ID()] = e.Get(shortname.DefaultTarget)
	}

	out := make([]resolvedName, len(records))
	for i, rec := range records {
		out[i] = resolvedName{Name: rec.Get(shortname.DefaultSource), ShortName: short[rec.ID()]}
	}
	return out, nil
}

func (a *app) assigner(b *backend) *shortname.Assigner {
	return shortname.New(b.store,
		shortname.NewBinding(
			shortname.WithSource(a.cfg.Source),
			shortname.WithTarget(a.cfg.Target),
			shortname.WithAutoAdjust(a.cfg.AutoAdjust),
		),
		shortname.WithLogger(a.log),
		shortname.WithLocker(b.locker),
	)
}

func scopeOf(value string) shortname.Scope {
	if value == "" {
		return nil
	}
	return shortname.Scope{scopeField: value}
}

func (a *app) addCommand() *cobra.Command {
	var scope string
	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Store records and assign each a free short name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, a.cfg, a.log)
			if err != nil {
				return err
			}
			defer b.Close()

			assigner := a.assigner(b)
			out := make([]resolvedName, 0, len(args))
			for _, name := range args {
				fields := map[string]string{a.cfg.Source: strings.TrimSpace(name)}
				if scope != "" {
					fields[scopeField] = scope
				}
				rec := shortname.NewRecord("", fields)
				if err := assigner.Save(ctx, rec, scopeOf(scope)); err != nil {
					return err
				}
				out = append(out, resolvedName{Name: rec.Get(a.cfg.Source), ShortName: rec.Get(a.cfg.Target)})
			}
			return writeYAML(cmd, out)
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "", "scope value stored on the records and used for collisions")
	return cmd
}

func (a *app) adjustCommand() *cobra.Command {
	var scope string
	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Re-level the short names of every stored record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, a.cfg, a.log)
			if err != nil {
				return err
			}
			defer b.Close()

			updated, err := a.assigner(b).AdjustAll(ctx, scopeOf(scope))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d record(s)\n", updated)
			return nil
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "", "only adjust records with this scope value")
	return cmd
}

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the configured store and lock backends are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, a.cfg, a.log)
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.check(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
