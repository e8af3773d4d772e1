// Command hashroot computes a hash tree root over generated leaves
// and prints it with the public values committed alongside it.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gordian-engine/hashroot"
	"github.com/spf13/cobra"
)

// maxLeaves bounds n so that counters the surrounding pipeline
// derives from it stay within 32 bits.
const maxLeaves = 186

type flags struct {
	N        int
	Keccak   bool
	Scheme   string
	Workers  int
	LogLevel string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "hashroot",
		Short: "Compute a hash tree root over generated leaves",
		Long: `hashroot generates n leaf records, hashes them into a first level,
and reduces that level pairwise to a single root.
An unpaired last digest in any level moves up unchanged.

Schemes:
  poseidon           Poseidon2 over Goldilocks, one input per leaf
  keccak             Keccak-256, one input per leaf
  poseidon-pairwise  Poseidon2 over Goldilocks, one input per pair of leaves`,

		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd, f, stdout, stderr)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
			return err
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&f.N, "n", 0, "number of leaves (even, 2 to 186)")
	fs.BoolVar(&f.Keccak, "keccak", false, "use Keccak-256 instead of Poseidon2")
	fs.StringVar(&f.Scheme, "scheme", "", "scheme name; overrides --keccak")
	fs.IntVar(&f.Workers, "workers", 0, "goroutines hashing within one level (0 is serial)")
	fs.StringVar(&f.LogLevel, "log-level", "warn", "log level: debug|info|warn|error")

	_ = cmd.MarkFlagRequired("n")

	return cmd
}

func run(cmd *cobra.Command, f flags, stdout, stderr io.Writer) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(f.LogLevel)); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))

	scheme := hashroot.SchemeFieldPlaceholder
	if f.Keccak {
		scheme = hashroot.SchemeBytePlaceholder
	}
	if cmd.Flags().Changed("scheme") {
		s, err := hashroot.ParseScheme(f.Scheme)
		if err != nil {
			return err
		}
		scheme = s
	}

	if f.N > maxLeaves {
		return fmt.Errorf("--n must be at most %d (got %d)", maxLeaves, f.N)
	}

	b, err := hashroot.NewBuilder(log, hashroot.BuilderConfig{
		Scheme:  scheme,
		Workers: f.Workers,
	})
	if err != nil {
		return err
	}

	res, err := b.Build(f.N)
	if err != nil {
		return err
	}

	pv, err := res.PublicValues()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "scheme: %s\n", res.Scheme)
	fmt.Fprintf(stdout, "n: %d\n", res.N)
	fmt.Fprintf(stdout, "root: %s\n", res.Root)
	fmt.Fprintf(stdout, "public_values: %s\n", hexutil.Encode(pv))
	return nil
}
