/*
 * main.go, part of genice-cage.
 *
 * Copyright 2024 Masakazu Matsumoto <vitroid@gmail.com>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//genice-cage detects cages in the hydrogen bond network of a water or ice
//structure and reports them in one of several formats.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cage "github.com/genice-dev/genice-cage"
	"github.com/genice-dev/genice-cage/lattice"
)

//environment overrides, applied wherever the corresponding flag was not
//given on the command line.
type config struct {
	Verbose bool    `env:"GENICE_CAGE_VERBOSE"`
	Cutoff  float64 `env:"GENICE_CAGE_CUTOFF"`
	DB      string  `env:"GENICE_CAGE_DB"`
}

var (
	rep     []int
	water   string
	format  string
	input   string
	oxygen  string
	cutoff  float64
	verbose bool

	cfg    config
	logger *zap.Logger
)

//analysisError tells a failed analysis (exit 2) apart from a usage
//problem (exit 1).
type analysisError struct{ err error }

func (e analysisError) Error() string { return e.err.Error() }
func (e analysisError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "genice-cage [LATTICE]",
	Short: "detect cages in the HB network of a water or ice structure",
	Long: `genice-cage enumerates the rings of the hydrogen bond network of a water
or ice structure, joins them into cage-like quasi-polyhedra, and reports
the census in one of several formats.

The structure is one of the built-in lattices (` + strings.Join(lattice.Names(), ", ") + `),
a lattice YAML file, or, with --input, a Gromacs coordinate file.

The format option takes the cage plugin grammar, e.g.
    genice-cage CS1 -r 2,2,2 -f 'cage[12,14-16:maxring=6]'
    genice-cage CS2 -f 'cage[12,14-16:maxring=6:json]'
    genice-cage --input conf.gro.gz -f 'cage[quad]'`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := env.Parse(&cfg); err != nil {
			return fmt.Errorf("environment: %w", err)
		}
		if !cmd.Flags().Changed("verbose") && cfg.Verbose {
			verbose = true
		}
		if !cmd.Flags().Changed("cutoff") && cfg.Cutoff > 0 {
			cutoff = cfg.Cutoff
		}
		zc := zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func init() {
	f := rootCmd.Flags()
	f.IntSliceVarP(&rep, "rep", "r", []int{1, 1, 1}, "replicate the unit cell X,Y,Z times")
	f.StringVarP(&water, "water", "w", "", "water model for the gromacs output ("+strings.Join(cage.WaterModels(), ", ")+")")
	f.StringVarP(&format, "format", "f", "cage[]", "cage format options, e.g. 'cage[12,14-16:maxring=6:json]'")
	f.StringVar(&input, "input", "", "analyze a Gromacs coordinate file (.gro, .gro.gz, .gro.zst) instead of a lattice")
	f.StringVar(&oxygen, "oxygen", cage.DefaultOxygen, "atom name of the water oxygens in --input files")
	f.Float64Var(&cutoff, "cutoff", 0, "hydrogen bond O-O cutoff in nm (0 selects the default)")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

//payload strips the cage[...] wrapper, when present, and splits the option
//string on colons.
func payload(format string) ([]string, error) {
	s := strings.TrimSpace(format)
	if rest, ok := strings.CutPrefix(s, "cage["); ok {
		if !strings.HasSuffix(rest, "]") {
			return nil, fmt.Errorf("format %q: missing closing bracket", format)
		}
		s = strings.TrimSuffix(rest, "]")
	}
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, ":"), nil
}

//structure resolves the analysis input: an --input coordinate file, a
//built-in lattice name, or a lattice YAML path.
func structure(args []string) (*cage.Structure, error) {
	if input != "" {
		st, err := cage.FromGro(input, oxygen, cutoff)
		if err != nil {
			return nil, analysisError{err}
		}
		return st, nil
	}
	if len(args) != 1 {
		return nil, errors.New("need a lattice name or --input FILE")
	}
	l, err := lattice.Get(args[0])
	if err != nil {
		if _, serr := os.Stat(args[0]); serr == nil {
			if l, err = lattice.Load(args[0]); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	if len(rep) != 3 {
		return nil, fmt.Errorf("replication needs 3 factors, got %v", rep)
	}
	if l, err = l.Replicate(rep[0], rep[1], rep[2]); err != nil {
		return nil, err
	}
	st, err := cage.FromLattice(l, cutoff)
	if err != nil {
		return nil, analysisError{err}
	}
	return st, nil
}

func run(cmd *cobra.Command, args []string) error {
	sugar := logger.Sugar()
	items, err := payload(format)
	if err != nil {
		return err
	}
	opt, err := cage.ParseOptions(items)
	if err != nil {
		return err
	}
	opt.Water = water
	if opt.DBPath == "" {
		opt.DBPath = cfg.DB
	}
	opt.Log = sugar.Infof
	sugar.Debugf("Ring sizes: %v", opt.Rings)
	sugar.Debugf("Cage sizes: %v", opt.Sizes)
	st, err := structure(args)
	if err != nil {
		return err
	}
	sugar.Debugf("Sites: %d", st.Len())
	R, err := cage.Analyze(st, opt)
	if err != nil {
		return analysisError{err}
	}
	sugar.Infof("Rings: %d", len(R.Rings))
	sugar.Infof("Cages: %d", len(R.Cages))
	if len(R.Cages) == 0 {
		sugar.Warn("No cages detected.")
	}
	if err := R.Emit(os.Stdout, opt); err != nil {
		return analysisError{err}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "genice-cage:", err)
		var a analysisError
		if errors.As(err, &a) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
