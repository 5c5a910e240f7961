package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/moycat/tarfix"
)

type algorithmArg struct {
	value tarfix.Algorithm
}

func (arg *algorithmArg) String() string {
	return arg.value.String()
}

func (arg *algorithmArg) Set(s string) error {
	switch strings.ToLower(s) {
	case "", "gzip":
		arg.value = tarfix.GzipAlgorithm
	case "lz4":
		arg.value = tarfix.LZ4Algorithm
	case "none":
		arg.value = tarfix.NoAlgorithm
	default:
		return fmt.Errorf("unknown algorithm '%s'", s)
	}
	return nil
}

type levelArg struct {
	value tarfix.Level
}

func (arg *levelArg) String() string {
	return arg.value.String()
}

func (arg *levelArg) Set(s string) error {
	switch strings.ToLower(s) {
	case "", "best":
		arg.value = tarfix.BestLevel
	case "fastest":
		arg.value = tarfix.FastestLevel
	case "fast":
		arg.value = tarfix.FastLevel
	case "default":
		arg.value = tarfix.DefaultLevel
	case "good":
		arg.value = tarfix.GoodLevel
	default:
		return fmt.Errorf("unknown algorithm level: '%s'", s)
	}
	return nil
}

func parseArgs(args []string) (*command, error) {
	c := &command{
		algorithm: algorithmArg{value: tarfix.GzipAlgorithm},
		level:     levelArg{value: tarfix.BestLevel},
	}
	set := flag.NewFlagSet("tarfix", flag.ContinueOnError)
	set.SetOutput(os.Stderr)
	set.Usage = func() {
		fmt.Fprintf(set.Output(), "Usage: tarfix [options] [fixture...]\n\nFixtures:")
		for _, f := range tarfix.Catalog() {
			fmt.Fprintf(set.Output(), " %s", f.Name)
		}
		fmt.Fprintf(set.Output(), "\n\nOptions:\n")
		set.PrintDefaults()
	}
	set.StringVar(&c.outputPath, "d", ".", "optional, output directory, which must exist")
	set.Var(&c.algorithm, "c", "optional, compression algorithm (gzip, lz4 or none)")
	set.Var(&c.level, "l", "optional, compression level (fastest, fast, default, good, best)")
	set.StringVar(&c.manifest, "m", "", "optional, file name of a digest manifest written next to the fixtures")
	if err := set.Parse(args); err != nil {
		return nil, err
	}
	// Without arguments, all fixtures are generated.
	c.fixtures = set.Args()
	return c, nil
}
