package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/moycat/tarfix"
)

type command struct {
	outputPath string
	fixtures   []string
	manifest   string
	// Compression options.
	algorithm algorithmArg
	level     levelArg
}

func (cmd *command) options() []tarfix.Option {
	ops := []tarfix.Option{
		tarfix.WithCompression(cmd.algorithm.value),
		tarfix.WithLevel(cmd.level.value),
	}
	if len(cmd.fixtures) > 0 {
		ops = append(ops, tarfix.WithFixtures(cmd.fixtures...))
	}
	if cmd.manifest != "" {
		ops = append(ops, tarfix.WithManifest(cmd.manifest))
	}
	return ops
}

func generate(cmd *command) error {
	log.Println("generating fixtures in", cmd.outputPath)
	log.Printf("algorithm: %v, level: %v\n", cmd.algorithm.value, cmd.level.value)
	results, err := tarfix.Generate(cmd.outputPath, cmd.options()...)
	for _, res := range results {
		log.Printf("created %s (%d bytes tar, %d bytes compressed, %s)\n",
			res.Filename, res.Size, len(res.Data), res.Digest)
	}
	return err
}

func main() {
	cmd, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	if err := generate(cmd); err != nil {
		log.Fatalln("failed to generate fixtures:", err)
	}
}
