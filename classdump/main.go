package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI defines the classdump command-line interface.
//
// One positional class file per argument; --format selects the output
// encoding. The text format prints a javap-style summary, the other
// formats emit a machine-readable Summary tree.
type CLI struct {
	Paths   []string `arg:"" name:"path" help:"Class files to dump." type:"existingfile"`
	Format  string   `short:"f" help:"Output format." enum:"text,json,cbor,msgpack" default:"text"`
	Verbose bool     `short:"v" help:"Include the constant pool in the dump."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("classdump"),
		kong.Description("Decode JVM class files and print their structure."),
	)

	if err := run(&cli); err != nil {
		ctx.FatalIfErrorf(err)
	}
}

func run(cli *CLI) error {
	for _, path := range cli.Paths {
		if err := dumpFile(os.Stdout, path, cli.Format, cli.Verbose); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
