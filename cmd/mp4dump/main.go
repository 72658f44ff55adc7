// Command mp4dump decodes an MP4/QuickTime file and prints its box
// tree, one line per atom, indented by nesting depth.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mp4atom/mp4atom/box"
)

func main() {
	strict := flag.Bool("strict", false, "fail on unrecognized type codes and malformed boxes instead of keeping what decodes")
	maxDepth := flag.Int("max-depth", box.DefaultMaxDepth, "maximum container nesting depth")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file.mp4>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevelFromEnv(),
	}))

	atoms, err := box.Parse(flag.Arg(0),
		box.WithStrict(*strict),
		box.WithMaxDepth(*maxDepth),
		box.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mp4dump: %v\n", err)
		os.Exit(1)
	}

	dump(atoms, 0)
}

func logLevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("MP4ATOM_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func dump(atoms []box.Atom, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, a := range atoms {
		h := a.HeaderBox()
		fmt.Printf("%s%s  size=%d  digest=%016x\n", indent, a.Kind().TrimmedString(), h.Size, a.Digest())
		if c, ok := a.(box.Container); ok {
			dump(c.Children(), depth+1)
		}
		if cm, ok := a.(*box.CompressedMovie); ok && cm.Moov() != nil {
			fmt.Printf("%s  [decompressed moov]\n", indent)
			if mc, ok := cm.Moov().(box.Container); ok {
				dump(mc.Children(), depth+2)
			}
		}
	}
}
