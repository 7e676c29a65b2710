package main

import (
	"log"
	"os"
	"strings"

	"github.com/docopt/docopt-go"

	"github.com/kittclouds/loretrack/pkg/config"
	"github.com/kittclouds/loretrack/pkg/outline"
	"github.com/kittclouds/loretrack/pkg/tracker"
)

const LoretrackCtlVersion = "0.1.0"

var Out *log.Logger
var Err *log.Logger

func init() {
	Out = log.New(os.Stdout, "", 0)
	Err = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
}

func main() {
	usage := `Loretrack control.

Replays a story-notation markdown file up to a cursor line and prints
the derived views.

Usage:
    loretrackctl scan <file> [--line=<line>] [--config=<config>]
    loretrackctl mentions <file> [--line=<line>] [--config=<config>]

Options:
    -h --help          Show this screen.
    --version          Show version.
    --line=<line>      0-based cursor line; defaults to the last line.
    --config=<config>  Path to a loretrack YAML config file.`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], LoretrackCtlVersion)
	if err != nil {
		panic(err)
	}

	if scan_, _ := opts.Bool("scan"); scan_ {
		scan(opts, false)
	} else if mentions_, _ := opts.Bool("mentions"); mentions_ {
		scan(opts, true)
	}
}

func scan(opts docopt.Opts, mentionsOnly bool) {
	file, _ := opts.String("<file>")
	if !tracker.IsStoryDocument(file) {
		Err.Fatalf("not a story document: %s", file)
	}

	configPath, _ := opts.String("--config")
	cfg, err := config.Load(configPath)
	if err != nil {
		Err.Fatalf("config: %s", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		Err.Fatalf("read: %s", err)
	}
	lines := strings.Split(string(data), "\n")

	line := len(lines) - 1
	if n, err := opts.Int("--line"); err == nil {
		line = n
	}

	t := tracker.New(cfg.TrackerOptions())
	t.OnCursorMoved(line, lines)

	if mentionsOnly {
		if t.Mentions() == nil {
			Err.Fatalf("mention scanning is disabled in the config")
		}
		printTree("Mentions", t.Mentions())
		printCandidates(t)
		return
	}

	printTree("Attributes", t.Attributes())
	printTree("Notes", t.Notes())
	printTree("State", t.State())
	if t.Mentions() != nil {
		printTree("Mentions", t.Mentions())
	}
}

func printTree(title string, p outline.Provider) {
	Out.Printf("%s:", title)
	empty := true
	outline.Walk(p, func(item outline.Item, depth int) {
		empty = false
		Out.Printf("%s%s", strings.Repeat("  ", depth+1), item.Label)
	})
	if empty {
		Out.Printf("  (empty)")
	}
}

func printCandidates(t *tracker.Tracker) {
	cs := t.Mentions().Candidates()
	if len(cs) == 0 {
		return
	}
	Out.Printf("Candidates:")
	for _, c := range cs {
		Out.Printf("  %s (%d)", c.Name, c.Count)
	}
}
