package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/orgco/internal/commands"
	"github.com/gerunddev/orgco/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "convert", "c":
		commands.Convert(os.Args[2:])
	case "batch", "b":
		commands.Batch(os.Args[2:])
	case "watch", "w":
		commands.Watch(os.Args[2:])
	case "check":
		commands.Check(os.Args[2:])
	case "tree":
		commands.Tree(os.Args[2:])
	case "outline":
		commands.Outline(os.Args[2:])
	case "preview", "p":
		commands.Preview(os.Args[2:])
	case "init":
		commands.Init(os.Args[2:])
	case "languages":
		commands.Languages(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("orgco v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`orgco - Convert org-mode files to HTML and reStructuredText

Usage:
  orgco <command> [options]

Commands:
  convert     Convert one org file (to stdout or --out FILE)
  batch       Convert every org file below a directory
  watch       Convert a directory again on every interval
  check       Compare the rendering of a file with an expected output
  tree        Print the parsed document tree
  outline     Print the heading outline
  preview     Browse rendered output interactively
  init        Write a default config file
  languages   List highlight languages and styles
  version     Show version information
  help        Show this help message

Options:
  --to html|rst      Output format
  --highlight        Highlight code blocks (HTML)
  --style NAME       Highlight style, implies --highlight
  --standalone       Emit a complete HTML page or titled RST document
  --toc              Emit a table of contents
  --no-sanitize      Keep link targets as written
  --out-dir DIR      Write batch output below DIR
  --workers N        Parallel conversions in batch and watch
  --interval D       Watch interval, e.g. 10s
  --force            Ignore the batch state and convert everything

Examples:
  orgco convert notes.org --to rst
  orgco convert notes.org --standalone --toc --out notes.html
  orgco batch ~/org --out-dir ~/site --workers 8
  orgco watch ~/org --interval 10s
  orgco check notes.org notes.html
  orgco outline notes.org
  orgco preview ~/org
  orgco languages py

Configuration:
  Config file: %s
  State file:  %s
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
