// evalparse — parse an evaluation text from a file or stdin and print the
// structured record as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/praxisprep/medeval/evalparse"
	"github.com/praxisprep/medeval/htmltext"
)

func main() {
	var (
		inPath   = flag.String("in", "", "input file (default: stdin)")
		synonyms = flag.String("synonyms", "", "YAML synonym tables override")
		isHTML   = flag.Bool("html", false, "input is HTML, convert before parsing")
		report   = flag.Bool("report", false, "include the diagnostic report")
		id       = flag.String("id", "", "record ID to copy into the result")
		ts       = flag.String("timestamp", "", "timestamp to copy into the result")
	)
	flag.Parse()

	text, err := readInput(*inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}
	if *isHTML {
		text = htmltext.New().ToText(text)
	}

	cfg := evalparse.Config{}
	if *synonyms != "" {
		tables, err := evalparse.LoadTables(*synonyms)
		if err != nil {
			fmt.Fprintln(os.Stderr, "synonym tables:", err)
			os.Exit(1)
		}
		cfg.Tables = &tables
	}
	parser := evalparse.New(cfg)

	var out any
	if *report {
		ev, rep := parser.ParseWithReport(text, *id, *ts)
		out = map[string]any{"evaluation": ev, "report": rep}
	} else {
		out = parser.Parse(text, *id, *ts)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
