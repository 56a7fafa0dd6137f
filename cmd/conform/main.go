package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	conform "github.com/reifylabs/conform"
	"github.com/reifylabs/conform/schemaconv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "introspect":
		introspectCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `conform CLI

Usage:
  conform validate -schema schema.yaml -data data.json
  conform introspect -schema schema.yaml

validate checks each document in the data file against the schema and
prints every error with its pointer; exit code 1 when any document is
invalid. introspect re-emits the schema's introspection document as JSON.`)
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schemaPath, dataPath string
	fs.StringVar(&schemaPath, "schema", "", "path to a YAML/JSON schema document")
	fs.StringVar(&dataPath, "data", "", "path to a YAML/JSON data file")
	_ = fs.Parse(args)
	if schemaPath == "" || dataPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	field := loadSchema(schemaPath)
	values := loadData(dataPath)

	invalid := false
	for i, value := range values {
		v := field.Validate(value)
		for _, w := range v.Warnings {
			fmt.Fprintf(os.Stderr, "warning: document %d: %s%s\n", i, pointerPrefix(w.Pointer), w.Message)
		}
		if v.IsValid() {
			continue
		}
		invalid = true
		for _, e := range v.Errors {
			fmt.Printf("document %d: %s%s (%s)\n", i, pointerPrefix(e.Pointer), e.Message, e.Code)
		}
	}
	if invalid {
		os.Exit(1)
	}
}

func introspectCmd(args []string) {
	fs := flag.NewFlagSet("introspect", flag.ExitOnError)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "path to a YAML/JSON schema document")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	field := loadSchema(schemaPath)
	out, err := json.MarshalIndent(field.Introspect(), "", "  ")
	if err != nil {
		fatalf("marshal introspection: %s", err)
	}
	fmt.Println(string(out))
}

func loadSchema(path string) conform.Field {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("read schema: %s", err)
	}
	var (
		field conform.Field
		diag  *schemaconv.Diag
	)
	if strings.HasSuffix(path, ".json") {
		field, diag, err = schemaconv.FromJSON(data)
	} else {
		field, diag, err = schemaconv.FromYAML(data)
	}
	if err != nil {
		fatalf("load schema: %s", err)
	}
	for _, w := range diag.Warnings {
		fmt.Fprintf(os.Stderr, "schema: %s\n", w)
	}
	return field
}

// loadData reads one JSON value or every document of a YAML stream.
func loadData(path string) []any {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("read data: %s", err)
	}
	if strings.HasSuffix(path, ".json") {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			fatalf("parse data: %s", err)
		}
		return []any{v}
	}
	var values []any
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			break
		}
		values = append(values, v)
	}
	return values
}

func pointerPrefix(pointer string) string {
	if pointer == "" {
		return ""
	}
	return pointer + ": "
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "conform: "+format+"\n", args...)
	os.Exit(1)
}
