// Command jsonmend is a thin adapter over the engine's entry points: it
// reads a schema and an instance (JSON or YAML), calls validate, repair or
// explain, and prints the result envelope as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/jsonmend/jsonmend"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "repair":
		repairCmd(os.Args[2:])
	case "explain":
		explainCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "jsonmend CLI\n\nUsage:\n  jsonmend validate -schema schema.json -in value.json\n  jsonmend repair   -schema schema.json -in value.json [-text]\n  jsonmend explain  -in errors.json\n\nNotes:\n  - Schema and instance files ending in .yaml/.yml are decoded as YAML.\n  - repair -text treats the input file as raw (possibly malformed) JSON text.")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schemaPath, inPath string
	fs.StringVar(&schemaPath, "schema", "", "schema file (JSON or YAML)")
	fs.StringVar(&inPath, "in", "", "instance file (JSON or YAML)")
	_ = fs.Parse(args)
	if schemaPath == "" || inPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	schemaDoc := loadValue(schemaPath)
	instance := loadValue(inPath)
	ctx := context.Background()
	res, err := jsonmend.Validate(ctx, schemaDoc, instance)
	if err != nil {
		fatalEngineErr(err)
	}
	printJSON(res)
}

func repairCmd(args []string) {
	fs := flag.NewFlagSet("repair", flag.ExitOnError)
	var schemaPath, inPath string
	var asText bool
	fs.StringVar(&schemaPath, "schema", "", "schema file (JSON or YAML)")
	fs.StringVar(&inPath, "in", "", "input file")
	fs.BoolVar(&asText, "text", false, "treat input as raw JSON text and run the recovery pass")
	_ = fs.Parse(args)
	if schemaPath == "" || inPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	schemaDoc := loadValue(schemaPath)

	ctx := context.Background()
	var res *jsonmend.RepairResult
	var err error
	if asText {
		res, err = jsonmend.RepairText(ctx, schemaDoc, readFile(inPath))
	} else {
		res, err = jsonmend.Repair(ctx, schemaDoc, loadValue(inPath))
	}
	if err != nil {
		fatalEngineErr(err)
	}
	printJSON(res)
}

func explainCmd(args []string) {
	fs := flag.NewFlagSet("explain", flag.ExitOnError)
	var inPath string
	fs.StringVar(&inPath, "in", "", "validation errors file (JSON array)")
	_ = fs.Parse(args)
	if inPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	var errs []jsonmend.ValidationError
	if err := json.Unmarshal(readFile(inPath), &errs); err != nil {
		fatalf("%s: %s is not a sequence of validation errors: %v", jsonmend.CodeInvalidInput, inPath, err)
	}
	res, err := jsonmend.Explain(errs)
	if err != nil {
		fatalEngineErr(err)
	}
	printJSON(res)
}

func loadValue(path string) any {
	data := readFile(path)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		v, err := jsonmend.ValueFromYAML(data)
		if err != nil {
			fatalf("reading %s: %v", path, err)
		}
		return v
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		fatalf("reading %s: %v", path, err)
	}
	return v
}

func readFile(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("%v", err)
	}
	return data
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("encoding result: %v", err)
	}
	fmt.Println(string(out))
}

func fatalEngineErr(err error) {
	if ee, ok := jsonmend.AsError(err); ok {
		fatalf("%s: %s", ee.Code, ee.Message)
	}
	fatalf("%v", err)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
