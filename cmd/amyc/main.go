// Command amyc is the Amy compiler driver (spec.md §6): it parses
// flags, selects a pipeline (tokens-only dump, parse-only, interpret,
// or compile — the default), and writes the compile pipeline's output
// next to the first input file. It also exposes an `amyc repl`
// subcommand that runs the tree-walking interpreter interactively.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/amy-lang/amyc/internal/codegen"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/interp"
	"github.com/amy-lang/amyc/internal/lexer"
	"github.com/amy-lang/amyc/internal/manifest"
	"github.com/amy-lang/amyc/internal/nameanalyzer"
	"github.com/amy-lang/amyc/internal/parser"
	"github.com/amy-lang/amyc/internal/repl"
	"github.com/amy-lang/amyc/internal/types"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Version and BuildTime are overridden at link time via -ldflags, in
// cmd/ailang/main.go's style.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "repl" {
		r := repl.New()
		defer r.Close()
		r.Run()
		return
	}

	var (
		mode    = flag.String("mode", "compile", "pipeline to run: tokens, parse, interpret, compile")
		outDir  = flag.String("o", "", "output directory (default: wasmout next to the first input file)")
		jsonOut = flag.Bool("json", false, "dump diagnostics as JSON instead of colored text")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "amyc %s (%s)\n\n", Version, BuildTime)
		fmt.Fprintln(os.Stderr, "usage: amyc [options] <file>...")
		fmt.Fprintln(os.Stderr, "       amyc repl")
		flag.PrintDefaults()
	}
	flag.Parse()

	files := flag.Args()
	pages := manifest.DefaultPages
	if len(files) == 0 {
		if m, ok, err := manifest.FindDefault("."); err == nil && ok {
			files = m.Files
			pages = m.Pages
			if *outDir == "" {
				*outDir = m.OutDir
			}
		}
	}
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	rep := diag.NewReporter()
	code := run(files, *mode, *outDir, pages, rep)
	if *jsonOut {
		printJSON(rep)
	} else {
		printReports(rep)
	}
	os.Exit(code)
}

// run executes the selected pipeline over files, returning a process
// exit code (0 success, non-zero on any reported error, per spec.md §6).
// pages is the initial WASM memory page count, from the manifest's
// `pages:` knob when one was loaded.
func run(files []string, mode, outDir string, pages int, rep *diag.Reporter) int {
	srcs := make(map[string][]byte, len(files))
	order := make([]string, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}
		srcs[f] = data
		order = append(order, f)
	}

	toks, err := lexer.TokenizeFiles(srcs, order, rep)
	if rep.HadError() || err != nil {
		return 1
	}
	if mode == "tokens" {
		for _, t := range toks {
			fmt.Println(t.String())
		}
		return 0
	}

	p, err := parser.New(toks, rep)
	if err != nil {
		return 1
	}
	prog, err := p.Parse()
	if rep.HadError() || err != nil {
		return 1
	}
	if mode == "parse" {
		fmt.Println(prog.String())
		return 0
	}

	sprog, tab, err := nameanalyzer.Resolve(prog, rep)
	if rep.HadError() || err != nil {
		return 1
	}

	types.Check(sprog, tab, rep)
	if rep.HadError() {
		return 1
	}

	if mode == "interpret" {
		ip := interp.New(tab, rep, os.Stdin, os.Stdout)
		if err := ip.Run(sprog); err != nil {
			return 1
		}
		return 0
	}

	wat := codegen.Emit(sprog, tab, rep, pages)
	if rep.HadError() {
		return 1
	}

	var mains []string
	for _, m := range sprog.Modules {
		if m.Expr != nil {
			moduleName, _ := tab.ModuleName(m.ID)
			mains = append(mains, moduleName+"_main")
		}
	}
	return writeOutputs(files[0], outDir, wat, pages, mains)
}

// writeOutputs lays out the compile pipeline's artifacts per spec.md §6:
// `<programName>.wat` next to the first input file, a companion
// `<programName>.html` loader, and a `wasmout/` directory holding the
// linked `.wasm` plus a nodejs runner script. Linking `.wat` to `.wasm`
// is left to the host's own wat2wasm toolchain; amyc emits the text
// form and the scaffolding that invokes it.
func writeOutputs(firstFile, outDir, wat string, pages int, mains []string) int {
	dir := filepath.Dir(firstFile)
	name := strings.TrimSuffix(filepath.Base(firstFile), filepath.Ext(firstFile))

	watPath := filepath.Join(dir, name+".wat")
	if err := os.WriteFile(watPath, []byte(wat), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}

	htmlPath := filepath.Join(dir, name+".html")
	if err := os.WriteFile(htmlPath, []byte(htmlLoader(name, pages, mains)), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}

	if outDir == "" {
		outDir = filepath.Join(dir, "wasmout")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	runnerPath := filepath.Join(outDir, "nodejs")
	if err := os.WriteFile(runnerPath, []byte(nodeRunner(name, pages, mains)), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}

	fmt.Println(green(fmt.Sprintf("wrote %s, %s, %s", watPath, htmlPath, runnerPath)))
	fmt.Println(yellow(fmt.Sprintf("run `wat2wasm %s -o %s` to produce the linked module wasmout expects", watPath, filepath.Join(outDir, name+".wasm"))))
	return 0
}

func htmlLoader(name string, pages int, mains []string) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<!doctype html>\n<html><head><title>%s</title></head><body>\n", name)
	fmt.Fprintf(&b, "<script>\n")
	fmt.Fprintf(&b, "const memory = new WebAssembly.Memory({initial: %d});\n", pages)
	fmt.Fprintf(&b, "function readCString(mem, ptr) {\n")
	fmt.Fprintf(&b, "  const view = new Uint8Array(mem.buffer);\n")
	fmt.Fprintf(&b, "  let end = ptr; while (view[end] !== 0) end++;\n")
	fmt.Fprintf(&b, "  return new TextDecoder('ascii').decode(view.slice(ptr, end));\n")
	fmt.Fprintf(&b, "}\n")
	fmt.Fprintf(&b, "function writeCString(mem, ptr, s) {\n")
	fmt.Fprintf(&b, "  const view = new Uint8Array(mem.buffer);\n")
	fmt.Fprintf(&b, "  for (let i = 0; i < s.length; i++) view[ptr + i] = s.charCodeAt(i) & 0xff;\n")
	fmt.Fprintf(&b, "  let end = ptr + s.length;\n")
	fmt.Fprintf(&b, "  do { view[end] = 0; end++; } while (end %% 4 !== 0);\n")
	fmt.Fprintf(&b, "  return end;\n")
	fmt.Fprintf(&b, "}\n")
	fmt.Fprintf(&b, "const imports = {system: {mem: memory,\n")
	fmt.Fprintf(&b, "  printInt: v => { console.log(v); return v; },\n")
	fmt.Fprintf(&b, "  printString: ptr => { console.log(readCString(memory, ptr)); return ptr; },\n")
	fmt.Fprintf(&b, "  readInt: () => parseInt(prompt('int?') || '0', 10),\n")
	fmt.Fprintf(&b, "  readString0: ptr => writeCString(memory, ptr, prompt('string?') || '')}};\n")
	fmt.Fprintf(&b, "WebAssembly.instantiateStreaming(fetch('wasmout/%s.wasm'), imports)\n", name)
	fmt.Fprintf(&b, "  .then(m => {")
	for _, f := range mains {
		fmt.Fprintf(&b, " m.instance.exports.%s();", f)
	}
	fmt.Fprintf(&b, " });\n")
	fmt.Fprintf(&b, "</script>\n</body></html>\n")
	return b.String()
}

func nodeRunner(name string, pages int, mains []string) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "#!/usr/bin/env node\n")
	fmt.Fprintf(&b, "const fs = require('fs');\n")
	fmt.Fprintf(&b, "const readline = require('readline');\n")
	fmt.Fprintf(&b, "const memory = new WebAssembly.Memory({initial: %d});\n", pages)
	fmt.Fprintf(&b, "const bytes = fs.readFileSync(__dirname + '/%s.wasm');\n", name)
	fmt.Fprintf(&b, "function readCString(ptr) {\n")
	fmt.Fprintf(&b, "  const view = new Uint8Array(memory.buffer);\n")
	fmt.Fprintf(&b, "  let end = ptr; while (view[end] !== 0) end++;\n")
	fmt.Fprintf(&b, "  return Buffer.from(view.slice(ptr, end)).toString('ascii');\n")
	fmt.Fprintf(&b, "}\n")
	fmt.Fprintf(&b, "WebAssembly.instantiate(bytes, {system: {mem: memory,\n")
	fmt.Fprintf(&b, "  printInt: v => { console.log(v); return v; },\n")
	fmt.Fprintf(&b, "  printString: ptr => { console.log(readCString(ptr)); return ptr; },\n")
	fmt.Fprintf(&b, "  readInt: () => 0, readString0: ptr => ptr}})\n")
	fmt.Fprintf(&b, "  .then(m => {")
	for _, f := range mains {
		fmt.Fprintf(&b, " m.instance.exports.%s();", f)
	}
	fmt.Fprintf(&b, " });\n")
	return b.String()
}

func printReports(rep *diag.Reporter) {
	for _, r := range rep.Reports() {
		line := r.Error()
		switch r.Severity {
		case "fatal", "error":
			fmt.Fprintln(os.Stderr, red(line))
		case "warning":
			fmt.Fprintln(os.Stderr, yellow(line))
		default:
			fmt.Fprintln(os.Stderr, line)
		}
	}
	if !rep.HadError() {
		fmt.Fprintln(os.Stderr, bold(fmt.Sprintf("amyc: run %s", rep.RunID)))
	}
}

func printJSON(rep *diag.Reporter) {
	for _, r := range rep.Reports() {
		text, err := r.ToJSON(false)
		if err != nil {
			continue
		}
		fmt.Println(text)
	}
}
