// Command lcc compiles a single L source file and prints the full
// compiler report: a syntax-ok line, the AST, the scoped symbol table,
// and (absent semantic errors) the TAC listing.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/convcc/lcc/internal/compiler"
)

func main() {
	outDir := flag.String("o", "", "tee the report into <dir>/<stem>-result.txt as well as stdout")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lcc [-o dir] <file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	path := flag.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro: não foi possível abrir o arquivo '%s': %v\n", path, err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "erro: não foi possível criar o diretório de saída: %v\n", err)
			os.Exit(1)
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		reportPath := filepath.Join(*outDir, stem+"-result.txt")
		f, err := os.Create(reportPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "erro: não foi possível criar '%s': %v\n", reportPath, err)
			os.Exit(1)
		}
		defer f.Close()
		out = io.MultiWriter(os.Stdout, f)
	}

	res, err := compiler.Compile(source, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintln(out, "Programa sintaticamente correto!")
	fmt.Fprintln(out)
	printProgram(out, res.Program)

	fmt.Fprintln(out, "\nTabela de símbolos:")
	res.SymbolTable.Print(out)

	if res.HasError {
		os.Exit(1)
	}

	fmt.Fprintln(out)
	res.TAC.Print(out)
}
