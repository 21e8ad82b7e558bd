package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.cheer.dev/pkg"
)

var (
	output      = flag.String("o", "output.s", "Output file")
	target      = flag.String("target", "asm", "Output format (asm or llvm)")
	printResult = flag.Bool("print", false, "Print the result at run time (llvm target only)")
	emitTokens  = flag.Bool("emit-tokens", false, "Print the token stream and stop")
	emitAST     = flag.Bool("emit-ast", false, "Print the type checked AST and stop")
	trace       = flag.Bool("trace", false, "Print the duration of every stage")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: cheer [options] <file>\n\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	filename := flag.Arg(0)

	switch {
	case *emitTokens:
		os.Exit(runEmitTokens(filename))
	case *emitAST:
		os.Exit(runEmitAST(filename))
	}

	os.Exit(run(filename))
}

func run(filename string) int {
	opts := []cheer.Option{
		cheer.WithTarget(cheer.Target(*target)),
		cheer.WithPrintResult(*printResult),
	}
	if *trace {
		opts = append(opts, cheer.WithTrace(os.Stderr))
	}

	prog, err := cheer.NewCompiler(opts...).Compile(filename)
	if err != nil {
		printError(err)
		return 1
	}

	if err := os.WriteFile(*output, []byte(prog.Text), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	return 0
}

func runEmitTokens(filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	tokens, err := cheer.Scan(string(src))
	if err != nil {
		printError(err)
		return 1
	}

	for _, tok := range tokens {
		fmt.Println(tok)
	}

	return 0
}

func runEmitAST(filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	tokens, err := cheer.Scan(string(src))
	if err != nil {
		printError(err)
		return 1
	}

	root, err := cheer.Parse(tokens)
	if err != nil {
		printError(err)
		return 1
	}

	// The tree is printed even when checking fails so the error kinds show up
	checkErr := cheer.NewTypeChecker().Check(root)
	if err := cheer.Fprint(os.Stdout, root, true); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	fmt.Println()

	if checkErr != nil {
		printError(checkErr)
		return 1
	}

	return 0
}

func printError(err error) {
	stage, ok := cheer.StageOf(err)
	if !ok {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}

	var typeErrs *cheer.TypeErrors
	if errors.As(err, &typeErrs) {
		for _, e := range typeErrs.Errors {
			fmt.Fprintf(os.Stderr, "%s error: %s\n", stage, e)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "%s error: %s\n", stage, err)
}
