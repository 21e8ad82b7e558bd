package cheer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

type Target string

const (
	TargetAsm  Target = "asm"
	TargetLLVM Target = "llvm"
)

// Program is the output of a successful compilation.
type Program struct {
	Target Target
	Text   string
}

func (p *Program) String() string {
	return p.Text
}

type Option func(c *Compiler)

func WithTarget(target Target) Option {
	return func(c *Compiler) {
		c.target = target
	}
}

// WithPrintResult makes LLVM programs print their result. It has no effect on
// the assembly target.
func WithPrintResult(enable bool) Option {
	return func(c *Compiler) {
		c.printResult = enable
	}
}

// WithTrace writes the duration of every stage to w.
func WithTrace(w io.Writer) Option {
	return func(c *Compiler) {
		c.trace = w
	}
}

// Compiler runs the scan, parse, type check and generate stages. It only
// holds options; every compilation builds its own stage state.
type Compiler struct {
	target      Target
	printResult bool
	trace       io.Writer
}

func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{target: TargetAsm}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Compiler) Compile(filename string) (*Program, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	return c.CompileFromReader(f)
}

func (c *Compiler) CompileFromReader(reader io.Reader) (*Program, error) {
	src, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	return c.CompileString(string(src))
}

// CompileString returns either a program or exactly one of *ScanError,
// *ParseError and *TypeErrors, from the first stage that failed.
func (c *Compiler) CompileString(src string) (*Program, error) {
	var (
		tokens []Token
		root   Expr
		err    error
	)

	err = c.timed("scan", func() (err error) {
		tokens, err = Scan(src)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = c.timed("parse", func() (err error) {
		root, err = Parse(tokens)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = c.timed("check", func() error {
		return NewTypeChecker().Check(root)
	})
	if err != nil {
		return nil, err
	}

	prog := &Program{Target: c.target}
	err = c.timed("generate", func() error {
		gen, err := c.generator(root)
		if err != nil {
			return err
		}

		prog.Text = gen.Do().String()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return prog, nil
}

func (c *Compiler) generator(root Expr) (IRGenerator, error) {
	switch c.target {
	case TargetAsm:
		return NewAsmGenerator(root), nil
	case TargetLLVM:
		return NewLLVMGenerator(root).PrintResult(c.printResult), nil
	}

	return nil, fmt.Errorf("unknown target %q", c.target)
}

func (c *Compiler) timed(stage string, fn func() error) error {
	start := time.Now()
	err := fn()

	if c.trace != nil {
		fmt.Fprintf(c.trace, "trace: %-8s %s\n", stage, time.Since(start))
	}

	return err
}

// StageOf reports which stage produced err, if any.
func StageOf(err error) (Stage, bool) {
	var staged interface{ Stage() Stage }
	if errors.As(err, &staged) {
		return staged.Stage(), true
	}

	return "", false
}
