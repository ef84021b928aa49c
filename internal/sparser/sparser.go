// Package sparser parses the prefix-notation surface syntax this module's
// problem files and examples write specifications and types in: enough of
// an s-expression reader to cover spec.md's scenarios, not a general SMT-LIB
// front end.
package sparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/esolve/esolve/internal/theory"
	"github.com/esolve/esolve/pkg/synth"
)

// ParseType parses a type name: "Bool", "Int", or "BitVec(w)".
func ParseType(s string) (synth.Type, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "Bool":
		return synth.BoolType(), nil
	case s == "Int":
		return synth.IntType(), nil
	case strings.HasPrefix(s, "BitVec(") && strings.HasSuffix(s, ")"):
		inner := s[len("BitVec(") : len(s)-1]
		w, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil {
			return synth.Type{}, fmt.Errorf("sparser: invalid bit-vector width in %q: %w", s, err)
		}
		return synth.BitVecType(w), nil
	default:
		return synth.Type{}, fmt.Errorf("sparser: unknown type %q", s)
	}
}

// Env resolves the symbols an expression may refer to: variables by name,
// the one synthesis-target operator, and any value-theory operator via the
// registry.
type Env struct {
	Vars      map[string]*synth.VarDescriptor
	SynthFun  *synth.OperatorDescriptor
	Registry  *theory.Registry
}

// ParseExpr parses s as a single prefix-notation expression: a symbol (a
// variable or the synthesis-target application with zero args is never
// legal — it must always be applied with parens), a literal ("true",
// "false", an integer, "#x.."/"#b.." bit-vector), or a parenthesized
// application "(op arg1 arg2 ...)".
func ParseExpr(s string, env *Env) (*synth.Expr, error) {
	toks := tokenize(s)
	p := &parser{toks: toks, env: env}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("sparser: unexpected trailing input after %q", s)
	}
	return e, nil
}

func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

type parser struct {
	toks []string
	pos  int
	env  *Env
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (string, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) parseExpr() (*synth.Expr, error) {
	tok, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("sparser: unexpected end of input")
	}
	if tok == "(" {
		return p.parseApplication()
	}
	if tok == ")" {
		return nil, fmt.Errorf("sparser: unexpected ')'")
	}
	return p.parseAtom(tok)
}

func (p *parser) parseApplication() (*synth.Expr, error) {
	name, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("sparser: unexpected end of input after '('")
	}
	var args []*synth.Expr
	for {
		t, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("sparser: unterminated application %q", name)
		}
		if t == ")" {
			p.pos++
			break
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	if p.env.SynthFun != nil && name == p.env.SynthFun.Name {
		return synth.NewFunctionApp(p.env.SynthFun, args...), nil
	}

	argTypes := make([]synth.Type, len(args))
	for i, a := range args {
		argTypes[i] = a.Type()
	}
	op, ok := p.env.Registry.Instantiate(name, argTypes)
	if !ok {
		return nil, fmt.Errorf("sparser: unknown operator %q for argument types %v", name, argTypes)
	}
	return synth.NewFunctionApp(op, args...), nil
}

func (p *parser) parseAtom(tok string) (*synth.Expr, error) {
	switch {
	case tok == "true":
		return synth.NewConstant(synth.NewBoolValue(true)), nil
	case tok == "false":
		return synth.NewConstant(synth.NewBoolValue(false)), nil
	case strings.HasPrefix(tok, "#x"):
		bits, err := strconv.ParseUint(tok[2:], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("sparser: invalid hex bit-vector literal %q: %w", tok, err)
		}
		return synth.NewConstant(synth.NewBitVecValue(len(tok[2:])*4, bits)), nil
	case strings.HasPrefix(tok, "#b"):
		bits, err := strconv.ParseUint(tok[2:], 2, 64)
		if err != nil {
			return nil, fmt.Errorf("sparser: invalid binary bit-vector literal %q: %w", tok, err)
		}
		return synth.NewConstant(synth.NewBitVecValue(len(tok[2:]), bits)), nil
	default:
		if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return synth.NewConstant(synth.NewIntValue(n)), nil
		}
		if desc, ok := p.env.Vars[tok]; ok {
			return synth.NewVariable(desc), nil
		}
		return nil, fmt.Errorf("sparser: unbound symbol %q", tok)
	}
}
