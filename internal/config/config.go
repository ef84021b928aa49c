// Package config loads the YAML problem files this module's CLI harness
// reads: the synthesis-target signature, the universally
// quantified variables, the specification, and the grammars to enumerate
// from. Grounded on funvibe-funxy's funxy.yaml loader (gopkg.in/yaml.v3,
// read-validate-default), adapted from a Go-extension manifest to a
// synthesis problem description.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProblemFile is the top-level shape of a problem YAML document.
type ProblemFile struct {
	// SynthFun names the unknown function being synthesized.
	SynthFun string `yaml:"synth_fun"`

	// Vars lists the universally quantified variables, in the order a
	// counterexample point's values line up with.
	Vars []VarSpec `yaml:"vars"`

	// RangeType is the type of the synthesized function's result.
	RangeType string `yaml:"range_type"`

	// Spec is the specification in prefix notation, mentioning SynthFun
	// applied to Vars and comparing it against an expected expression.
	Spec string `yaml:"spec"`

	// TermGrammar names the grammar to enumerate candidate terms from.
	TermGrammar GrammarSpec `yaml:"term_grammar"`

	// PredGrammar names the grammar to enumerate candidate guards from,
	// used only when term enumeration alone cannot find a single term
	// satisfying the specification.
	PredGrammar GrammarSpec `yaml:"pred_grammar,omitempty"`

	// MaxTermSize bounds term enumeration; MaxPredSize bounds predicate
	// enumeration within the unifier; MaxIterations bounds the outer
	// counterexample-guided loop.
	MaxTermSize   int `yaml:"max_term_size"`
	MaxPredSize   int `yaml:"max_pred_size"`
	MaxIterations int `yaml:"max_iterations"`
}

// VarSpec names one universally quantified variable and its type.
type VarSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// GrammarSpec names the nonterminal's type and the operators/leaves
// available to it. A grammar with an empty Operators list is leaf-only.
type GrammarSpec struct {
	Type      string   `yaml:"type"`
	Operators []string `yaml:"operators,omitempty"`
	Constants []string `yaml:"constants,omitempty"`
}

// Load reads and parses a problem file from path.
func Load(path string) (*ProblemFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problem file %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses problem file content from bytes. path is used only in
// error messages.
func Parse(data []byte, path string) (*ProblemFile, error) {
	var pf ProblemFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := pf.validate(path); err != nil {
		return nil, err
	}
	pf.setDefaults()
	return &pf, nil
}

func (pf *ProblemFile) validate(path string) error {
	if pf.SynthFun == "" {
		return fmt.Errorf("%s: synth_fun is required", path)
	}
	if len(pf.Vars) == 0 {
		return fmt.Errorf("%s: at least one variable is required", path)
	}
	if pf.RangeType == "" {
		return fmt.Errorf("%s: range_type is required", path)
	}
	if pf.Spec == "" {
		return fmt.Errorf("%s: spec is required", path)
	}
	if pf.TermGrammar.Type == "" {
		return fmt.Errorf("%s: term_grammar.type is required", path)
	}
	seen := make(map[string]bool, len(pf.Vars))
	for i, v := range pf.Vars {
		if v.Name == "" {
			return fmt.Errorf("%s: vars[%d]: name is required", path, i)
		}
		if seen[v.Name] {
			return fmt.Errorf("%s: vars[%d]: duplicate variable name %q", path, i, v.Name)
		}
		seen[v.Name] = true
		if v.Type == "" {
			return fmt.Errorf("%s: vars[%d] (%s): type is required", path, i, v.Name)
		}
	}
	return nil
}

func (pf *ProblemFile) setDefaults() {
	if pf.MaxTermSize == 0 {
		pf.MaxTermSize = 6
	}
	if pf.MaxPredSize == 0 {
		pf.MaxPredSize = 4
	}
	if pf.MaxIterations == 0 {
		pf.MaxIterations = 50
	}
}
