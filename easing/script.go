package easing

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var ErrScriptResult = errors.New("easing: script did not return a number")

// The script must define `ease := func(t) { ... }`; this trailer evaluates it
// against the injected sample.
const scriptTrailer = `
__out := ease(__t)
`

// Script is a curve compiled from a tengo source. A compiled script carries
// mutable globals, so evaluation is serialized.
type Script struct {
	name string

	mu       sync.Mutex
	compiled *tengo.Compiled
}

// CompileScript compiles src into a scripted curve. Only the tengo math module
// is importable.
func CompileScript(name string, src []byte) (*Script, error) {
	body := string(src) + "\n" + scriptTrailer
	script := tengo.NewScript([]byte(body))
	if err := script.Add("__t", 0.0); err != nil {
		return nil, fmt.Errorf("easing: script %s: %w", name, err)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("easing: compile %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

// ScriptName derives the registry name from a script path,
// e.g. "scripts/elastic.tengo" -> "elastic".
func ScriptName(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *Script) Name() string {
	return s.name
}

// Eval runs the script for one sample.
func (s *Script) Eval(t float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.compiled.Set("__t", t); err != nil {
		return 0, fmt.Errorf("easing: script %s: %w", s.name, err)
	}
	if err := s.compiled.Run(); err != nil {
		return 0, fmt.Errorf("easing: run %s: %w", s.name, err)
	}

	var out float64
	switch v := s.compiled.Get("__out").Value().(type) {
	case float64:
		out = v
	case int64:
		out = float64(v)
	default:
		return 0, fmt.Errorf("%w: %s returned %T", ErrScriptResult, s.name, v)
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, fmt.Errorf("%w: %s returned %v", ErrScriptResult, s.name, out)
	}
	return out, nil
}

// Func adapts the script to a curve. A failing sample falls back to linear
// progress and is reported through onErr, which may be nil.
func (s *Script) Func(onErr func(error)) Func {
	return func(t float64) float64 {
		v, err := s.Eval(t)
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return t
		}
		return v
	}
}
