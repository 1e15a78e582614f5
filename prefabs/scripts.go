package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/cyberfolio/easing"
)

// LoadEasings compiles every prefab script and registers it under its base
// name. A script that fails to compile is skipped and reported in the joined
// error; the others still register. onEvalErr receives runtime failures of the
// registered curves.
func LoadEasings(reg *easing.Registry, onEvalErr func(error)) ([]string, error) {
	paths, err := ScriptPaths()
	if err != nil {
		return nil, err
	}

	var (
		names []string
		errs  []error
	)
	for _, p := range paths {
		src, err := LoadScript(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("prefabs: load %s: %w", p, err))
			continue
		}
		name := easing.ScriptName(p)
		script, err := easing.CompileScript(name, src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reg.Register(name, script.Func(onEvalErr))
		names = append(names, name)
	}
	return names, errors.Join(errs...)
}
