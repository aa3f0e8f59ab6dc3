// Package checks provides the built-in check kinds and builds a gate
// registry from profile definitions.
package checks

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/mergegate/internal/gate"
	"github.com/spboyer/mergegate/internal/projectconfig"
	"go.uber.org/multierr"
)

// Kind names a built-in check implementation.
type Kind string

const (
	// KindCommand runs an external command and inspects its exit code.
	KindCommand Kind = "command"
	// KindFilesExist requires every listed path to exist.
	KindFilesExist Kind = "files_exist"
	// KindFileContains requires a file to contain a substring.
	KindFileContains Kind = "file_contains"
)

// Kinds lists the built-in kinds in documentation order.
func Kinds() []Kind {
	return []Kind{KindCommand, KindFilesExist, KindFileContains}
}

// Create builds a check of the given kind, decoding params into the
// kind's argument struct.
func Create(kind Kind, name string, params map[string]any, opts ...gate.CheckOption) (gate.Check, error) {
	opts = append([]gate.CheckOption{gate.WithKind(string(kind))}, opts...)

	switch kind {
	case KindCommand:
		var args CommandArgs
		if err := decode(params, &args); err != nil {
			return gate.Check{}, fmt.Errorf("check %q: %w", name, err)
		}
		return NewCommandCheck(name, args, opts...)
	case KindFilesExist:
		var args FilesExistArgs
		if err := decode(params, &args); err != nil {
			return gate.Check{}, fmt.Errorf("check %q: %w", name, err)
		}
		return NewFilesExistCheck(name, args, opts...)
	case KindFileContains:
		var args FileContainsArgs
		if err := decode(params, &args); err != nil {
			return gate.Check{}, fmt.Errorf("check %q: %w", name, err)
		}
		return NewFileContainsCheck(name, args, opts...)
	default:
		return gate.Check{}, fmt.Errorf("check %q: '%s' is not a valid check kind", name, kind)
	}
}

// BuildRegistry creates every check in defs and registers them in order.
// All definition problems are reported together; duplicate names surface
// as *gate.DuplicateNameError.
func BuildRegistry(defs []projectconfig.CheckConfig) (*gate.Registry, error) {
	reg := gate.NewRegistry()
	var errs error
	for _, def := range defs {
		var opts []gate.CheckOption
		if d := def.TimeoutDuration(); d > 0 {
			opts = append(opts, gate.WithTimeout(d))
		}

		c, err := Create(Kind(def.Kind), def.Name, def.With, opts...)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		errs = multierr.Append(errs, reg.Register(c))
	}
	if errs != nil {
		return nil, errs
	}
	return reg, nil
}

func decode(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(params)
}
