// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"io"
	"os"

	"github.com/clinia/apix/loggerx"
	"github.com/knadh/koanf"
	"github.com/spf13/pflag"
)

type (
	OptionModifier func(p *Provider)
)

func WithConfigFiles(files ...string) OptionModifier {
	return func(p *Provider) {
		p.files = append(p.files, files...)
	}
}

// WithConfigData loads a json document right after the config files.
func WithConfigData(raw []byte) OptionModifier {
	return func(p *Provider) {
		p.data = append(p.data, raw)
	}
}

func WithFlags(flags *pflag.FlagSet) OptionModifier {
	return func(p *Provider) {
		p.flags = flags
	}
}

func WithLogger(l *loggerx.Logger) OptionModifier {
	return func(p *Provider) {
		p.logger = l
	}
}

func SkipValidation() OptionModifier {
	return func(p *Provider) {
		p.skipValidation = true
	}
}

func DisableEnvLoading() OptionModifier {
	return func(p *Provider) {
		p.disableEnvLoading = true
	}
}

// WithEnvPrefix loads environment variables starting with prefix. A double underscore separates
// nested keys: APIX_LOG__INCLUDE_QUERY sets log.include_query.
func WithEnvPrefix(prefix string) OptionModifier {
	return func(p *Provider) {
		p.envPrefix = prefix
	}
}

func WithValue(key string, value interface{}) OptionModifier {
	return func(p *Provider) {
		p.forcedValues = append(p.forcedValues, tuple{Key: key, Value: value})
	}
}

func WithValues(values map[string]interface{}) OptionModifier {
	return func(p *Provider) {
		for key, value := range values {
			p.forcedValues = append(p.forcedValues, tuple{Key: key, Value: value})
		}
	}
}

// WithBaseValues sets the lowest precedence values. Repeated calls are deep merged.
func WithBaseValues(values map[string]interface{}) OptionModifier {
	return func(p *Provider) {
		if err := MergeAllTypes(values, p.baseValues); err != nil {
			p.modifierErrs = append(p.modifierErrs, err)
		}
	}
}

func WithStderrValidationReporter() OptionModifier {
	return WithStandardValidationReporter(os.Stderr)
}

func WithStandardValidationReporter(w io.Writer) OptionModifier {
	return func(p *Provider) {
		p.onValidationError = func(k *koanf.Koanf, err error) {
			p.printHumanReadableValidationErrors(k, w, err)
		}
	}
}
