// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"context"
	"strings"

	"github.com/clinia/apix/errorx"
	"github.com/clinia/apix/loggerx"
	"github.com/clinia/apix/schemax"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"
)

const (
	Delimiter        = "."
	DefaultEnvPrefix = "APIX_"
)

type tuple struct {
	Key   string
	Value interface{}
}

// Provider loads configuration from, in increasing precedence: base values, config files,
// raw config data, environment variables, command line flags and forced values. Flags left to
// their default only fill keys no other source set. The merged result is
// validated against a JSON Schema.
type Provider struct {
	*koanf.Koanf

	schema *schemax.JSONSchema

	files             []string
	data              [][]byte
	flags             *pflag.FlagSet
	envPrefix         string
	disableEnvLoading bool
	skipValidation    bool
	forcedValues      []tuple
	baseValues        map[string]interface{}
	modifierErrs      []error
	onValidationError func(k *koanf.Koanf, err error)
	logger            *loggerx.Logger
}

// New loads and validates the configuration described by schema.
func New(ctx context.Context, schema []byte, modifiers ...OptionModifier) (*Provider, error) {
	s, err := schemax.NewJSONSchema(ctx, schema)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		Koanf:             koanf.New(Delimiter),
		schema:            s,
		envPrefix:         DefaultEnvPrefix,
		baseValues:        map[string]interface{}{},
		onValidationError: func(k *koanf.Koanf, err error) {},
		logger:            loggerx.Default(),
	}

	for _, m := range modifiers {
		m(p)
	}
	if len(p.modifierErrs) > 0 {
		return nil, p.modifierErrs[0]
	}

	if err := p.load(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Provider) load(ctx context.Context) error {
	k := koanf.New(Delimiter)

	if err := k.Load(confmap.Provider(p.baseValues, Delimiter), nil); err != nil {
		return errors.WithStack(err)
	}

	for _, f := range p.files {
		if err := k.Load(file.Provider(f), json.Parser()); err != nil {
			return errorx.InvalidArgumentErrorf("unable to load config file %q: %s", f, err).WithOriginalError(err)
		}
	}

	for _, raw := range p.data {
		if err := k.Load(rawbytes.Provider(raw), json.Parser()); err != nil {
			return errorx.InvalidArgumentErrorf("unable to parse config data: %s", err).WithOriginalError(err)
		}
	}

	if !p.disableEnvLoading {
		if err := k.Load(env.ProviderWithValue(p.envPrefix, Delimiter, p.envKeyValue), nil); err != nil {
			return errors.WithStack(err)
		}
	}

	// Forced values are loaded before the flags so that unchanged flag defaults do not shadow
	// them, and once more after so that they win over changed flags.
	forced := confmap.Provider(tuplesToMap(p.forcedValues), Delimiter)
	if err := k.Load(forced, nil); err != nil {
		return errors.WithStack(err)
	}

	if p.flags != nil {
		if err := k.Load(posflag.Provider(p.flags, Delimiter, k), nil); err != nil {
			return errors.WithStack(err)
		}
	}

	if err := k.Load(forced, nil); err != nil {
		return errors.WithStack(err)
	}

	if !p.skipValidation {
		if err := p.validate(k); err != nil {
			p.onValidationError(k, err)
			return err
		}
	}

	p.Koanf = k
	p.logger.Debug(ctx, "configuration loaded", attribute.StringSlice("keys", k.Keys()))
	return nil
}

func (p *Provider) validate(k *koanf.Koanf) error {
	res := p.schema.SafeParse(k.Raw())
	if res.Success {
		return nil
	}

	details := make([]*errorx.CliniaError, 0, len(res.Issues))
	for _, issue := range res.Issues {
		details = append(details, errorx.InvalidArgumentErrorf("%s", issue))
	}
	return errorx.InvalidArgumentErrorf("the configuration contains values or keys which are invalid").
		WithDetails(details...).
		WithOriginalError(res.Issues)
}

// envKeyValue maps APIX_LOG__INCLUDE_QUERY=true to log.include_query=true.
func (p *Provider) envKeyValue(key string, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, p.envPrefix))
	key = strings.ReplaceAll(key, "__", Delimiter)
	switch value {
	case "true", "false":
		return key, value == "true"
	default:
		return key, value
	}
}

func tuplesToMap(tuples []tuple) map[string]interface{} {
	out := make(map[string]interface{}, len(tuples))
	for _, t := range tuples {
		out[t.Key] = t.Value
	}
	return out
}
