// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"fmt"
	"io"
	"strings"

	"github.com/clinia/apix/errorx"
	"github.com/knadh/koanf"
)

func (p *Provider) printHumanReadableValidationErrors(k *koanf.Koanf, w io.Writer, err error) {
	cerr, ok := errorx.IsCliniaError(err)
	if !ok {
		fmt.Fprintf(w, "An error occurred while validating the configuration: %s\n", err)
		return
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "The configuration contains values or keys which are invalid:")
	for _, d := range cerr.Details {
		path, _, _ := strings.Cut(d.Message, ":")
		key := strings.ReplaceAll(strings.TrimPrefix(path, "/"), "/", Delimiter)
		if key != "" && k.Exists(key) {
			fmt.Fprintf(w, "%s: %+v\n", key, k.Get(key))
		}
		fmt.Fprintf(w, "  %s\n", d.Message)
	}
	fmt.Fprintln(w, "")
}
