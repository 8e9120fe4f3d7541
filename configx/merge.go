// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"encoding/json"

	"github.com/clinia/apix/jsonx"
	"github.com/pkg/errors"
	"github.com/tidwall/sjson"
)

// MergeAllTypes deep merges src into dst. Leaves of src win, arrays are replaced as a whole.
func MergeAllTypes(src, dst map[string]interface{}) error {
	rawSrc, err := json.Marshal(src)
	if err != nil {
		return errors.WithStack(err)
	}

	rawDst, err := json.Marshal(dst)
	if err != nil {
		return errors.WithStack(err)
	}

	for key, value := range jsonx.Flatten(rawSrc) {
		rawDst, err = sjson.SetBytes(rawDst, key, value)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	return errors.WithStack(json.Unmarshal(rawDst, &dst))
}
