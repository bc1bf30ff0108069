/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package coerce

import (
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// DecodeVariablesJSON decodes a request's raw `variables` JSON object into a
// map that preserves the absent-key / explicit-null distinction jsonparser's
// ObjectEach already gives for free: it only invokes its callback for keys
// actually present in the object, and reports an explicit `null` value as
// jsonparser.Null rather than silently collapsing it. Nested arrays and
// objects fall back to gjson's generic Value() decode since their own
// absent/null structure is handled recursively by CoerceRaw, not by this
// decoder.
//
// raw may be empty or nil, in which case a nil map is returned - every
// lookup against it behaves as "absent", which is exactly the payload-less
// request case.
func DecodeVariablesJSON(raw []byte) (map[string]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make(map[string]interface{})

	err := jsonparser.ObjectEach(raw, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		k := string(key)
		switch dataType {
		case jsonparser.Null:
			out[k] = nil
		case jsonparser.String:
			// value arrives already unescaped by ObjectEach; no surrounding
			// quotes, so it is not itself valid standalone JSON.
			out[k] = string(value)
		case jsonparser.Number:
			f, err := jsonparser.ParseFloat(value)
			if err != nil {
				return errors.Wrapf(err, "decoding variable %q", k)
			}
			out[k] = f
		case jsonparser.Boolean:
			b, err := jsonparser.ParseBoolean(value)
			if err != nil {
				return errors.Wrapf(err, "decoding variable %q", k)
			}
			out[k] = b
		case jsonparser.Array, jsonparser.Object:
			res := gjson.ParseBytes(value)
			if !res.Exists() {
				return errors.Errorf("decoding variable %q: invalid JSON", k)
			}
			out[k] = res.Value()
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decoding variables payload")
	}

	return out, nil
}
