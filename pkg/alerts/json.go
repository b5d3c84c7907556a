package alerts

import (
	"bytes"
	"encoding/json"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/pkg/errors"
)

// AttachJSON sets the dotted path of a JSON object body to the public wire
// form of list, creating intermediate objects and overwriting any existing
// value. Bodies that are not JSON objects are returned unchanged.
func AttachJSON(body []byte, path string, list []*Alert) ([]byte, error) {
	if path == "" {
		path = DefaultKey
	}
	if !isObject(body) {
		return body, nil
	}

	plain := make([]Plain, 0, len(list))
	for _, a := range list {
		plain = append(plain, a.Plain())
	}

	var value interface{} = plain
	segments := strings.Split(path, ".")
	for i := len(segments) - 1; i >= 0; i-- {
		value = map[string]interface{}{segments[i]: value}
	}

	patch, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Wrap(err, "encode alerts patch")
	}
	merged, err := jsonpatch.MergePatch(body, patch)
	if err != nil {
		return nil, errors.Wrapf(ErrDataFormat, "merge alerts into body: %v", err)
	}
	return merged, nil
}

func isObject(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}
