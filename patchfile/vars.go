package patchfile

import (
	"encoding/json"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
)

// EnvVar holds a JSON merge patch applied to the vars of every patch set.
const EnvVar = "APATCH_VARS"

// MergeVars applies the RFC 7386 merge patches to base, in order, and
// returns the result.  base is not modified.
func MergeVars(base map[string]any, patches ...[]byte) (map[string]any, error) {
	if base == nil {
		base = map[string]any{}
	}
	doc, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("error encoding vars: %w", err)
	}
	for i, p := range patches {
		if len(p) == 0 {
			continue
		}
		doc, err = jsonpatch.MergePatch(doc, p)
		if err != nil {
			return nil, fmt.Errorf("error applying vars patch %d: %w", i, err)
		}
	}
	res := map[string]any{}
	if err := json.Unmarshal(doc, &res); err != nil {
		return nil, fmt.Errorf("vars must be an object: %w", err)
	}
	return res, nil
}

// Env returns the vars of f patched by $APATCH_VARS and then by overrides.
func (f *File) Env(overrides ...[]byte) (map[string]any, error) {
	patches := make([][]byte, 0, len(overrides)+1)
	if v := os.Getenv(EnvVar); v != "" {
		patches = append(patches, []byte(v))
	}
	patches = append(patches, overrides...)
	return MergeVars(f.Vars, patches...)
}
