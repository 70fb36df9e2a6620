package revision

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

const revisionLength = 16

// ConfigRevision returns a deterministic revision string derived from the
// key/value content of a ConfigMap mounted into the plugin pods. Stamping it
// on the pod template rolls the pods when the content changes.
func ConfigRevision(data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, data[k])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:revisionLength]
}
