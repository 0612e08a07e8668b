// Package cachekey derives deterministic cache keys from an operation tag
// and one or more content parts.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// separator joins the call type and content parts before hashing. A
// multi-character token keeps "ab"+"c" and "a"+"bc" from colliding.
const separator = "||"

// Key computes a SHA-256 digest over the call type and content parts,
// rendered as lowercase hex. Identical arguments always produce the same
// key; different call types over the same content never share a key.
func Key(callType string, parts ...string) string {
	combined := callType + separator + strings.Join(parts, separator)
	sum := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(sum[:])
}

// CanonicalJSON serializes v with stable map key ordering so that
// semantically identical structures always produce the same bytes. Used for
// multi-part keys built from graph records and analysis payloads.
func CanonicalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	// Round-trip through an untyped tree: encoding/json sorts map keys on
	// the second marshal, which removes any struct-order dependence.
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return "", err
	}
	out, err := json.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
