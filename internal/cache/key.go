package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// KeyParams identifies a cached lookup.
type KeyParams struct {
	// Operation names the cached call, e.g. "price".
	Operation string
	// Commodity and Market scope a price quote.
	Commodity string
	Market    string
	// Extra holds any further parameters; map order does not matter.
	Extra map[string]string
}

// ErrEmptyOperation is returned by GenerateKey when Operation is blank.
var ErrEmptyOperation = errors.New("cache key operation cannot be empty")

type normalizedParams struct {
	Operation string     `json:"op"`
	Commodity string     `json:"commodity,omitempty"`
	Market    string     `json:"market,omitempty"`
	Extra     [][]string `json:"extra,omitempty"`
}

// GenerateKey returns a SHA-256 hex digest of the normalised params.
// Values are trimmed and lower-cased and Extra is sorted by key, so
// equivalent parameter sets always produce the same key.
func GenerateKey(p KeyParams) (string, error) {
	n := normalizedParams{
		Operation: normalize(p.Operation),
		Commodity: normalize(p.Commodity),
		Market:    normalize(p.Market),
	}
	if n.Operation == "" {
		return "", ErrEmptyOperation
	}

	for k, v := range p.Extra {
		n.Extra = append(n.Extra, []string{normalize(k), normalize(v)})
	}
	sort.Slice(n.Extra, func(i, j int) bool {
		if n.Extra[i][0] != n.Extra[j][0] {
			return n.Extra[i][0] < n.Extra[j][0]
		}
		return n.Extra[i][1] < n.Extra[j][1]
	})

	data, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
