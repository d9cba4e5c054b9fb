package model

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashLength is the length of a hex-encoded canonical hash.
const HashLength = chainhash.HashSize * 2

// maxNumberExponent bounds the decimal exponent accepted in payload numbers.
const maxNumberExponent = 1000

// Payload holds the mutable business fields of a record.
type Payload map[string]any

// Clone returns a deep copy of the payload.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return map[string]any(Payload(value).Clone())
	case Payload:
		return value.Clone()
	case []any:
		out := make([]any, len(value))
		for i := range value {
			out[i] = cloneValue(value[i])
		}
		return out
	default:
		return value
	}
}

// DecodePayload decodes a JSON object keeping numbers as json.Number so large
// integers survive unchanged.
func DecodePayload(raw []byte) (Payload, error) {
	var p Payload
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}

// CanonicalJSON serializes the payload with object keys sorted at every depth
// and every number rewritten to its shortest exact decimal literal, so 12 and
// 12.0 agree while integers beyond float64 precision stay distinct.
func (p Payload) CanonicalJSON() ([]byte, error) {
	if p == nil {
		p = Payload{}
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	var normalized any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&normalized); err != nil {
		return nil, fmt.Errorf("normalize payload: %w", err)
	}
	normalized, err = canonicalNumbers(normalized)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, fmt.Errorf("encode canonical payload: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func canonicalNumbers(v any) (any, error) {
	switch value := v.(type) {
	case map[string]any:
		for k, item := range value {
			n, err := canonicalNumbers(item)
			if err != nil {
				return nil, err
			}
			value[k] = n
		}
		return value, nil
	case []any:
		for i, item := range value {
			n, err := canonicalNumbers(item)
			if err != nil {
				return nil, err
			}
			value[i] = n
		}
		return value, nil
	case json.Number:
		return canonicalNumber(value)
	default:
		return value, nil
	}
}

// canonicalNumber renders n as an integer when it has no fractional part and
// otherwise as a plain decimal with the fewest digits that keep it exact.
func canonicalNumber(n json.Number) (json.Number, error) {
	if i := strings.IndexAny(n.String(), "eE"); i >= 0 {
		exp, err := strconv.Atoi(n.String()[i+1:])
		if err != nil || exp > maxNumberExponent || exp < -maxNumberExponent {
			return "", fmt.Errorf("normalize number %q: exponent out of range", n.String())
		}
	}
	r, ok := new(big.Rat).SetString(n.String())
	if !ok {
		return "", fmt.Errorf("normalize number %q", n.String())
	}
	if r.IsInt() {
		return json.Number(r.Num().String()), nil
	}
	digits := 0
	ten := new(big.Rat).SetInt64(10)
	scaled := new(big.Rat).Set(r)
	for !scaled.IsInt() {
		scaled.Mul(scaled, ten)
		digits++
	}
	return json.Number(r.FloatString(digits)), nil
}

// CanonicalHash returns the hex-encoded SHA-256 of the canonical payload.
func (p Payload) CanonicalHash() (string, error) {
	b, err := p.CanonicalJSON()
	if err != nil {
		return "", err
	}
	h := chainhash.HashH(b)
	return hex.EncodeToString(h[:]), nil
}

// ValidHash reports whether h looks like a canonical hash.
func ValidHash(h string) bool {
	if len(h) != HashLength {
		return false
	}
	for _, c := range h {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
