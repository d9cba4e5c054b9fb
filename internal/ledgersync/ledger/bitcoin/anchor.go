package bitcoin

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

var anchorMagic = []byte("LSY1")

// MaxRecordIDLength is the longest record ID that fits next to the magic and
// hash in a standard null-data push.
const MaxRecordIDLength = txscript.MaxDataCarrierSize - 4 - chainhash.HashSize

// EncodeAnchor builds the OP_RETURN script that anchors hash for recordID.
func EncodeAnchor(recordID, hash string) ([]byte, error) {
	if recordID == "" {
		return nil, fmt.Errorf("empty record id: %w", model.ErrLedgerRejected)
	}
	if len(recordID) > MaxRecordIDLength {
		return nil, fmt.Errorf("record id %q longer than %d bytes: %w", recordID, MaxRecordIDLength, model.ErrLedgerRejected)
	}
	if !model.ValidHash(hash) {
		return nil, fmt.Errorf("malformed hash %q: %w", hash, model.ErrLedgerRejected)
	}
	digest, err := hex.DecodeString(hash)
	if err != nil {
		return nil, fmt.Errorf("decode hash: %w", model.ErrLedgerRejected)
	}

	data := make([]byte, 0, len(anchorMagic)+len(digest)+len(recordID))
	data = append(data, anchorMagic...)
	data = append(data, digest...)
	data = append(data, recordID...)

	script, err := txscript.NullDataScript(data)
	if err != nil {
		return nil, fmt.Errorf("build null data script: %w: %w", model.ErrLedgerRejected, err)
	}
	return script, nil
}

// DecodeAnchor extracts the record ID and hash from an anchoring script.
func DecodeAnchor(script []byte) (recordID, hash string, ok bool) {
	if txscript.GetScriptClass(script) != txscript.NullDataTy {
		return "", "", false
	}
	pushes, err := txscript.PushedData(script)
	if err != nil || len(pushes) != 1 {
		return "", "", false
	}
	data := pushes[0]
	if len(data) <= len(anchorMagic)+chainhash.HashSize || !bytes.HasPrefix(data, anchorMagic) {
		return "", "", false
	}
	digest := data[len(anchorMagic) : len(anchorMagic)+chainhash.HashSize]
	return string(data[len(anchorMagic)+chainhash.HashSize:]), hex.EncodeToString(digest), true
}

// anchorsOf returns every anchor carried by the outputs of tx.
func anchorsOf(tx btcjson.TxRawResult) []anchor {
	var out []anchor
	for _, vout := range tx.Vout {
		if vout.ScriptPubKey.Type != "" && vout.ScriptPubKey.Type != txscript.NullDataTy.String() {
			continue
		}
		script, err := hex.DecodeString(vout.ScriptPubKey.Hex)
		if err != nil {
			continue
		}
		if recordID, hash, ok := DecodeAnchor(script); ok {
			out = append(out, anchor{recordID: recordID, hash: hash})
		}
	}
	return out
}

type anchor struct {
	recordID string
	hash     string
}
