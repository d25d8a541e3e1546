package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/model"
)

// Document is the persisted and backup shape: {"transactions": [...]}.
type Document struct {
	Transactions []model.Transaction `json:"transactions"`
}

// DecodeDocument parses data after checking that it is an object whose
// transactions member is an array. Shape failures are *common.ImportFormatError.
func DecodeDocument(data []byte) (Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Document{}, common.NewImportFormatError("not a JSON object", err)
	}

	raw, ok := top["transactions"]
	if !ok {
		return Document{}, common.NewImportFormatError(`missing "transactions" field`, nil)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return Document{}, common.NewImportFormatError(`"transactions" is not an array`, nil)
	}

	var txns []model.Transaction
	if err := json.Unmarshal(raw, &txns); err != nil {
		return Document{}, common.NewImportFormatError("malformed transaction entry", err)
	}
	if txns == nil {
		txns = []model.Transaction{}
	}

	return Document{Transactions: txns}, nil
}

// Encode serializes doc. Indented output is used for backup files.
func Encode(doc Document, indent bool) ([]byte, error) {
	if doc.Transactions == nil {
		doc.Transactions = []model.Transaction{}
	}

	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// checkIdentities rejects documents whose ids are missing or repeated.
func checkIdentities(txns []model.Transaction) error {
	seen := make(map[int64]int, len(txns))
	for i, txn := range txns {
		if txn.ID == 0 {
			return common.NewImportFormatError(fmt.Sprintf("transaction at index %d has no id", i), nil)
		}
		if prev, dup := seen[txn.ID]; dup {
			return common.NewImportFormatError(
				fmt.Sprintf("transaction id %d repeated at index %d and %d", txn.ID, prev, i), nil)
		}
		seen[txn.ID] = i
	}
	return nil
}

// checkEntries runs model validation on every entry.
func checkEntries(txns []model.Transaction) error {
	for i := range txns {
		if err := txns[i].Validate(); err != nil {
			return common.NewImportFormatError(
				fmt.Sprintf("transaction %d at index %d is invalid", txns[i].ID, i), err)
		}
	}
	return nil
}
