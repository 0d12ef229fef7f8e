// Package dedupe flags transactions already present in the destination
// store, keyed by the source system's transaction identifier.
package dedupe

import "github.com/kennedy-ak/expense/internal/statement"

// Mark sets IsDuplicate on every transaction whose external ID appears
// in known. Transactions without an external ID are never flagged: the
// source format does not guarantee a stable ID, so absence is not
// evidence of novelty. The known set is only read. Returns the number
// of transactions flagged.
func Mark(txs []statement.Transaction, known map[string]struct{}) int {
	flagged := 0
	for i := range txs {
		id := txs[i].ExternalID
		if id == "" {
			txs[i].IsDuplicate = false
			continue
		}
		_, exists := known[id]
		txs[i].IsDuplicate = exists
		if exists {
			flagged++
		}
	}
	return flagged
}
