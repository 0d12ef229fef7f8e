package dedupe

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"

	"github.com/kennedy-ak/expense/internal/statement"
)

func TestMark(t *testing.T) {
	t.Run("flags exactly the known IDs", func(t *testing.T) {
		txs := []statement.Transaction{
			{ExternalID: "69366086327"},
			{ExternalID: "69366086401"},
			{ExternalID: "11111111111"},
		}
		known := map[string]struct{}{
			"69366086327": {},
			"11111111111": {},
		}

		flagged := Mark(txs, known)

		assert.Equal(t, 2, flagged)
		assert.True(t, txs[0].IsDuplicate)
		assert.False(t, txs[1].IsDuplicate)
		assert.True(t, txs[2].IsDuplicate)
	})

	t.Run("missing external ID is never a duplicate", func(t *testing.T) {
		txs := []statement.Transaction{{ExternalID: ""}}
		known := map[string]struct{}{"": {}}

		flagged := Mark(txs, known)

		assert.Equal(t, 0, flagged)
		assert.False(t, txs[0].IsDuplicate)
	})

	t.Run("re-marking clears stale flags", func(t *testing.T) {
		txs := []statement.Transaction{{ExternalID: "abc", IsDuplicate: true}}

		Mark(txs, map[string]struct{}{})

		assert.False(t, txs[0].IsDuplicate)
	})

	t.Run("empty batch and nil set", func(t *testing.T) {
		assert.Equal(t, 0, Mark(nil, nil))
	})
}

func TestMark_GeneratedBatch(t *testing.T) {
	faker := gofakeit.New(42)

	txs := make([]statement.Transaction, 200)
	known := make(map[string]struct{})
	wantFlagged := 0
	for i := range txs {
		id := fmt.Sprintf("%011d", 69_000_000_000+i)
		txs[i] = statement.Transaction{
			ExternalID:       id,
			CounterpartyName: faker.Name(),
		}
		// Every third transaction is already in the store.
		if i%3 == 0 {
			known[id] = struct{}{}
			wantFlagged++
		}
	}

	flagged := Mark(txs, known)

	assert.Equal(t, wantFlagged, flagged)
	for i := range txs {
		_, exists := known[txs[i].ExternalID]
		assert.Equal(t, exists, txs[i].IsDuplicate, "transaction %d", i)
	}
}
