package sequence_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gso/sequence"
	"gso/store"
	"gso/store/memstore"
)

func TestFormatDocumentNumber(t *testing.T) {
	assert.Equal(t, "PTR-2024-0007", sequence.FormatDocumentNumber("PTR", 2024, 7))
	assert.Equal(t, "IIRUP-2025-0012", sequence.FormatDocumentNumber("IIRUP", 2025, 12))
	assert.Equal(t, "RIS-2024-12345", sequence.FormatDocumentNumber("RIS", 2024, 12345))
}

func TestFormatPropertyNumber(t *testing.T) {
	assert.Equal(t, "2024-05-06-07-0001", sequence.FormatPropertyNumber(2024, "05", "06", "07", 1))
	assert.Equal(t, "2024-05-06-07-0023", sequence.FormatPropertyNumber(2024, "05", "06", "07", 23))
}

func TestDocumentNumbersStartAtOnePerKindAndYear(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()

	jan2024 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	jan2025 := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	var got []string
	err := st.InTx(ctx, func(tx store.Tx) error {
		for _, c := range []struct {
			kind string
			now  time.Time
		}{
			{"PTR", jan2024},
			{"PTR", jan2024},
			{"IIRUP", jan2024},
			{"PTR", jan2025},
		} {
			n, err := sequence.NextDocumentNumber(ctx, tx, c.kind, c.now)
			if err != nil {
				return err
			}
			got = append(got, n)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"PTR-2024-0001", "PTR-2024-0002", "IIRUP-2024-0001", "PTR-2025-0001"}, got)
}

func TestNextPropertyNumbersBlockIsContiguous(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	var first, second []string
	err := st.InTx(ctx, func(tx store.Tx) error {
		var err error
		first, err = sequence.NextPropertyNumbers(ctx, tx, now, "05", "06", "07", 3)
		if err != nil {
			return err
		}
		second, err = sequence.NextPropertyNumbers(ctx, tx, now, "05", "06", "07", 2)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-06-07-0001", "2024-05-06-07-0002", "2024-05-06-07-0003"}, first)
	assert.Equal(t, []string{"2024-05-06-07-0004", "2024-05-06-07-0005"}, second)
}

func TestNextPropertyNumbersRejectsZeroCount(t *testing.T) {
	st := memstore.New()
	err := st.InTx(context.Background(), func(tx store.Tx) error {
		_, err := sequence.NextPropertyNumbers(context.Background(), tx, time.Now(), "05", "06", "07", 0)
		return err
	})
	assert.Error(t, err)
}

// Concurrent allocators must never receive overlapping blocks: the union
// of all reserved numbers is exactly 1..total with no gaps or repeats.
func TestConcurrentAllocationIsDisjoint(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()

	const workers = 16
	const perWorker = 5

	var mu sync.Mutex
	var all []int64

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last, err := st.NextSequence(ctx, "PN-2024-05-06-07", perWorker)
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			for n := last - perWorker + 1; n <= last; n++ {
				all = append(all, n)
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, all, workers*perWorker)
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	for i, n := range all {
		assert.Equal(t, int64(i+1), n)
	}
}
