package billing

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentNumberFormat(t *testing.T) {
	at := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

	inv := NewInvoiceNumber(at)
	assert.True(t, strings.HasPrefix(inv, "INV-20250307-"))
	assert.Regexp(t, `^INV-20250307-[0-9A-F]{32}$`, inv)

	rcp := NewReceiptNumber(at)
	assert.True(t, strings.HasPrefix(rcp, "RCP-20250307-"))
	assert.Regexp(t, `^RCP-20250307-[0-9A-F]{32}$`, rcp)
}

func TestDocumentNumbersDistinctUnderConcurrency(t *testing.T) {
	const n = 200
	var (
		mu      sync.Mutex
		numbers = make(map[string]struct{}, n*2)
		wg      sync.WaitGroup
	)

	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			now := time.Now()
			inv := NewInvoiceNumber(now)
			rcp := NewReceiptNumber(now)
			mu.Lock()
			numbers[inv] = struct{}{}
			numbers[rcp] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, numbers, n*2)
}
