package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// OrderFilter tracks gateway order ids issued by this instance so the
// webhook handler can cheaply reject callbacks that cannot possibly
// match an order, before touching the database. False positives fall
// through to the database lookup, which stays authoritative.
type OrderFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewOrderFilter creates an order filter sized for the expected number
// of orders at the given false positive rate.
func NewOrderFilter(expectedOrders uint, falsePositiveRate float64) *OrderFilter {
	if expectedOrders == 0 {
		expectedOrders = 1000000
	}
	if falsePositiveRate <= 0 || falsePositiveRate >= 1 {
		falsePositiveRate = 0.01
	}
	return &OrderFilter{
		filter: bloom.NewWithEstimates(expectedOrders, falsePositiveRate),
	}
}

// Add records an issued order id
func (f *OrderFilter) Add(orderID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.AddString(orderID)
}

// MightContain reports whether the order id may have been issued.
// A false return is definitive; a true return needs a database check.
func (f *OrderFilter) MightContain(orderID string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(orderID)
}
