package bloom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderFilter_AddAndTest(t *testing.T) {
	f := NewOrderFilter(1000, 0.01)

	f.Add("ORDER-abc")
	assert.True(t, f.MightContain("ORDER-abc"))
}

func TestOrderFilter_UnknownOrderRejected(t *testing.T) {
	f := NewOrderFilter(10000, 0.001)

	for i := 0; i < 1000; i++ {
		f.Add(fmt.Sprintf("ORDER-%d", i))
	}

	// A never-issued id should almost always miss. Count false
	// positives over a batch to keep the test deterministic enough.
	misses := 0
	for i := 0; i < 1000; i++ {
		if !f.MightContain(fmt.Sprintf("UNSEEN-%d", i)) {
			misses++
		}
	}
	assert.Greater(t, misses, 950)
}

func TestOrderFilter_DefaultSizing(t *testing.T) {
	f := NewOrderFilter(0, 0)
	f.Add("ORDER-x")
	assert.True(t, f.MightContain("ORDER-x"))
}
