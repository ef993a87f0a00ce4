package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_TurkishConventions(t *testing.T) {
	// comma decimals, dot thousands
	assert.Equal(t, "₺1.234,50", Format(1234.5))
	assert.Equal(t, "₺0,00", Format(0))
	assert.Equal(t, "₺99,90", Format(99.9))
}

func TestFormat_AlwaysTwoDecimals(t *testing.T) {
	assert.Equal(t, "₺10,00", Format(10))
}
