package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "14950.00", FormatMoney(decimal.NewFromInt(14950)))
	assert.Equal(t, "12.35", FormatMoney(decimal.RequireFromString("12.3456")))
	assert.Equal(t, "-30.00", FormatMoney(decimal.NewFromInt(-30)))
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12", FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
	assert.Equal(t, "12.346", FormatWithPrecision(decimal.RequireFromString("12.3456"), 3))
}
