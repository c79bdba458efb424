package gst_test

import (
	"testing"

	"github.com/khatapro/khata-api/internal/domain/gst"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Buckets(t *testing.T) {
	cases := []struct {
		name     string
		gstin    string
		netTotal int64
		want     string
	}{
		{"registered buyer is b2b regardless of value", "29ABCDE1234F1Z5", 100, gst.BucketB2B},
		{"unregistered above threshold is b2cl", "", 250001, gst.BucketB2CL},
		{"unregistered exactly at threshold is b2cs", "", 250000, gst.BucketB2CS},
		{"unregistered below threshold is b2cs", "", 999, gst.BucketB2CS},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := gst.Classify(tc.gstin, decimal.NewFromInt(tc.netTotal))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPeriod_Bounds(t *testing.T) {
	from, to, err := gst.Period(3, 2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", from.Format("2006-01-02"))
	assert.Equal(t, "2024-03-31", to.Format("2006-01-02"))

	// February in a leap year
	from, to, err = gst.Period(2, 2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", from.Format("2006-01-02"))
	assert.Equal(t, "2024-02-29", to.Format("2006-01-02"))
}

func TestPeriod_Invalid(t *testing.T) {
	for _, tc := range []struct{ month, year int }{
		{0, 2024}, {13, 2024}, {3, 2016},
	} {
		_, _, err := gst.Period(tc.month, tc.year)
		assert.Error(t, err, "month=%d year=%d", tc.month, tc.year)
	}
}

func TestSplitTax(t *testing.T) {
	total := decimal.NewFromInt(180)

	cgst, sgst, igst := gst.SplitTax(total, "29", "29")
	assert.True(t, cgst.Equal(decimal.NewFromInt(90)))
	assert.True(t, sgst.Equal(decimal.NewFromInt(90)))
	assert.True(t, igst.IsZero())

	cgst, sgst, igst = gst.SplitTax(total, "29", "27")
	assert.True(t, cgst.IsZero())
	assert.True(t, sgst.IsZero())
	assert.True(t, igst.Equal(total))

	// unknown buyer state: treated as intra-state
	cgst, sgst, _ = gst.SplitTax(total, "29", "")
	assert.True(t, cgst.Equal(decimal.NewFromInt(90)))
	assert.True(t, sgst.Equal(decimal.NewFromInt(90)))
}
