package reports

import (
	"testing"
	"time"

	"github.com/khatapro/khata-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gstRow(billNo, gstin string, net int64) repository.GSTBillRow {
	return repository.GSTBillRow{
		BillID:   billNo,
		BillNo:   billNo,
		BillDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		GSTIN:    gstin,
		NetTotal: decimal.NewFromInt(net),
	}
}

func TestPartitionGSTBills(t *testing.T) {
	// INV-1/INV-5 have a GSTIN (b2b, whatever the value), INV-2 is an
	// unregistered sale above the threshold (b2cl), INV-3 sits exactly at
	// the threshold and INV-4 below it (both b2cs, dropped here).
	rows := []repository.GSTBillRow{
		gstRow("INV-1", "27BBBBB1111B1Z4", 1000),
		gstRow("INV-2", "", 300000),
		gstRow("INV-3", "", 250000),
		gstRow("INV-4", "", 500),
		gstRow("INV-5", "29CCCCC2222C1Z3", 400000),
	}

	b2b, b2cl := partitionGSTBills(rows)

	require.Len(t, b2b, 2)
	assert.Equal(t, "INV-1", b2b[0].BillNo)
	assert.Equal(t, "INV-5", b2b[1].BillNo)

	require.Len(t, b2cl, 1)
	assert.Equal(t, "INV-2", b2cl[0].BillNo)
}

func TestPartitionGSTBills_EmptyInput(t *testing.T) {
	b2b, b2cl := partitionGSTBills(nil)
	assert.NotNil(t, b2b)
	assert.NotNil(t, b2cl)
	assert.Empty(t, b2b)
	assert.Empty(t, b2cl)
}
