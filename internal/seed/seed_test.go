package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simrs/internal/domain/billing"
	"simrs/internal/domain/inventory"
	"simrs/internal/domain/patient"
)

func TestPatients(t *testing.T) {
	patients := Patients()
	require.Len(t, patients, PatientSequence)

	first := patients[0]
	assert.Equal(t, "RM-001", first.ID)
	assert.Equal(t, "Budi Santoso", first.Name)
	assert.Equal(t, 45, first.Age)
	assert.Equal(t, patient.StatusInPatient, first.Status)
	assert.Equal(t, "BPJS Kesehatan", first.Insurance)

	for _, p := range patients {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Condition)
		assert.NotEmpty(t, p.LastVisit)
	}
}

func TestInventory(t *testing.T) {
	items := Inventory()
	require.Len(t, items, 5)

	critical := items[1]
	assert.Equal(t, "OBT-105", critical.ID)
	assert.Equal(t, 24, critical.Stock)
	assert.Equal(t, inventory.StatusCritical, critical.Status)
	assert.Equal(t, "Stok habis dalam 48 jam", critical.Advisory)

	// Only the two flagged items carry restock advisories.
	assert.Equal(t, 2, inventory.CriticalOrLowCount(items))
	for _, it := range items {
		if it.Status == inventory.StatusOK {
			assert.Empty(t, it.Advisory, it.ID)
		} else {
			assert.NotEmpty(t, it.Advisory, it.ID)
		}
	}
}

func TestInvoices(t *testing.T) {
	invoices := Invoices()
	require.Len(t, invoices, InvoiceSequence)

	first := invoices[0]
	assert.Equal(t, "TAG-23-001", first.ID)
	assert.Equal(t, int64(45000000), first.Amount)
	assert.Equal(t, billing.StatusPendingInsurance, first.Status)
	assert.Equal(t, 4, first.Items)

	assert.Equal(t, int64(128850000), billing.TotalPaidRevenue(invoices))
	assert.Equal(t, 3, billing.UnpaidCount(invoices))
	assert.Equal(t, int64(50500000), billing.PendingClaimsTotal(invoices))
}
