package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simrs/internal/domain/billing"
	"simrs/internal/domain/inventory"
	"simrs/internal/domain/patient"
	"simrs/internal/domain/records"
	"simrs/internal/seed"
	"simrs/pkg/numerator"
)

func newTestReports(t *testing.T) (*Service, *billing.Service) {
	t.Helper()
	ctx := context.Background()
	slots := records.NewMemorySlots()

	patientStore := records.Open(ctx, slots, nil, seed.SlotPatients, seed.Patients)
	inventoryStore := records.Open(ctx, slots, nil, seed.SlotInventory, seed.Inventory)
	invoiceStore := records.Open(ctx, slots, nil, seed.SlotInvoices, seed.Invoices)

	sequences := numerator.NewMemorySequences()
	sequences.Set("RM", seed.PatientSequence)

	patientService := patient.NewService(patientStore, numerator.New(sequences))
	inventoryService := inventory.NewService(inventoryStore)
	billingService := billing.NewService(invoiceStore)

	return NewService(patientService, inventoryService, billingService), billingService
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestReports(t)

	d := svc.Dashboard(ctx)
	assert.Equal(t, int64(128850000), d.TotalPaidRevenue)
	assert.Equal(t, 3, d.UnpaidCount)
	assert.Equal(t, int64(50500000), d.PendingClaimsTotal)
	assert.Equal(t, 2, d.CriticalOrLowCount)
	assert.Equal(t, 5, d.PatientCount)
	assert.Equal(t, 3, d.InPatientCount)
}

func TestDashboard_RevenueSeries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestReports(t)

	series := svc.Dashboard(ctx).Revenue

	// Four paid invoices over four distinct days, oldest first.
	require.Len(t, series, 4)
	assert.Equal(t, RevenuePoint{Date: "2023-10-21", Amount: 150000, Invoices: 1}, series[0])
	assert.Equal(t, RevenuePoint{Date: "2023-10-22", Amount: 125000000, Invoices: 1}, series[1])
	assert.Equal(t, RevenuePoint{Date: "2023-10-23", Amount: 2850000, Invoices: 1}, series[2])
	assert.Equal(t, RevenuePoint{Date: "2023-10-25", Amount: 850000, Invoices: 1}, series[3])
}

func TestDashboard_ReflectsPayment(t *testing.T) {
	ctx := context.Background()
	svc, billingService := newTestReports(t)

	_, _, err := billingService.MarkPaid(ctx, "TAG-23-005")
	require.NoError(t, err)

	d := svc.Dashboard(ctx)
	assert.Equal(t, int64(128850000+5500000), d.TotalPaidRevenue)
	assert.Equal(t, 2, d.UnpaidCount)
	assert.Equal(t, int64(45000000), d.PendingClaimsTotal)

	// 2023-10-26 joins the series once its invoice is paid.
	last := d.Revenue[len(d.Revenue)-1]
	assert.Equal(t, "2023-10-26", last.Date)
	assert.Equal(t, int64(5500000), last.Amount)
}
