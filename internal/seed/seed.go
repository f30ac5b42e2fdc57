// Package seed holds the built-in datasets loaded on first start or when
// a slot is unreadable.
package seed

import (
	"simrs/internal/domain/billing"
	"simrs/internal/domain/inventory"
	"simrs/internal/domain/patient"
)

// Slot names for the persisted collections.
const (
	SlotPatients  = "simrs_patients"
	SlotInventory = "simrs_inventory"
	SlotInvoices  = "simrs_invoices"
)

// Sequence bootstrap values matching the highest seeded record numbers.
const (
	PatientSequence = 5
	InvoiceSequence = 7
)

// Patients returns the seed patient registry, newest visit first among
// in-patients per the original registry ordering.
func Patients() []patient.Patient {
	return []patient.Patient{
		{ID: "RM-001", Name: "Budi Santoso", Age: 45, Gender: patient.GenderMale, Status: patient.StatusInPatient, Insurance: "BPJS Kesehatan", LastVisit: "2023-10-24", Condition: "Pasca Operasi Jantung"},
		{ID: "RM-002", Name: "Siti Aminah", Age: 32, Gender: patient.GenderFemale, Status: patient.StatusOutPatient, Insurance: "Asuransi Swasta (Admedika)", LastVisit: "2023-10-25", Condition: "Pemeriksaan Umum"},
		{ID: "RM-003", Name: "Andi Pratama", Age: 25, Gender: patient.GenderMale, Status: patient.StatusInPatient, Insurance: "Umum/Tunai", LastVisit: "2023-10-20", Condition: "Fisioterapi Cedera Lutut"},
		{ID: "RM-004", Name: "Dewi Lestari", Age: 24, Gender: patient.GenderFemale, Status: patient.StatusDischarged, Insurance: "BPJS Kesehatan", LastVisit: "2023-10-18", Condition: "Radiologi MRI"},
		{ID: "RM-005", Name: "Rina Kurniawati", Age: 26, Gender: patient.GenderFemale, Status: patient.StatusInPatient, Insurance: "Asuransi Swasta (Prudential)", LastVisit: "2023-10-26", Condition: "Observasi Demam Berdarah"},
	}
}

// Inventory returns the seed pharmacy stock.
func Inventory() []inventory.Item {
	return []inventory.Item{
		{ID: "OBT-102", Name: "Amoxicillin 500mg", Category: inventory.CategoryMedicine, Stock: 450, Unit: "Tablet", BatchNumber: "B-8821", ExpiryDate: "2024-12-01", Status: inventory.StatusOK},
		{ID: "OBT-105", Name: "Paracetamol Infus", Category: inventory.CategoryMedicine, Stock: 24, Unit: "Botol", BatchNumber: "B-9921", ExpiryDate: "2023-11-15", Status: inventory.StatusCritical, Advisory: "Stok habis dalam 48 jam"},
		{ID: "BHP-201", Name: "Masker Bedah Medis", Category: inventory.CategoryConsumable, Stock: 1200, Unit: "Box", BatchNumber: "B-1122", ExpiryDate: "2025-01-01", Status: inventory.StatusOK},
		{ID: "OBT-303", Name: "Ibuprofen Sirup", Category: inventory.CategoryMedicine, Stock: 15, Unit: "Botol", BatchNumber: "B-3321", ExpiryDate: "2024-05-10", Status: inventory.StatusLow, Advisory: "Disarankan Restock Segera"},
		{ID: "ALK-505", Name: "Sarung Tangan Steril (L)", Category: inventory.CategoryEquipment, Stock: 300, Unit: "Pasang", BatchNumber: "B-4411", ExpiryDate: "2024-08-20", Status: inventory.StatusOK},
	}
}

// Invoices returns the seed billing ledger.
func Invoices() []billing.Invoice {
	return []billing.Invoice{
		{ID: "TAG-23-001", PatientName: "Budi Santoso", Date: "2023-10-25", Amount: 45000000, Status: billing.StatusPendingInsurance, Items: 4},
		{ID: "TAG-23-002", PatientName: "Siti Aminah", Date: "2023-10-25", Amount: 850000, Status: billing.StatusPaid, Items: 2},
		{ID: "TAG-23-003", PatientName: "Andi Pratama", Date: "2023-10-24", Amount: 3200000, Status: billing.StatusOverdue, Items: 7},
		{ID: "TAG-23-004", PatientName: "Dewi Lestari", Date: "2023-10-23", Amount: 2850000, Status: billing.StatusPaid, Items: 3},
		{ID: "TAG-23-005", PatientName: "Rina Kurniawati", Date: "2023-10-26", Amount: 5500000, Status: billing.StatusPendingInsurance, Items: 5},
		{ID: "TAG-23-006", PatientName: "PT. Sehat Sejahtera", Date: "2023-10-22", Amount: 125000000, Status: billing.StatusPaid, Items: 50},
		{ID: "TAG-23-007", PatientName: "Ahmad Dani", Date: "2023-10-21", Amount: 150000, Status: billing.StatusPaid, Items: 1},
	}
}
