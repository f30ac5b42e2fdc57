package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simrs/internal/domain/billing"
	"simrs/internal/domain/inventory"
	"simrs/internal/domain/patient"
	"simrs/internal/domain/records"
	"simrs/internal/domain/reports"
	"simrs/internal/domain/voice"
	"simrs/internal/infrastructure/storage/local"
	"simrs/internal/seed"
	"simrs/pkg/logger"
	"simrs/pkg/numerator"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := t.Context()
	slots := records.NewMemorySlots()

	patientStore := records.Open(ctx, slots, nil, seed.SlotPatients, seed.Patients)
	inventoryStore := records.Open(ctx, slots, nil, seed.SlotInventory, seed.Inventory)
	invoiceStore := records.Open(ctx, slots, nil, seed.SlotInvoices, seed.Invoices)

	sequences := numerator.NewMemorySequences()
	sequences.Set("RM", seed.PatientSequence)

	patientService := patient.NewService(patientStore, numerator.New(sequences))
	inventoryService := inventory.NewService(inventoryStore)
	billingService := billing.NewService(invoiceStore)
	reportsService := reports.NewService(patientService, inventoryService, billingService)

	tokens := voice.NewTokenService(voice.TokenConfig{Secret: "test-secret", TTL: time.Minute})
	voiceService := voice.NewService(tokens, inventoryService)

	return NewRouter(RouterConfig{
		Logger:    logger.Default(),
		Patients:  patientService,
		Inventory: inventoryService,
		Billing:   billingService,
		Reports:   reportsService,
		Voice:     voiceService,
		Registry:  prometheus.NewRegistry(),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "degraded: in-memory only", checks["storage"])
}

func TestListPatients(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Len(t, body["data"], 5)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(5), pagination["pageSize"])
	assert.Equal(t, float64(1), pagination["totalPages"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/patients?q=siti&status=all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 1)
}

func TestCreatePatient(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/patients", map[string]any{
		"name":  "Hendra Wijaya",
		"phone": "0812-3456-7890",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, "RM-006", data["id"])
	assert.Equal(t, "Out-Patient", data["status"])
	assert.Empty(t, body["warning"])
}

func TestCreatePatient_Validation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/patients", map[string]any{"name": "No Phone"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
	details := body["details"].(map[string]any)
	assert.Equal(t, []any{"phone"}, details["fields"])
}

func TestDeletePatient_UnknownSucceeds(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/patients/RM-999", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])
}

func TestSubmitOrder(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/inventory/orders", map[string]any{
		"lines": []map[string]any{
			{"itemId": "OBT-105", "itemName": "Paracetamol Infus", "qty": 50, "unit": "Botol", "price": "15000"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	totals := body["totals"].(map[string]any)
	assert.Equal(t, "750000", totals["subtotal"])
	assert.Equal(t, "82500", totals["vat"])
	assert.Equal(t, "832500", totals["total"])

	for _, raw := range body["items"].([]any) {
		item := raw.(map[string]any)
		if item["id"] == "OBT-105" {
			assert.Equal(t, float64(74), item["stock"])
			assert.Equal(t, "OK", item["status"])
			assert.Nil(t, item["aiPrediction"])
		}
	}
}

func TestSubmitOrder_Empty(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/inventory/orders", map[string]any{"lines": []any{}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "EMPTY_OPERATION", decode(t, rec)["code"])
}

func TestMarkPaid(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/invoices/TAG-23-001/pay", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Paid", data["status"])

	rec = doJSON(t, router, http.MethodPost, "/api/v1/invoices/TAG-99-999/pay", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvoiceSummary(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/invoices/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(128850000), body["totalPaidRevenue"])
	assert.Equal(t, float64(3), body["unpaidCount"])
	assert.Equal(t, float64(50500000), body["pendingClaimsTotal"])
}

func TestExportCSV(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/invoices/export.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "ID Tagihan,Nama Pasien,Tanggal,Jumlah,Status,Jumlah Item", lines[0])
}

func TestDashboard(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(128850000), body["totalPaidRevenue"])
	assert.Equal(t, float64(2), body["criticalOrLowCount"])
	assert.Equal(t, float64(5), body["patientCount"])
	assert.Equal(t, float64(3), body["inPatientCount"])
	assert.Len(t, body["revenue"], 4)
}

func TestVoiceSessionFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/voice/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decode(t, rec)
	id := session["id"].(string)
	token := session["token"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/voice/sessions/"+id+"/actions", map[string]any{
		"token":  token,
		"action": map[string]any{"type": "navigate", "view": "BILLING"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BILLING", decode(t, rec)["view"])

	rec = doJSON(t, router, http.MethodPost, "/api/v1/voice/sessions/"+id+"/actions", map[string]any{
		"token":  token,
		"action": map[string]any{"type": "check_stock", "itemName": "masker"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	stock := decode(t, rec)["stock"].(map[string]any)
	assert.Equal(t, "BHP-201", stock["itemId"])

	rec = doJSON(t, router, http.MethodPost, "/api/v1/voice/sessions/"+id+"/actions", map[string]any{
		"token":  "not-a-token",
		"action": map[string]any{"type": "navigate", "view": "BILLING"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/voice/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/voice/sessions/"+id+"/actions", map[string]any{
		"token":  token,
		"action": map[string]any{"type": "navigate", "view": "BILLING"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJournalHistoryEndpoint(t *testing.T) {
	ctx := t.Context()
	store, err := local.Open(ctx, filepath.Join(t.TempDir(), "simrs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	journal, err := local.NewJournal(store, 0)
	require.NoError(t, err)

	sequences := numerator.NewMemorySequences()
	sequences.Set("RM", seed.PatientSequence)

	patientStore := records.Open(ctx, store, journal, seed.SlotPatients, seed.Patients)
	inventoryStore := records.Open(ctx, store, journal, seed.SlotInventory, seed.Inventory)
	invoiceStore := records.Open(ctx, store, journal, seed.SlotInvoices, seed.Invoices)

	patientService := patient.NewService(patientStore, numerator.New(sequences))
	inventoryService := inventory.NewService(inventoryStore)
	billingService := billing.NewService(invoiceStore)

	router := NewRouter(RouterConfig{
		Logger:    logger.Default(),
		Store:     store,
		Journal:   journal,
		Patients:  patientService,
		Inventory: inventoryService,
		Billing:   billingService,
		Reports:   reports.NewService(patientService, inventoryService, billingService),
		Voice:     voice.NewService(voice.NewTokenService(voice.TokenConfig{Secret: "test-secret", TTL: time.Minute}), inventoryService),
		Registry:  prometheus.NewRegistry(),
	})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/patients", map[string]any{
		"name":  "Hendra Wijaya",
		"phone": "0812-3456-7890",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/journal/"+seed.SlotPatients+"?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "patient.create", entries[0]["op"])
	assert.Equal(t, "seed", entries[1]["op"])
	assert.Contains(t, rec.Body.String(), "RM-006")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/journal/no_such_slot", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestJournalEndpointAbsentWithoutJournal(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/journal/"+seed.SlotPatients, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodGet, "/api/v1/patients", nil)

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "simrs_http_requests_total")
}
