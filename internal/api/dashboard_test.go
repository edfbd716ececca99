package api

import (
	"net/http"
	"testing"

	"github.com/mailboard/mailboard/internal/models"
)

func TestDashboard(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data models.DashboardData
	decodeBody(t, rec, &data)

	if len(data.KPIs) != 4 {
		t.Errorf("returned %d KPIs, want 4", len(data.KPIs))
	}
	if len(data.DomainPerformance) != 4 {
		t.Errorf("returned %d domain rows, want 4", len(data.DomainPerformance))
	}
	if len(data.ComplianceChecklist) != 6 {
		t.Errorf("returned %d compliance items, want 6", len(data.ComplianceChecklist))
	}
}
