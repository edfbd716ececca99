// Package compliance produces the deliverability checklist shown on the
// dashboard. The default provider returns configured stub data; the DNS
// provider resolves SPF/DKIM/DMARC records for the sending domain.
package compliance

import (
	"context"

	"github.com/mailboard/mailboard/internal/models"
)

// Provider supplies the compliance checklist. Implementations must not
// fail the dashboard: on lookup trouble they degrade individual entries
// instead of returning an error.
type Provider interface {
	Checklist(ctx context.Context) []models.ComplianceItem
}

// StaticProvider returns a fixed checklist
type StaticProvider struct {
	Items []models.ComplianceItem
}

func (p *StaticProvider) Checklist(ctx context.Context) []models.ComplianceItem {
	if p.Items != nil {
		return p.Items
	}
	return DefaultChecklist()
}

// DefaultChecklist is the illustrative checklist used when no live
// checks are configured.
func DefaultChecklist() []models.ComplianceItem {
	return []models.ComplianceItem{
		{ID: "spf", Name: "SPF Alignment", Status: models.CompliancePass, Details: "SPF record is valid and aligned.", FixLink: "#"},
		{ID: "dkim", Name: "DKIM Alignment", Status: models.CompliancePass, Details: "DKIM signatures are valid and aligned.", FixLink: "#"},
		{ID: "dmarc", Name: "DMARC Policy", Status: models.ComplianceWarn, Details: "p=none policy detected. Consider tightening to quarantine/reject.", FixLink: "#"},
		{ID: "list_unsub", Name: "One-Click Unsubscribe", Status: models.CompliancePass, Details: "List-Unsubscribe headers are correctly implemented.", FixLink: "#"},
		{ID: "tls", Name: "TLS Encryption", Status: models.CompliancePass, Details: "100% of mail sent over TLS.", FixLink: "#"},
		{ID: "fbl", Name: "Feedback Loops", Status: models.ComplianceFail, Details: "Yahoo CFL not configured. Complaints may be missed.", FixLink: "#"},
	}
}
