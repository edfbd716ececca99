package models

// KPI change directions
const (
	ChangeIncrease = "increase"
	ChangeDecrease = "decrease"
	ChangeNeutral  = "neutral"
)

// KPI is a single dashboard tile
type KPI struct {
	Title      string `json:"title"`
	Value      string `json:"value"`
	Change     string `json:"change"`
	ChangeType string `json:"changeType"`
	Period     string `json:"period"`
}

// DomainPerformance is a per-mailbox-provider breakdown row
type DomainPerformance struct {
	Name          string  `json:"name"`
	DeliveryRate  float64 `json:"deliveryRate"`
	ComplaintRate float64 `json:"complaintRate"`
	SpamRate      float64 `json:"spamRate"`
}

// Compliance statuses
const (
	CompliancePass = "pass"
	ComplianceWarn = "warn"
	ComplianceFail = "fail"
)

// ComplianceItem is one entry of the deliverability checklist
type ComplianceItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Details string `json:"details"`
	FixLink string `json:"fixLink"`
}

// DashboardData is the aggregated dashboard payload
type DashboardData struct {
	KPIs                []KPI               `json:"kpis"`
	GmailSpamRate       float64             `json:"gmailSpamRate"`
	DomainPerformance   []DomainPerformance `json:"domainPerformance"`
	ComplianceChecklist []ComplianceItem    `json:"complianceChecklist"`
}
