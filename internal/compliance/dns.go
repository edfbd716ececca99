package compliance

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/mailboard/mailboard/internal/models"
)

var ErrInvalidDomain = errors.New("invalid domain name")

// domainRegex validates domain name format (RFC 1035)
var domainRegex = regexp.MustCompile(`^(?i)[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*$`)

// ValidateDomain checks if domain name is valid
func ValidateDomain(domain string) error {
	if domain == "" || len(domain) > 253 || !domainRegex.MatchString(domain) {
		return ErrInvalidDomain
	}
	return nil
}

// DNSProvider resolves SPF, DKIM and DMARC TXT records for the sending
// domain. The unsubscribe-header, TLS and feedback-loop entries are not
// DNS-derivable and stay as configured stubs.
type DNSProvider struct {
	Domain   string
	Selector string
	Resolver *net.Resolver
}

func NewDNSProvider(domain, selector string) (*DNSProvider, error) {
	if err := ValidateDomain(domain); err != nil {
		return nil, err
	}
	if selector == "" {
		selector = "default"
	}
	return &DNSProvider{Domain: domain, Selector: selector, Resolver: net.DefaultResolver}, nil
}

func (p *DNSProvider) Checklist(ctx context.Context) []models.ComplianceItem {
	items := []models.ComplianceItem{
		p.checkSPF(ctx),
		p.checkDKIM(ctx),
		p.checkDMARC(ctx),
	}
	// Non-DNS entries keep the stub values
	for _, item := range DefaultChecklist() {
		switch item.ID {
		case "list_unsub", "tls", "fbl":
			items = append(items, item)
		}
	}
	return items
}

func (p *DNSProvider) lookupTXT(ctx context.Context, name string) ([]string, models.ComplianceItem, bool) {
	records, err := p.Resolver.LookupTXT(ctx, name)
	if err != nil {
		item := models.ComplianceItem{Status: models.ComplianceFail, FixLink: "#"}
		if dnsErr, ok := err.(*net.DNSError); ok && dnsErr.IsNotFound {
			item.Details = fmt.Sprintf("No TXT record found at %s.", name)
		} else {
			item.Details = fmt.Sprintf("Lookup failed: %v", err)
		}
		return nil, item, false
	}
	return records, models.ComplianceItem{}, true
}

func (p *DNSProvider) checkSPF(ctx context.Context) models.ComplianceItem {
	records, failed, ok := p.lookupTXT(ctx, p.Domain)
	if !ok {
		failed.ID, failed.Name = "spf", "SPF Alignment"
		return failed
	}
	return spfItem(records)
}

// spfItem classifies the domain's TXT records by SPF policy strictness
func spfItem(records []string) models.ComplianceItem {
	item := models.ComplianceItem{ID: "spf", Name: "SPF Alignment", FixLink: "#"}
	for _, txt := range records {
		if !strings.HasPrefix(txt, "v=spf1") {
			continue
		}
		switch {
		case strings.Contains(txt, "+all"):
			item.Status = models.ComplianceWarn
			item.Details = "SPF uses +all (allows any sender). Consider ~all or -all."
		case strings.Contains(txt, "-all"):
			item.Status = models.CompliancePass
			item.Details = "SPF configured with strict policy (-all)."
		case strings.Contains(txt, "~all"):
			item.Status = models.CompliancePass
			item.Details = "SPF configured with soft fail (~all)."
		default:
			item.Status = models.ComplianceWarn
			item.Details = "SPF record present but has no terminal all mechanism."
		}
		return item
	}
	item.Status = models.ComplianceFail
	item.Details = "No SPF record found."
	return item
}

func (p *DNSProvider) checkDKIM(ctx context.Context) models.ComplianceItem {
	name := fmt.Sprintf("%s._domainkey.%s", p.Selector, p.Domain)
	records, failed, ok := p.lookupTXT(ctx, name)
	if !ok {
		failed.ID, failed.Name = "dkim", "DKIM Alignment"
		return failed
	}
	return dkimItem(records, p.Selector)
}

func dkimItem(records []string, selector string) models.ComplianceItem {
	item := models.ComplianceItem{ID: "dkim", Name: "DKIM Alignment", FixLink: "#"}

	// TXT records over 255 bytes come back split
	full := strings.Join(records, "")
	if !strings.Contains(full, "v=DKIM1") {
		item.Status = models.ComplianceFail
		item.Details = fmt.Sprintf("No DKIM record found for selector %q.", selector)
		return item
	}
	if !strings.Contains(full, "p=") {
		item.Status = models.ComplianceWarn
		item.Details = "DKIM record is missing its public key (p=)."
		return item
	}
	item.Status = models.CompliancePass
	item.Details = fmt.Sprintf("DKIM record published for selector %q.", selector)
	return item
}

func (p *DNSProvider) checkDMARC(ctx context.Context) models.ComplianceItem {
	records, failed, ok := p.lookupTXT(ctx, "_dmarc."+p.Domain)
	if !ok {
		failed.ID, failed.Name = "dmarc", "DMARC Policy"
		return failed
	}
	return dmarcItem(records)
}

func dmarcItem(records []string) models.ComplianceItem {
	item := models.ComplianceItem{ID: "dmarc", Name: "DMARC Policy", FixLink: "#"}

	full := strings.Join(records, "")
	if !strings.HasPrefix(full, "v=DMARC1") {
		item.Status = models.ComplianceFail
		item.Details = "No DMARC record found."
		return item
	}
	switch {
	case strings.Contains(full, "p=reject"):
		item.Status = models.CompliancePass
		item.Details = "DMARC configured with reject policy."
	case strings.Contains(full, "p=quarantine"):
		item.Status = models.CompliancePass
		item.Details = "DMARC configured with quarantine policy."
	case strings.Contains(full, "p=none"):
		item.Status = models.ComplianceWarn
		item.Details = "p=none policy detected. Consider tightening to quarantine/reject."
	default:
		item.Status = models.ComplianceWarn
		item.Details = "DMARC record present but no policy could be parsed."
	}
	return item
}
