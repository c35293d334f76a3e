package lint

import (
	"fmt"
	"strings"
	"sync"
)

// DefaultDocsBaseURL is the hosted documentation site.
const DefaultDocsBaseURL = "https://bqlint.dev/docs/rules"

var (
	docsMu      sync.RWMutex
	docsBaseURL = DefaultDocsBaseURL
)

// BuildDocURL constructs a documentation URL for a rule.
func BuildDocURL(ruleID string) string {
	docsMu.RLock()
	defer docsMu.RUnlock()
	return fmt.Sprintf("%s/%s", docsBaseURL, strings.ToLower(ruleID))
}

// DocsBaseURL returns the current documentation base URL.
func DocsBaseURL() string {
	docsMu.RLock()
	defer docsMu.RUnlock()
	return docsBaseURL
}

// SetDocsBaseURL overrides the default documentation base URL.
// Useful for offline mode or custom documentation sites.
func SetDocsBaseURL(url string) {
	docsMu.Lock()
	defer docsMu.Unlock()
	docsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL resets to the default documentation URL.
func ResetDocsBaseURL() {
	SetDocsBaseURL(DefaultDocsBaseURL)
}

// ImpactLevel represents predefined impact score ranges.
type ImpactLevel int

const (
	// ImpactLow for minor issues (0-30)
	ImpactLow ImpactLevel = 20
	// ImpactMedium for moderate issues (31-60)
	ImpactMedium ImpactLevel = 50
	// ImpactHigh for significant issues (61-80)
	ImpactHigh ImpactLevel = 70
	// ImpactCritical for critical issues (81-100)
	ImpactCritical ImpactLevel = 90
)

// Int returns the impact score as an integer.
func (l ImpactLevel) Int() int {
	return int(l)
}

// DefaultImpact is the impact assigned to diagnostics that carry none.
func DefaultImpact(sev Severity) ImpactLevel {
	switch sev {
	case SeverityError:
		return ImpactHigh
	case SeverityWarning:
		return ImpactMedium
	default:
		return ImpactLow
	}
}
