package governance

import "sort"

// frameworks catalogues the governance frameworks and standards evaluators may
// tag findings with. The keys are the identifiers used in
// ValidationResult.ComplianceFrameworks.
var frameworks = map[string]string{
	"TOGAF":                "The Open Group Architecture Framework",
	"ISO_42010":            "ISO/IEC/IEEE 42010 Systems and software engineering",
	"AWS_WELL_ARCHITECTED": "AWS Well-Architected Framework",
	"AZURE_ARCHITECTURE":   "Microsoft Azure Architecture Framework",
	"GCP_ARCHITECTURE":     "Google Cloud Architecture Framework",
	"NIST_CYBERSECURITY":   "NIST Cybersecurity Framework",
	"GDPR":                 "General Data Protection Regulation",
	"SOX":                  "Sarbanes-Oxley Act",
	"HIPAA":                "Health Insurance Portability and Accountability Act",
}

// FrameworkName resolves a framework identifier to its full name.
func FrameworkName(id string) (string, bool) {
	name, ok := frameworks[id]
	return name, ok
}

// FrameworkIDs returns the known framework identifiers, sorted.
func FrameworkIDs() []string {
	ids := make([]string, 0, len(frameworks))
	for id := range frameworks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
