package register

import "strings"

type Classification string

const (
	ClassificationEmployer Classification = "employer"
	ClassificationAgency   Classification = "agency"
	ClassificationUnknown  Classification = "unknown"
)

// SIC division 78 is "employment activities"; the explicit codes cover
// employment placement, agencies and other human-resources provision.
const agencySICPrefix = "78"

var agencySICCodes = map[string]bool{
	"78101": true,
	"78109": true,
	"78200": true,
	"78300": true,
}

func normalizeSIC(code string) string {
	out := make([]byte, 0, len(code))
	for i := 0; i < len(code); i++ {
		if code[i] >= '0' && code[i] <= '9' {
			out = append(out, code[i])
		}
	}
	return string(out)
}

// ClassifySIC tags a code list as agency or employer. No codes at all means
// we cannot say either way.
func ClassifySIC(sicCodes []string) (Classification, []string) {
	var normalized []string
	for _, code := range sicCodes {
		if n := normalizeSIC(code); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return ClassificationUnknown, nil
	}

	var reasons []string
	seen := make(map[string]bool)
	for _, code := range normalized {
		if strings.HasPrefix(code, agencySICPrefix) || agencySICCodes[code] {
			reason := "sic_" + code
			if !seen[reason] {
				seen[reason] = true
				reasons = append(reasons, reason)
			}
		}
	}
	if len(reasons) > 0 {
		return ClassificationAgency, reasons
	}
	return ClassificationEmployer, nil
}
