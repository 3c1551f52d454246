// Package response classifies free-text campaign replies into semantic
// buckets via keyword containment.
//
// The matching is deliberately coarse: replies are free text like
// "Pare de me mandar mensagem", so the classifier looks for substrings
// rather than exact tokens. The bare "não"/"nao" keywords are a known
// false-positive source on ordinary negative replies; the behavior is
// kept for compatibility with the datasets this tool consumes.
package response

import "strings"

// unsubscribeKeywords denote opt-out requests. Checked as lowercase
// substrings of the trimmed reply.
var unsubscribeKeywords = []string{
	"sair",
	"pare",
	"não",
	"nao",
	"descadastrar",
	"cancelar",
	"remove",
	"stop",
	"unsubscribe",
}

// noInterestPhrases denote disinterest without an opt-out request.
var noInterestPhrases = []string{
	"não tenho interesse",
	"nao tenho interesse",
	"sem interesse",
}

// IsUnsubscribe reports whether the reply contains any opt-out keyword.
// Empty input is never an unsubscribe.
func IsUnsubscribe(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, kw := range unsubscribeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsNoInterest reports whether the reply expresses lack of interest,
// either by containing a disinterest phrase or by opening with a
// dismissive "não,". Empty input is never a disinterest reply.
func IsNoInterest(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, phrase := range noInterestPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return strings.HasPrefix(lower, "não,") || strings.HasPrefix(lower, "nao,")
}
