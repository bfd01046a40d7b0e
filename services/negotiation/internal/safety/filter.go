// Package safety screens chat messages for contact-sharing attempts before
// they are persisted. It is a deterrent, not a guarantee; determined users
// can always encode contacts in ways no regex catches.
package safety

import "regexp"

type Rule struct {
	Name    string
	Reason  string
	Pattern *regexp.Regexp
}

type Result struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// FilterVersion changes whenever the rule list does, so stored rejections can
// be traced back to the rules that produced them.
const FilterVersion = 2

// Brazilian phone numbers with optional area code and mobile 9 prefix, and
// the usual ways people smuggle links or social handles into chat.
var rules = []Rule{
	{
		Name:    "phone",
		Reason:  "Mensagens não podem conter números de telefone",
		Pattern: regexp.MustCompile(`(\(?\d{2}\)?\s?)?(9\s?)?\d{4}[-.\s]?\d{4}`),
	},
	{
		Name:    "link",
		Reason:  "Mensagens não podem conter links ou redes sociais",
		Pattern: regexp.MustCompile(`(?i)(http|www|\.com|@|instagram|insta|facebook|whats|zap)`),
	},
}

// Validate checks a message against every rule. The first match rejects.
func Validate(text string) Result {
	for _, rule := range rules {
		if rule.Pattern.MatchString(text) {
			return Result{Allowed: false, Reason: rule.Reason}
		}
	}
	return Result{Allowed: true}
}

// Rules exposes a copy of the active rule list.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
