package extract

import "regexp"

// The two textual repairs below cover the most common ways model output
// corrupts JSON. Each can silently alter data, so each stays a separate
// transform.

var (
	bareKeyRe       = regexp.MustCompile(`(\s*)(\w+)(\s*):(\s*)`)
	trailingCommaRe = regexp.MustCompile(`,(\s*[\]}])`)
)

// quoteBareKeys wraps unquoted object keys in double quotes.
// `{name: "x"}` becomes `{"name": "x"}`. Already-quoted keys are untouched
// because the quote sits between the key and the colon.
func quoteBareKeys(s string) string {
	return bareKeyRe.ReplaceAllString(s, `$1"$2"$3:$4`)
}

// stripTrailingCommas removes commas that directly precede a closing bracket
// or brace: `[1, 2,]` becomes `[1, 2]`.
func stripTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, `$1`)
}

// repairJSON applies both syntactic repairs in order.
func repairJSON(s string) string {
	return stripTrailingCommas(quoteBareKeys(s))
}
