package scraper

import "strings"

// UnknownWeightClass is rendered when a bout's class text is not in the table
const UnknownWeightClass = "N/A"

// weightClasses maps division names to their weight limit in pounds
var weightClasses = map[string]string{
	"Strawweight":       "115",
	"Flyweight":         "125",
	"Bantamweight":      "135",
	"Featherweight":     "145",
	"Lightweight":       "155",
	"Welterweight":      "170",
	"Middleweight":      "185",
	"Light Heavyweight": "205",
	"Heavyweight":       "265",
	"Catchweight":       "CW",
}

// winMethods maps the site's result method text to its short form.
// "Could Not Continue" intentionally has no short form.
var winMethods = map[string]string{
	"Could Not Continue":   "",
	"Submission":           "SUB",
	"Decision - Unanimous": "DEC",
	"Decision - Split":     "DEC",
	"Decision - Majority":  "DEC",
	"KO/TKO":               "T/KO",
}

// WeightClassCode resolves class text such as "Women's Strawweight Title Bout" to a code.
// The qualifiers "Title" and "Women's" and the trailing "Bout" are ignored; anything
// not found resolves to UnknownWeightClass.
func WeightClassCode(classText string) string {
	tokens := make([]string, 0, 4)
	for _, tok := range strings.Fields(classText) {
		if tok == "Title" || tok == "Women's" || tok == "Women’s" {
			continue
		}
		tokens = append(tokens, tok)
	}
	if n := len(tokens); n > 0 && tokens[n-1] == "Bout" {
		tokens = tokens[:n-1]
	}

	if code, ok := weightClasses[strings.Join(tokens, " ")]; ok {
		return code
	}
	return UnknownWeightClass
}

// WinMethodCode abbreviates a result method. Unknown methods return "".
func WinMethodCode(method string) string {
	return winMethods[strings.TrimSpace(method)]
}
