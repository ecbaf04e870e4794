package scorer

import "regexp"

// Shared regexes for content scoring and pattern-based vendor extraction.
// Capitalized-name families match "Green Acres Farm", "Smith & Sons Bakery",
// "Acme Foods LLC"; the list-entry pattern matches "Name - description" rows
// that vendor directories render as plain text.
var (
	phoneRe = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	listEntryRe = regexp.MustCompile(`[A-Z][a-zA-Z\s&'.]{3,30}\s*[-:]\s*[^.\n]{15,}`)

	businessNameRes = []*regexp.Regexp{
		regexp.MustCompile(`\b((?:[A-Z][a-zA-Z'.]+\s+)*[A-Z][a-zA-Z'.]+)\s+(Farm|Farms|Bakery|Gardens?|Orchards?|Market|Kitchen|Creamery|Dairy|Ranch|Apiary|Winery|Brewery|Homestead)\b`),
		regexp.MustCompile(`\b((?:[A-Z][a-zA-Z'.]+\s+)*[A-Z][a-zA-Z'.]+)\s+(LLC|Inc|Co)\b`),
	}
)

// CountPhones returns the number of phone numbers in text.
func CountPhones(text string) int {
	return len(phoneRe.FindAllString(text, -1))
}

// CountEmails returns the number of email addresses in text.
func CountEmails(text string) int {
	return len(emailRe.FindAllString(text, -1))
}
