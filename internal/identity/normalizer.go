package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/offlist/offlist/internal/model"
)

// MaxNicknameVariants caps how many nicknames contribute name
// variants. Long nickname lists blow up the per-source retry budget
// without improving recall.
const MaxNicknameVariants = 3

// Variant is one first/last name combination to probe a source with.
// Variants are ordered by descending likelihood of a listing match.
type Variant struct {
	First string
	Last  string
}

// Full returns "First Last".
func (v Variant) Full() string {
	return v.First + " " + v.Last
}

// FirstSlug returns the URL slug for the first-name token, joining
// multi-word names with sep.
func (v Variant) FirstSlug(sep string) string {
	return Slug(v.First, sep)
}

// LastSlug returns the URL slug for the last-name token.
func (v Variant) LastSlug(sep string) string {
	return Slug(v.Last, sep)
}

// Identity is the normalized search form of a profile: the variants to
// probe with and the contact signals the scorer matches against page
// text. All string fields are lowercase.
type Identity struct {
	// Variants holds the name combinations in probe order. The first
	// entry is always the primary "FirstName LastName" pair.
	Variants []Variant

	// FirstName and LastName are the lowercase primary tokens.
	FirstName string
	LastName  string

	// MiddleName is the lowercase middle name, or "".
	MiddleName string

	// Emails are deduplicated lowercase addresses.
	Emails []string

	// Phones holds each number in its configured formatting; Digits
	// holds the same numbers reduced to bare digits. Pages format
	// numbers inconsistently, so the scorer tries both.
	Phones []string
	Digits []string

	// Streets are lowercase street lines from all known addresses.
	Streets []string

	// City and State come from the primary address.
	City  string
	State string
}

// Normalize converts a profile into its search identity.
// Variant order is deterministic: primary, middle-name combinations,
// maiden-name combinations, then up to MaxNicknameVariants nicknames.
func Normalize(p *model.Profile) *Identity {
	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.LastName)

	id := &Identity{
		FirstName:  strings.ToLower(first),
		LastName:   strings.ToLower(last),
		MiddleName: strings.ToLower(strings.TrimSpace(p.MiddleName)),
		City:       strings.ToLower(strings.TrimSpace(p.City())),
		State:      strings.ToLower(strings.TrimSpace(p.State())),
	}

	seen := map[string]bool{}
	add := func(v Variant) {
		if v.First == "" || v.Last == "" {
			return
		}
		key := strings.ToLower(v.Full())
		if seen[key] {
			return
		}
		seen[key] = true
		id.Variants = append(id.Variants, v)
	}

	add(Variant{First: first, Last: last})

	if middle := strings.TrimSpace(p.MiddleName); middle != "" {
		add(Variant{First: first + " " + middle, Last: last})
		add(Variant{First: first, Last: middle + " " + last})
	}

	if maiden := strings.TrimSpace(p.MaidenName); maiden != "" {
		add(Variant{First: first, Last: maiden})
		add(Variant{First: first, Last: maiden + "-" + last})
	}

	for i, nick := range p.Nicknames {
		if i >= MaxNicknameVariants {
			break
		}
		add(Variant{First: strings.TrimSpace(nick), Last: last})
	}

	emailSeen := map[string]bool{}
	for _, e := range p.Emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || emailSeen[e] {
			continue
		}
		emailSeen[e] = true
		id.Emails = append(id.Emails, e)
	}

	phoneSeen := map[string]bool{}
	for _, ph := range p.Phones {
		ph = strings.TrimSpace(ph)
		digits := digitsOnly(ph)
		if digits == "" || phoneSeen[digits] {
			continue
		}
		phoneSeen[digits] = true
		id.Phones = append(id.Phones, ph)
		id.Digits = append(id.Digits, digits)
	}

	for _, a := range p.Addrs {
		if street := strings.ToLower(strings.TrimSpace(a.Street)); street != "" {
			id.Streets = append(id.Streets, street)
		}
	}

	return id
}

// slugStripper removes combining marks after NFD decomposition, which
// reduces accented letters to their ASCII base.
var slugStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug lowercases s, strips diacritics, and joins the remaining words
// with sep. Characters other than letters and digits act as word
// boundaries, so "O'Brien" slugs to "o" sep "brien".
func Slug(s, sep string) string {
	if stripped, _, err := transform.String(slugStripper, s); err == nil {
		s = stripped
	}
	s = strings.ToLower(s)

	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, sep)
}

// CitySlug slugs a city name for URL templates. City components in
// broker URLs conventionally use the same separator as name tokens.
func CitySlug(city, sep string) string {
	return Slug(city, sep)
}

// digitsOnly strips everything but digits from a phone number and
// drops a leading country code 1 so that ten-digit forms compare
// equal regardless of formatting.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	return d
}
