package match

import (
	"regexp"
	"strings"

	"github.com/offlist/offlist/internal/model"
)

// Phone and email patterns used for category extraction.
var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.]?\d{4}`),
		regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`),
		regexp.MustCompile(`\+1\s*\d{3}\s*\d{3}\s*\d{4}`),
	}
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// categoryKeywords drive keyword-presence extraction for the
// categories without a regex. The phone and email categories also
// fall back to these when the regexes find nothing.
var categoryKeywords = map[model.DataCategory][]string{
	model.DataAddress: {
		"address", "street", "avenue", "boulevard", "road", "drive",
		"lane", "way", "court", "place", "lives in", "lived in",
		"current address", "previous address", "residence", "apt", "suite",
	},
	model.DataPhone: {"phone", "mobile", "cell", "landline", "telephone"},
	model.DataEmail: {"email"},
	model.DataRelatives: {
		"relatives", "family", "associates", "related to", "mother",
		"father", "sister", "brother", "spouse", "wife", "husband",
		"parent", "child", "daughter", "son", "uncle", "aunt", "cousin",
	},
	model.DataAge:         {"age", "born", "birth", "years old", "dob", "date of birth"},
	model.DataSocialMedia: {"facebook", "twitter", "linkedin", "instagram", "tiktok", "snapchat", "youtube"},
	model.DataPropertyRecords: {
		"property", "real estate", "home value", "ownership", "deed", "mortgage",
	},
	model.DataCourtRecords: {
		"court", "criminal", "arrest", "judgment", "lawsuit", "bankruptcy", "liens", "traffic",
	},
	model.DataEducation: {
		"education", "school", "university", "college", "degree", "graduated", "attended",
	},
	model.DataEmployment: {
		"employment", "employer", "work", "job", "occupation", "company", "position", "title",
	},
	model.DataPhotos:    {"photo", "picture", "image", "profile pic"},
	model.DataFinancial: {"income", "salary", "net worth", "assets", "credit", "financial"},
}

// categoryOrder fixes the output ordering; map iteration would make
// results flap between runs.
var categoryOrder = []model.DataCategory{
	model.DataAddress,
	model.DataPhone,
	model.DataEmail,
	model.DataRelatives,
	model.DataAge,
	model.DataSocialMedia,
	model.DataPropertyRecords,
	model.DataCourtRecords,
	model.DataEducation,
	model.DataEmployment,
	model.DataPhotos,
	model.DataFinancial,
}

// ExtractData reports which personal data categories the page appears
// to expose. Detection is independent of the match decision: keyword
// and regex presence only.
func ExtractData(text string) []model.DataCategory {
	lower := strings.ToLower(text)

	found := map[model.DataCategory]bool{}

	for _, re := range phonePatterns {
		if re.MatchString(text) {
			found[model.DataPhone] = true
			break
		}
	}
	if emailPattern.MatchString(text) {
		found[model.DataEmail] = true
	}

	for cat, keywords := range categoryKeywords {
		if found[cat] {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				found[cat] = true
				break
			}
		}
	}

	out := make([]model.DataCategory, 0, len(found))
	for _, cat := range categoryOrder {
		if found[cat] {
			out = append(out, cat)
		}
	}
	return out
}
