package match

// noResultPhrases short-circuit scoring to not-found. People-search
// sites echo the query terms into their empty-result pages, so name
// presence alone is meaningless once one of these appears.
var noResultPhrases = []string{
	"no results found",
	"no records found",
	"we couldn't find",
	"no matches found",
	"0 results",
	"no people found",
	"we found 0",
	"couldn't find anyone",
	"did not find any",
	"no listings found",
	"person not found",
	"no data available",
	"no information found",
	"try a different search",
	"no profiles match",
	"search returned no",
}

// personalIndicators maps a data category to the keywords whose
// presence suggests the page exposes that category. Each category
// contributes its weight at most once.
var personalIndicators = map[string][]string{
	"age":        {"age:", "age ", "years old", "born in", "birth year"},
	"address":    {"address", "lives in", "lived in", "current address", "previous addresses", "residence"},
	"phone":      {"phone", "mobile", "cell", "(xxx)", "xxx-xxx-xxxx"},
	"email":      {"email", "@", "e-mail"},
	"relatives":  {"relatives", "family members", "related to", "associated with", "mother", "father", "spouse"},
	"employment": {"works at", "employed", "occupation", "employer", "job title"},
	"education":  {"attended", "graduated", "university", "college", "school"},
}

// profilePageIndicators mark pages that present a person record
// rather than a search form or marketing copy.
var profilePageIndicators = []string{
	"view full profile",
	"unlock report",
	"background check",
	"public records",
	"view details",
	"see more information",
	"full report",
	"get report",
	"contact information",
	"view report",
}

// brokerDomains is the known data-broker domain list. Membership adds
// the broker bonus during scoring and counts as a listing mention in
// search-engine results.
var brokerDomains = map[string]bool{
	"spokeo.com":                true,
	"whitepages.com":            true,
	"beenverified.com":          true,
	"intelius.com":              true,
	"truepeoplesearch.com":      true,
	"fastpeoplesearch.com":      true,
	"radaris.com":               true,
	"peoplefinder.com":          true,
	"peekyou.com":               true,
	"zabasearch.com":            true,
	"nuwber.com":                true,
	"instantcheckmate.com":      true,
	"mylife.com":                true,
	"truthfinder.com":           true,
	"pipl.com":                  true,
	"familytreenow.com":         true,
	"thatsthem.com":             true,
	"usphonebook.com":           true,
	"addresses.com":             true,
	"anywho.com":                true,
	"411.com":                   true,
	"peoplelooker.com":          true,
	"peoplefinders.com":         true,
	"publicrecordsnow.com":      true,
	"cyberbackgroundchecks.com": true,
	"checkpeople.com":           true,
	"infotracer.com":            true,
	"ussearch.com":              true,
	"peoplesmart.com":           true,
	"voterrecords.com":          true,
	"clustrmaps.com":            true,
	"classmates.com":            true,
	"reunion.com":               true,
	"spytox.com":                true,
	"searchpeoplefree.com":      true,
	"privateeye.com":            true,
	"publicrecords360.com":      true,
	"socialcatfish.com":         true,
	"idtrue.com":                true,
	"peoplewhiz.com":            true,
	"verifythem.com":            true,
}

// searchMentionKeys are the bare broker tokens looked for inside
// search-engine result text, where listings appear as display URLs
// and titles rather than clean domains.
var searchMentionKeys = []string{
	"spokeo", "whitepages", "beenverified", "truepeoplesearch",
	"fastpeoplesearch", "intelius", "radaris", "peoplefinder",
	"peekyou", "zabasearch", "nuwber", "instantcheckmate",
	"mylife", "truthfinder", "peoplelooker", "familytreenow",
	"publicrecords", "cyberbackgroundchecks", "thatsthem",
}

// IsBrokerDomain reports whether domain is on the known data-broker
// list. The www prefix is ignored.
func IsBrokerDomain(domain string) bool {
	if len(domain) > 4 && domain[:4] == "www." {
		domain = domain[4:]
	}
	return brokerDomains[domain]
}
