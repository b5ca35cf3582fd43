package registry

import "github.com/offlist/offlist/internal/model"

// peopleSearchSites is the compiled table of people-search and public
// records sites probed on every scan. Grouped by tier, highest-value
// targets first. Name tokens in templates are slugged with "-"; the
// templates themselves carry whatever joiner the site's URL scheme
// uses between tokens.
var peopleSearchSites = []model.Source{
	// Tier 1: major aggregators.
	{Name: "PeekYou", Domain: "peekyou.com", URLTemplate: "https://www.peekyou.com/{first_name}_{last_name}", Risk: model.RiskHigh},
	{Name: "ZabaSearch", Domain: "zabasearch.com", URLTemplate: "https://www.zabasearch.com/people/{first_name}+{last_name}/", Risk: model.RiskHigh},
	{Name: "That's Them", Domain: "thatsthem.com", URLTemplate: "https://thatsthem.com/name/{first_name}-{last_name}", Risk: model.RiskHigh},
	{Name: "Nuwber", Domain: "nuwber.com", URLTemplate: "https://nuwber.com/search?name={first_name}%20{last_name}", Risk: model.RiskHigh},
	{Name: "Instant Checkmate", Domain: "instantcheckmate.com", URLTemplate: "https://www.instantcheckmate.com/people/{first_name}-{last_name}", Risk: model.RiskHigh},
	{Name: "SearchPeopleFree", Domain: "searchpeoplefree.com", URLTemplate: "https://www.searchpeoplefree.com/find/{first_name}-{last_name}", Risk: model.RiskHigh},
	{Name: "FamilyTreeNow", Domain: "familytreenow.com", URLTemplate: "https://www.familytreenow.com/search/genealogy/results?first={first_name}&last={last_name}", Risk: model.RiskHigh},
	{Name: "Pipl", Domain: "pipl.com", URLTemplate: "https://pipl.com/search/?q={first_name}+{last_name}", Risk: model.RiskHigh},
	{Name: "Spytox", Domain: "spytox.com", URLTemplate: "https://www.spytox.com/people/search?name={first_name}+{last_name}", Risk: model.RiskHigh},

	// Tier 2: secondary aggregators.
	{Name: "Addresses.com", Domain: "addresses.com", URLTemplate: "https://www.addresses.com/people/{first_name}+{last_name}", Risk: model.RiskMedium},
	{Name: "ClustrMaps", Domain: "clustrmaps.com", URLTemplate: "https://clustrmaps.com/persons/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "Cyberbackgroundchecks", Domain: "cyberbackgroundchecks.com", URLTemplate: "https://www.cyberbackgroundchecks.com/people/{first_name}-{last_name}", Risk: model.RiskHigh},
	{Name: "PublicRecords360", Domain: "publicrecords360.com", URLTemplate: "https://publicrecords360.com/records/{first_name}-{last_name}", Risk: model.RiskHigh},
	{Name: "PrivateEye", Domain: "privateeye.com", URLTemplate: "https://www.privateeye.com/people/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "411.com", Domain: "411.com", URLTemplate: "https://www.411.com/name/{first_name}-{last_name}/", Risk: model.RiskMedium},
	{Name: "AnyWho", Domain: "anywho.com", URLTemplate: "https://www.anywho.com/people/{first_name}+{last_name}", Risk: model.RiskMedium},
	{Name: "Classmates", Domain: "classmates.com", URLTemplate: "https://www.classmates.com/people/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "Reunion.com", Domain: "reunion.com", URLTemplate: "https://www.reunion.com/search/{first_name}-{last_name}", Risk: model.RiskMedium},

	// Tier 3: additional sources.
	{Name: "PeopleLooker", Domain: "peoplelooker.com", URLTemplate: "https://www.peoplelooker.com/people/{first_name}-{last_name}", Risk: model.RiskHigh},
	{Name: "PeopleFinders", Domain: "peoplefinders.com", URLTemplate: "https://www.peoplefinders.com/people/{first_name}-{last_name}", Risk: model.RiskHigh},
	{Name: "USPhonebook", Domain: "usphonebook.com", URLTemplate: "https://www.usphonebook.com/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "Truthfinder", Domain: "truthfinder.com", URLTemplate: "https://www.truthfinder.com/people-search/{first_name}-{last_name}", Risk: model.RiskHigh},
	{Name: "PublicRecordsNow", Domain: "publicrecordsnow.com", URLTemplate: "https://www.publicrecordsnow.com/people/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "Spokeo Alt", Domain: "spokeo.com", URLTemplate: "https://www.spokeo.com/search?q={first_name}+{last_name}", Risk: model.RiskHigh},
	{Name: "MyLife", Domain: "mylife.com", URLTemplate: "https://www.mylife.com/pub/search.html?name={first_name}+{last_name}", Risk: model.RiskHigh},
	{Name: "Yasni", Domain: "yasni.com", URLTemplate: "https://www.yasni.com/{first_name}+{last_name}/check+people", Risk: model.RiskMedium},
	{Name: "Wink", Domain: "wink.com", URLTemplate: "https://www.wink.com/search/results/?name={first_name}%20{last_name}", Risk: model.RiskMedium},
	{Name: "Cubib", Domain: "cubib.com", URLTemplate: "https://cubib.com/search/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "NumLookup", Domain: "numlookup.com", URLTemplate: "https://www.numlookup.com/search?name={first_name}+{last_name}", Risk: model.RiskMedium},

	// Tier 4: regional and specialized records.
	{Name: "VoterRecords", Domain: "voterrecords.com", URLTemplate: "https://voterrecords.com/voters/{first_name}-{last_name}", Risk: model.RiskHigh},
	{Name: "HomeMeta", Domain: "homemetry.com", URLTemplate: "https://homemetry.com/search/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "PropertyShark", Domain: "propertyshark.com", URLTemplate: "https://www.propertyshark.com/mason/people/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "Neighbors", Domain: "neighbors.com", URLTemplate: "https://neighbors.com/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "BlockShopper", Domain: "blockshopper.com", URLTemplate: "https://blockshopper.com/search?name={first_name}+{last_name}", Risk: model.RiskMedium},
	{Name: "CourtListener", Domain: "courtlistener.com", URLTemplate: "https://www.courtlistener.com/?q={first_name}+{last_name}&type=p", Risk: model.RiskHigh},
	{Name: "UniCourt", Domain: "unicourt.com", URLTemplate: "https://unicourt.com/party-search?name={first_name}+{last_name}", Risk: model.RiskHigh},

	// Tier 5: business and professional data vendors.
	{Name: "ZoomInfo", Domain: "zoominfo.com", URLTemplate: "https://www.zoominfo.com/p/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "RocketReach", Domain: "rocketreach.co", URLTemplate: "https://rocketreach.co/person?name={first_name}+{last_name}", Risk: model.RiskMedium},
	{Name: "LeadIQ", Domain: "leadiq.com", URLTemplate: "https://leadiq.com/directory/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "Apollo", Domain: "apollo.io", URLTemplate: "https://www.apollo.io/people/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "Lusha", Domain: "lusha.com", URLTemplate: "https://www.lusha.com/people/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "SalesQL", Domain: "salesql.com", URLTemplate: "https://www.salesql.com/people/{first_name}-{last_name}", Risk: model.RiskMedium},
}

// socialPlatforms are probed with the primary name variant only, with
// name tokens concatenated (no separator), matching how usernames are
// commonly formed.
var socialPlatforms = []model.Source{
	{Name: "LinkedIn", Domain: "linkedin.com", URLTemplate: "https://www.linkedin.com/pub/dir?firstName={first_name}&lastName={last_name}", Risk: model.RiskMedium},
	{Name: "Facebook", Domain: "facebook.com", URLTemplate: "https://www.facebook.com/public/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "Twitter/X", Domain: "twitter.com", URLTemplate: "https://twitter.com/search?q={first_name}%20{last_name}&f=user", Risk: model.RiskLow},
	{Name: "Instagram", Domain: "instagram.com", URLTemplate: "https://www.instagram.com/{first_name}{last_name}/", Risk: model.RiskLow},
	{Name: "TikTok", Domain: "tiktok.com", URLTemplate: "https://www.tiktok.com/search/user?q={first_name}%20{last_name}", Risk: model.RiskLow},
	{Name: "Pinterest", Domain: "pinterest.com", URLTemplate: "https://www.pinterest.com/search/users/?q={first_name}%20{last_name}", Risk: model.RiskLow},
	{Name: "Reddit", Domain: "reddit.com", URLTemplate: "https://www.reddit.com/search/?q={first_name}%20{last_name}&type=user", Risk: model.RiskLow},
	{Name: "YouTube", Domain: "youtube.com", URLTemplate: "https://www.youtube.com/results?search_query={first_name}+{last_name}&sp=EgIQAg%253D%253D", Risk: model.RiskLow},
	{Name: "GitHub", Domain: "github.com", URLTemplate: "https://github.com/search?q={first_name}+{last_name}&type=users", Risk: model.RiskLow},
	{Name: "Medium", Domain: "medium.com", URLTemplate: "https://medium.com/search/users?q={first_name}%20{last_name}", Risk: model.RiskLow},
	{Name: "Quora", Domain: "quora.com", URLTemplate: "https://www.quora.com/search?q={first_name}+{last_name}&type=profile", Risk: model.RiskLow},
	{Name: "Snapchat", Domain: "snapchat.com", URLTemplate: "https://www.snapchat.com/add/{first_name}{last_name}", Risk: model.RiskLow},
}

// businessDirectories cover professional listing sites.
var businessDirectories = []model.Source{
	{Name: "Crunchbase", Domain: "crunchbase.com", URLTemplate: "https://www.crunchbase.com/person/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "AngelList", Domain: "angel.co", URLTemplate: "https://angel.co/u/{first_name}-{last_name}", Risk: model.RiskMedium},
	{Name: "Yelp", Domain: "yelp.com", URLTemplate: "https://www.yelp.com/user_details?userid={first_name}{last_name}", Risk: model.RiskLow},
}

// searchEngineSource is the DuckDuckGo HTML endpoint used to detect
// broker listings surfacing in web search results. The query is built
// by the dispatcher, not the URL template.
var searchEngineSource = model.Source{
	Name:        "Web Search Results",
	Domain:      "html.duckduckgo.com",
	Category:    model.CategorySearchEngine,
	Risk:        model.RiskHigh,
	URLTemplate: "https://html.duckduckgo.com/html/",
	Active:      true,
}

// PeopleSearchSites returns the compiled people-search table with
// category, separator, and active defaults applied.
func PeopleSearchSites() []model.Source {
	return withDefaults(peopleSearchSites, model.CategoryAdditionalSite, "-")
}

// SocialPlatforms returns the compiled social platform table.
func SocialPlatforms() []model.Source {
	return withDefaults(socialPlatforms, model.CategorySocialMedia, "")
}

// BusinessDirectories returns the compiled business directory table.
func BusinessDirectories() []model.Source {
	return withDefaults(businessDirectories, model.CategoryBusinessDirectory, "-")
}

// SearchEngine returns the search-engine probe source.
func SearchEngine() model.Source {
	return searchEngineSource
}

// withDefaults copies a compiled table, applying the category and
// token separator shared by all its entries. Callers get copies so the
// package-level tables stay immutable.
func withDefaults(sites []model.Source, cat model.SourceCategory, sep string) []model.Source {
	out := make([]model.Source, len(sites))
	for i, s := range sites {
		s.Category = cat
		s.Separator = sep
		s.Active = true
		out[i] = s
	}
	return out
}
