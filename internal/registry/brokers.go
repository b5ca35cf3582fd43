package registry

import "github.com/offlist/offlist/internal/model"

// seedBrokers is the initial broker catalog inserted on first run.
// Unlike the compiled site tables these live in the database so that
// opt-out details can be corrected without a release; brokers change
// their removal endpoints often.
var seedBrokers = []model.Source{
	{
		Name:           "Spokeo",
		Domain:         "spokeo.com",
		URLTemplate:    "https://www.spokeo.com/{first_name}-{last_name}",
		ProcessingDays: 14,
		OptOut: model.OptOut{
			Method:   model.MethodForm,
			URL:      "https://www.spokeo.com/optout",
			Endpoint: "https://www.spokeo.com/optout/submit",
			Fields: map[string]string{
				"url":   "{profile_url}",
				"email": "{user_email}",
			},
			CanAutomate: true,
		},
	},
	{
		Name:           "WhitePages",
		Domain:         "whitepages.com",
		URLTemplate:    "https://www.whitepages.com/name/{first_name}-{last_name}/{state}",
		ProcessingDays: 14,
		OptOut: model.OptOut{
			Method:      model.MethodEmail,
			Email:       "privacy@whitepages.com",
			Subject:     "Data Removal Request",
			URL:         "https://www.whitepages.com/suppression-requests",
			CanAutomate: true,
		},
	},
	{
		Name:           "BeenVerified",
		Domain:         "beenverified.com",
		URLTemplate:    "https://www.beenverified.com/people/{first_name}-{last_name}/",
		ProcessingDays: 14,
		OptOut: model.OptOut{
			Method:      model.MethodEmail,
			Email:       "privacy@beenverified.com",
			Subject:     "Opt-Out Request - Data Removal",
			URL:         "https://www.beenverified.com/opt-out",
			CanAutomate: true,
		},
	},
	{
		Name:           "TruePeopleSearch",
		Domain:         "truepeoplesearch.com",
		URLTemplate:    "https://www.truepeoplesearch.com/results?name={first_name}%20{last_name}",
		ProcessingDays: 7,
		OptOut: model.OptOut{
			Method:   model.MethodForm,
			URL:      "https://www.truepeoplesearch.com/removal",
			Endpoint: "https://www.truepeoplesearch.com/api/removal",
			Fields: map[string]string{
				"recordUrl": "{profile_url}",
			},
			CanAutomate: true,
		},
	},
	{
		Name:           "FastPeopleSearch",
		Domain:         "fastpeoplesearch.com",
		URLTemplate:    "https://www.fastpeoplesearch.com/name/{first_name}-{last_name}",
		ProcessingDays: 7,
		OptOut: model.OptOut{
			Method:      model.MethodForm,
			URL:         "https://www.fastpeoplesearch.com/removal",
			Endpoint:    "https://www.fastpeoplesearch.com/removal/submit",
			CanAutomate: true,
		},
	},
	{
		Name:           "Intelius",
		Domain:         "intelius.com",
		URLTemplate:    "https://www.intelius.com/people-search/{first_name}-{last_name}",
		ProcessingDays: 14,
		OptOut: model.OptOut{
			Method:      model.MethodEmail,
			Email:       "privacy@intelius.com",
			Subject:     "Opt-Out Request - Personal Data Removal",
			URL:         "https://www.intelius.com/opt-out",
			CanAutomate: true,
		},
	},
	{
		Name:           "ThatsThem",
		Domain:         "thatsthem.com",
		URLTemplate:    "https://thatsthem.com/name/{first_name}-{last_name}",
		ProcessingDays: 14,
		OptOut: model.OptOut{
			// No API endpoint is known, so automated submission falls
			// back to manual instructions at execution time.
			Method:      model.MethodForm,
			URL:         "https://thatsthem.com/optout",
			CanAutomate: true,
		},
	},
	{
		Name:           "Radaris",
		Domain:         "radaris.com",
		URLTemplate:    "https://radaris.com/p/{first_name}/{last_name}",
		ProcessingDays: 30,
		OptOut: model.OptOut{
			Method:      model.MethodEmail,
			Email:       "privacy@radaris.com",
			Subject:     "CCPA/GDPR Data Deletion Request",
			URL:         "https://radaris.com/control/privacy",
			CanAutomate: true,
		},
	},
	{
		Name:           "PeopleFinder",
		Domain:         "peoplefinder.com",
		URLTemplate:    "https://www.peoplefinder.com/results?name={first_name}+{last_name}",
		ProcessingDays: 14,
		OptOut: model.OptOut{
			Method:      model.MethodEmail,
			Email:       "privacy@peoplefinder.com",
			Subject:     "Opt-Out Request",
			URL:         "https://www.peoplefinder.com/optout.php",
			CanAutomate: true,
		},
	},
	{
		Name:           "USSearch",
		Domain:         "ussearch.com",
		URLTemplate:    "https://www.ussearch.com/search/results?firstName={first_name}&lastName={last_name}",
		ProcessingDays: 14,
		OptOut: model.OptOut{
			Method:      model.MethodManual,
			URL:         "https://www.ussearch.com/opt-out/submit/",
			CanAutomate: false,
		},
	},
}

// SeedBrokers returns the initial broker catalog with category,
// separator, and active defaults applied. IDs are assigned by the
// store at insert time.
func SeedBrokers() []model.Source {
	return withDefaults(seedBrokers, model.CategoryBroker, "-")
}
