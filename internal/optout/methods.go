package optout

import "github.com/offlist/offlist/internal/model"

// methodEntry binds a canonical broker key to its opt-out descriptor.
// Registration order matters: when a name matches several keys, the
// first registered wins.
type methodEntry struct {
	key  string
	conf model.OptOut
}

// builtinMethods is the canonical opt-out method table. Keys are
// normalized broker tokens; Resolve matches free-text source names
// against them.
var builtinMethods = []methodEntry{
	{key: "spokeo", conf: model.OptOut{
		Method:   model.MethodForm,
		URL:      "https://www.spokeo.com/optout",
		Endpoint: "https://www.spokeo.com/optout/submit",
		Fields: map[string]string{
			"url":   "{profile_url}",
			"email": "{user_email}",
		},
		CanAutomate: true,
	}},
	{key: "truepeoplesearch", conf: model.OptOut{
		Method:   model.MethodForm,
		URL:      "https://www.truepeoplesearch.com/removal",
		Endpoint: "https://www.truepeoplesearch.com/api/removal",
		Fields: map[string]string{
			"recordUrl": "{profile_url}",
		},
		CanAutomate: true,
	}},
	{key: "fastpeoplesearch", conf: model.OptOut{
		Method:      model.MethodForm,
		URL:         "https://www.fastpeoplesearch.com/removal",
		Endpoint:    "https://www.fastpeoplesearch.com/removal/submit",
		CanAutomate: true,
	}},
	{key: "beenverified", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@beenverified.com",
		Subject:     "Opt-Out Request - Data Removal",
		CanAutomate: true,
	}},
	{key: "intelius", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@intelius.com",
		Subject:     "Opt-Out Request - Personal Data Removal",
		CanAutomate: true,
	}},
	{key: "whitepages", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@whitepages.com",
		Subject:     "Data Removal Request",
		CanAutomate: true,
	}},
	{key: "radaris", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@radaris.com",
		Subject:     "CCPA/GDPR Data Deletion Request",
		CanAutomate: true,
	}},
	{key: "peoplefinder", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@peoplefinder.com",
		Subject:     "Opt-Out Request",
		CanAutomate: true,
	}},
	{key: "peekyou", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@peekyou.com",
		Subject:     "Data Removal Request",
		CanAutomate: true,
	}},
	{key: "instantcheckmate", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@instantcheckmate.com",
		Subject:     "Opt-Out / Data Removal Request",
		CanAutomate: true,
	}},
	{key: "mylife", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@mylife.com",
		Subject:     "Data Deletion Request - CCPA",
		CanAutomate: true,
	}},
	{key: "truthfinder", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@truthfinder.com",
		Subject:     "Opt-Out Request",
		CanAutomate: true,
	}},
	{key: "nuwber", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@nuwber.com",
		Subject:     "Data Removal Request",
		CanAutomate: true,
	}},
	{key: "zabasearch", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@zabasearch.com",
		Subject:     "Opt-Out Request - Remove My Information",
		CanAutomate: true,
	}},
	{key: "thatsthem", conf: model.OptOut{
		Method:      model.MethodForm,
		URL:         "https://thatsthem.com/optout",
		CanAutomate: true,
	}},
	{key: "familytreenow", conf: model.OptOut{
		Method:      model.MethodEmail,
		Email:       "privacy@familytreenow.com",
		Subject:     "Data Removal Request",
		CanAutomate: true,
	}},
}
