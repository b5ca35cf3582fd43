package model

import "strings"

// Address is a postal address associated with a profile.
// Street and Zip may be empty; City and State are the fields most
// useful as scan signals.
type Address struct {
	Street string `yaml:"street,omitempty" json:"street,omitempty"`
	City   string `yaml:"city,omitempty" json:"city,omitempty"`
	State  string `yaml:"state,omitempty" json:"state,omitempty"`
	Zip    string `yaml:"zip,omitempty" json:"zip,omitempty"`

	// Years is a free-form residency range such as "2015-2020".
	Years string `yaml:"years,omitempty" json:"years,omitempty"`
}

// Profile is the identity snapshot a scan protects. It is treated as
// immutable for the duration of a scan invocation; the authoritative
// copy lives in the external profile store (or the local config file
// for CLI use).
type Profile struct {
	FirstName  string `yaml:"first_name" json:"first_name"`
	LastName   string `yaml:"last_name" json:"last_name"`
	MiddleName string `yaml:"middle_name,omitempty" json:"middle_name,omitempty"`
	MaidenName string `yaml:"maiden_name,omitempty" json:"maiden_name,omitempty"`

	Nicknames []string `yaml:"nicknames,omitempty" json:"nicknames,omitempty"`

	Emails []string  `yaml:"emails,omitempty" json:"emails,omitempty"`
	Phones []string  `yaml:"phones,omitempty" json:"phones,omitempty"`
	Addrs  []Address `yaml:"addresses,omitempty" json:"addresses,omitempty"`

	// DateOfBirth is free-form (e.g. "1984-03-12"); it is only embedded
	// into opt-out letters, never parsed.
	DateOfBirth string `yaml:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`

	Relatives []string `yaml:"relatives,omitempty" json:"relatives,omitempty"`
	Employers []string `yaml:"employers,omitempty" json:"employers,omitempty"`
	Usernames []string `yaml:"usernames,omitempty" json:"usernames,omitempty"`
}

// FullName returns "First Last" with surrounding whitespace trimmed.
func (p *Profile) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// PrimaryEmail returns the first configured email, or "".
func (p *Profile) PrimaryEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}

// PrimaryAddress returns the first configured address, or nil.
func (p *Profile) PrimaryAddress() *Address {
	if len(p.Addrs) == 0 {
		return nil
	}
	return &p.Addrs[0]
}

// City returns the city of the primary address, or "".
func (p *Profile) City() string {
	if a := p.PrimaryAddress(); a != nil {
		return a.City
	}
	return ""
}

// State returns the state of the primary address, or "".
func (p *Profile) State() string {
	if a := p.PrimaryAddress(); a != nil {
		return a.State
	}
	return ""
}
