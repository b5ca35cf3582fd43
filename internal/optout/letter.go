package optout

import (
	"fmt"
	"hash/fnv"
	"strings"
	"text/template"

	"github.com/offlist/offlist/internal/model"
)

// maxLetterItems caps how many phones and addresses a letter embeds.
const maxLetterItems = 3

// letterTemplate is the CCPA/GDPR removal request body. Plain text:
// broker privacy desks handle text mail far more reliably than HTML.
var letterTemplate = template.Must(template.New("letter").Parse(`To Whom It May Concern,

I am writing to request the immediate removal of my personal information from your database and website, pursuant to my rights under the California Consumer Privacy Act (CCPA), General Data Protection Regulation (GDPR), and other applicable privacy laws.

PERSONAL INFORMATION TO REMOVE:

- First Name: {{.FirstName}}
- Last Name: {{.LastName}}
- Email: {{.Email}}{{if .DateOfBirth}}
- Date of Birth: {{.DateOfBirth}}{{end}}{{if .Phones}}
- Phone Number(s): {{.PhoneList}}{{end}}{{if .Addresses}}

Addresses associated with my records:{{range .Addresses}}
- {{.}}{{end}}{{end}}{{if .ProfileURL}}

Profile URL found on your site: {{.ProfileURL}}{{end}}

Please search for and remove ALL records matching any combination of the above information.

I REQUEST THAT YOU:
1. Delete all personal information you have collected about me
2. Remove any public-facing profile or listing containing my information
3. Remove my information from any people-search results
4. Refrain from selling or sharing my personal information with third parties
5. Confirm completion of this request via email within 45 days

This request is made pursuant to:
- California Consumer Privacy Act (CCPA) - Cal. Civ. Code § 1798.100
- California "Shine the Light" Law - Cal. Civ. Code § 1798.83
- GDPR Article 17 - Right to Erasure (if applicable)

Failure to comply may result in a complaint filed with the California Attorney General's Office or relevant data protection authority.

Please confirm receipt of this request and provide a timeline for completion.

Thank you for your prompt attention to this matter.

Sincerely,
{{.FullName}}
{{.Email}}

---
This opt-out request was sent via Offlist
Reference ID: {{.ReferenceID}}
`))

// letterData feeds letterTemplate.
type letterData struct {
	FirstName   string
	LastName    string
	FullName    string
	Email       string
	DateOfBirth string
	Phones      []string
	Addresses   []string
	ProfileURL  string
	ReferenceID string
}

// PhoneList joins the letter's phone numbers.
func (d letterData) PhoneList() string {
	return strings.Join(d.Phones, ", ")
}

// RenderLetter produces the removal request body for one broker.
func RenderLetter(profile *model.Profile, brokerName, profileURL string) (string, error) {
	data := letterData{
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		FullName:    profile.FullName(),
		Email:       profile.PrimaryEmail(),
		DateOfBirth: profile.DateOfBirth,
		ProfileURL:  profileURL,
		ReferenceID: ReferenceID(brokerName, profile.PrimaryEmail()),
	}

	for i, ph := range profile.Phones {
		if i >= maxLetterItems {
			break
		}
		data.Phones = append(data.Phones, ph)
	}
	for i, addr := range profile.Addrs {
		if i >= maxLetterItems {
			break
		}
		if line := formatAddress(addr); line != "" {
			data.Addresses = append(data.Addresses, line)
		}
	}

	var b strings.Builder
	if err := letterTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render opt-out letter: %w", err)
	}
	return b.String(), nil
}

// ReferenceID derives a stable per-broker reference for the request,
// so a follow-up can cite the original letter. FNV keeps it
// deterministic across processes.
func ReferenceID(brokerName, email string) string {
	h := fnv.New32a()
	h.Write([]byte(email))
	token := strings.ToUpper(normalize(brokerName))
	if token == "" {
		token = "SOURCE"
	}
	return fmt.Sprintf("%s-%05d", token, h.Sum32()%100000)
}

// formatAddress renders one address as "street, city, state zip".
func formatAddress(a model.Address) string {
	parts := make([]string, 0, 3)
	if a.Street != "" {
		parts = append(parts, a.Street)
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	tail := strings.TrimSpace(a.State + " " + a.Zip)
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}
