package mailer

import (
	"bytes"
	"strings"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// Booking email bodies are markdown so the same source serves as the
// plain-text alternative part.

const confirmedTemplate = `Hi {{.GuestName}},

Your booking **{{.Reference}}** is confirmed.

- **{{.ListingName}}** ({{.ResourceName}}), {{.LocationName}}
- Check-in: {{.CheckIn}}
- Check-out: {{.CheckOut}}
- Units: {{.Units}}, guests: {{.Guests}}
- Total: {{.TotalAmount}}

We look forward to welcoming you.`

const cancelledTemplate = `Hi {{.GuestName}},

Your booking **{{.Reference}}** for **{{.ListingName}}** ({{.CheckIn}} to {{.CheckOut}}) has been cancelled.

If this was unexpected, reply to this email and we will look into it.`

// render executes the template against data and converts the result
// to HTML with goldmark. The executed markdown is returned as the
// text part.
func render(tmpl string, data any) (html, text string, err error) {
	t, err := texttemplate.New("email").Parse(tmpl)
	if err != nil {
		return "", "", err
	}
	var md bytes.Buffer
	if err := t.Execute(&md, data); err != nil {
		return "", "", err
	}
	var out bytes.Buffer
	if err := goldmark.Convert(md.Bytes(), &out); err != nil {
		return "", "", err
	}
	return out.String(), strings.TrimSpace(md.String()), nil
}
