package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/auroraeye/internal/models"
)

const alertHTMLTemplate = `<html>
<body style="font-family: sans-serif; background-color: #0b1026; color: #e8f0ff; padding: 24px;">
  <h1 style="color: #7ef9a2; text-align: center;">Aurora Borealis Alert</h1>
  <p style="text-align: center; font-size: 16px;">Great news! Aurora activity detected at your monitored location(s).</p>
  <table style="margin: 0 auto; border-collapse: collapse;">
    <tr>
      <th style="border: 1px solid #3a4a7a; padding: 8px 16px;">Location</th>
      <th style="border: 1px solid #3a4a7a; padding: 8px 16px;">Coordinates</th>
      <th style="border: 1px solid #3a4a7a; padding: 8px 16px;">KP Index</th>
    </tr>
    {{range .Results}}
    <tr>
      <td style="border: 1px solid #3a4a7a; padding: 8px 16px;">{{.Location.Name}}</td>
      <td style="border: 1px solid #3a4a7a; padding: 8px 16px;">{{.Location.Coordinates}}</td>
      <td style="border: 1px solid #3a4a7a; padding: 8px 16px; color: #7ef9a2;"><strong>{{printf "%g" .KP}}</strong></td>
    </tr>
    {{end}}
  </table>
  <p style="text-align: center; margin-top: 24px;"><strong>Get outside and look up at the sky!</strong></p>
  <p style="text-align: center; color: #8899bb; font-size: 12px;">Automated notification from AuroraEye</p>
</body>
</html>`

const testHTMLTemplate = `<html>
<body style="font-family: sans-serif; background-color: #0b1026; color: #e8f0ff; padding: 24px;">
  <h1 style="color: #7ec8f9; text-align: center;">AuroraEye Email Test</h1>
  <p style="text-align: center; color: #7ef9a2;"><strong>SMTP configuration successful!</strong></p>
  <table style="margin: 0 auto; border-collapse: collapse;">
    <tr>
      <th style="border: 1px solid #3a4a7a; padding: 8px 16px;">City</th>
      <th style="border: 1px solid #3a4a7a; padding: 8px 16px;">Country</th>
      <th style="border: 1px solid #3a4a7a; padding: 8px 16px;">Coordinates</th>
    </tr>
    {{range .Locations}}
    <tr>
      <td style="border: 1px solid #3a4a7a; padding: 8px 16px;">{{.City}}</td>
      <td style="border: 1px solid #3a4a7a; padding: 8px 16px;">{{.Country}}</td>
      <td style="border: 1px solid #3a4a7a; padding: 8px 16px;">{{.Coordinates}}</td>
    </tr>
    {{end}}
  </table>
  <p style="text-align: center; margin-top: 24px;">You will receive alerts when activity reaches your threshold ({{.ThresholdDesc}}).</p>
  <p style="text-align: center; color: #8899bb; font-size: 12px;">Test email from AuroraEye</p>
</body>
</html>`

var (
	alertTmpl = template.Must(template.New("alert").Parse(alertHTMLTemplate))
	testTmpl  = template.Must(template.New("test").Parse(testHTMLTemplate))
)

// AlertSubject names the city when a single location qualifies, the
// count otherwise.
func AlertSubject(results []models.CheckResult) string {
	if len(results) == 1 {
		return fmt.Sprintf("Aurora Alert: Visibility at %s", results[0].Location.City)
	}
	return fmt.Sprintf("Aurora Alert: Visibility at %d locations", len(results))
}

// AlertBodies renders the digest for qualifying locations as plain text
// plus an HTML alternative.
func AlertBodies(results []models.CheckResult) (plain, html string, err error) {
	var b strings.Builder
	b.WriteString("Aurora Borealis Visibility Alert\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	b.WriteString("Great chance to see auroras tonight!\n\n")
	b.WriteString("Qualifying Locations:\n\n")
	for _, r := range results {
		fmt.Fprintf(&b, "%s\n", r.Location.Name())
		fmt.Fprintf(&b, "   Coordinates: %s\n", r.Location.Coordinates())
		fmt.Fprintf(&b, "   KP Index: %g\n\n", r.KP)
	}
	b.WriteString("Get outside and look up!\n\n")
	b.WriteString("This is an automated notification from AuroraEye.\n")

	var buf bytes.Buffer
	if err := alertTmpl.Execute(&buf, struct{ Results []models.CheckResult }{results}); err != nil {
		return "", "", fmt.Errorf("render alert email: %w", err)
	}
	return b.String(), buf.String(), nil
}

// TestBodies renders the fixed test message listing the monitored
// locations and the active alert rule.
func TestBodies(locations []models.Location, thresholdDesc string) (plain, html string, err error) {
	var b strings.Builder
	b.WriteString("AuroraEye - Email Test\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	b.WriteString("SMTP configuration test successful!\n\n")
	b.WriteString("Configured Locations:\n\n")
	for _, loc := range locations {
		fmt.Fprintf(&b, "  - %s\n", loc.Name())
		fmt.Fprintf(&b, "    %s\n", loc.Coordinates())
	}
	fmt.Fprintf(&b, "\nYou will receive aurora alerts when %s at any monitored location.\n\n", thresholdDesc)
	b.WriteString("This is a test email from AuroraEye.\n")

	var buf bytes.Buffer
	data := struct {
		Locations     []models.Location
		ThresholdDesc string
	}{locations, thresholdDesc}
	if err := testTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render test email: %w", err)
	}
	return b.String(), buf.String(), nil
}
