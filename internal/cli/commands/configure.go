package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/auroraeye/internal/alert"
	"github.com/auroraeye/internal/config"
	"github.com/auroraeye/internal/geocode"
	"github.com/auroraeye/internal/models"
	"github.com/spf13/cobra"
)

// geocoder is the lookup surface configure needs; satisfied by
// geocode.Client and faked in tests.
type geocoder interface {
	Resolve(ctx context.Context, city, country string) (lat, lon float64, err error)
}

// NewConfigureCommand creates the interactive setup command.
func NewConfigureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Set up locations, email recipients, threshold, and SMTP settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			store := config.NewStore("")
			geo := geocode.NewClient(10*time.Second, log)
			return runConfigure(p, store, geo)
		},
	}
}

func runConfigure(p *prompter, store *config.Store, geo geocoder) error {
	if !store.Exists() {
		fmt.Fprintln(p.out, "No configuration file found. Let's create one!")
		return completeSetup(p, store, geo)
	}

	cfg, err := store.Load()
	if err != nil {
		fmt.Fprintln(p.out, "(Existing configuration could not be loaded - starting over)")
		return completeSetup(p, store, geo)
	}

	printConfigSummary(p, cfg)

	fmt.Fprintln(p.out, "\nWhat would you like to configure?")
	fmt.Fprintln(p.out, "  1. Locations (city and country)")
	fmt.Fprintln(p.out, "  2. Email recipients")
	fmt.Fprintln(p.out, "  3. Notification threshold (HIGH/MODERATE/ALL)")
	fmt.Fprintln(p.out, "  4. SMTP settings (email server)")
	fmt.Fprintln(p.out, "  5. All settings (complete reconfiguration)")
	fmt.Fprintln(p.out, "  6. Exit")

	switch p.ask("\nEnter your choice (1-6): ") {
	case "1":
		return manageLocations(p, store, geo, cfg)
	case "2":
		return manageEmails(p, store, cfg)
	case "3":
		return manageThreshold(p, store, cfg)
	case "4":
		return configureSMTP(p)
	case "5":
		return completeSetup(p, store, geo)
	case "6":
		fmt.Fprintln(p.out, "Exiting.")
		return nil
	default:
		fmt.Fprintln(p.out, "Invalid choice. Exiting.")
		return nil
	}
}

func printConfigSummary(p *prompter, cfg *config.Config) {
	fmt.Fprintln(p.out, "Configuration file found:")
	fmt.Fprintf(p.out, "  Locations: %d\n", len(cfg.Locations))
	for _, loc := range cfg.Locations {
		fmt.Fprintf(p.out, "    - %s (%s)\n", loc.Name(), loc.Coordinates())
	}
	fmt.Fprintf(p.out, "  Emails: %d configured\n", len(cfg.Emails))
	fmt.Fprintf(p.out, "  Threshold: %s\n", cfg.Threshold)
}

// addLocation prompts for one place and geocodes it. Lookup failures
// and duplicate coordinates are reported; nothing is added.
func addLocation(p *prompter, geo geocoder, existing []models.Location) (models.Location, bool) {
	city := p.ask("City: ")
	country := p.ask("Country: ")

	fmt.Fprintln(p.out, "\nLooking up coordinates...")
	lat, lon, err := geo.Resolve(context.Background(), city, country)
	if err != nil {
		fmt.Fprintf(p.out, "Error: %v\n", err)
		return models.Location{}, false
	}

	loc := models.Location{City: city, Country: country, Latitude: lat, Longitude: lon}
	for _, other := range existing {
		if loc.SamePlace(other) {
			fmt.Fprintf(p.out, "Already configured: %s has the same coordinates.\n", other.Name())
			return models.Location{}, false
		}
	}

	fmt.Fprintf(p.out, "Added: %s (%s)\n", loc.Name(), loc.Coordinates())
	return loc, true
}

func manageLocations(p *prompter, store *config.Store, geo geocoder, cfg *config.Config) error {
	for {
		fmt.Fprintln(p.out, "\n--- Location Management ---")
		if len(cfg.Locations) == 0 {
			fmt.Fprintln(p.out, "  (no locations configured)")
		}
		for i, loc := range cfg.Locations {
			fmt.Fprintf(p.out, "  %d. %s (%s)\n", i+1, loc.Name(), loc.Coordinates())
		}

		fmt.Fprintln(p.out, "\nOptions:")
		fmt.Fprintln(p.out, "  a. Add new location")
		if len(cfg.Locations) > 0 {
			fmt.Fprintln(p.out, "  r. Remove location")
		}
		fmt.Fprintln(p.out, "  d. Done (save and exit)")

		switch p.ask("\nChoice: ") {
		case "a":
			fmt.Fprintln(p.out, "\nEnter new location details:")
			if loc, ok := addLocation(p, geo, cfg.Locations); ok {
				cfg.Locations = append(cfg.Locations, loc)
			}

		case "r":
			if len(cfg.Locations) == 0 {
				fmt.Fprintln(p.out, "Invalid choice.")
				continue
			}
			idx, err := strconv.Atoi(p.ask("Enter location number to remove: "))
			if err != nil || idx < 1 || idx > len(cfg.Locations) {
				fmt.Fprintln(p.out, "Invalid location number.")
				continue
			}
			removed := cfg.Locations[idx-1]
			cfg.Locations = append(cfg.Locations[:idx-1], cfg.Locations[idx:]...)
			fmt.Fprintf(p.out, "Removed: %s\n", removed.Name())

		case "d":
			if len(cfg.Locations) == 0 {
				fmt.Fprintln(p.out, "Warning: No locations configured. Add at least one location.")
				continue
			}
			if err := store.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(p.out, "\nLocations saved (%d location(s)).\n", len(cfg.Locations))
			return nil

		default:
			if p.closed() {
				return fmt.Errorf("input ended before locations were saved")
			}
			fmt.Fprintln(p.out, "Invalid choice.")
		}
	}
}

func manageEmails(p *prompter, store *config.Store, cfg *config.Config) error {
	fmt.Fprintln(p.out, "\nCurrent recipients:")
	if len(cfg.Emails) == 0 {
		fmt.Fprintln(p.out, "  (none configured)")
	}
	for i, email := range cfg.Emails {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, email)
	}

	emails, ok := promptEmails(p)
	if !ok {
		return nil
	}

	cfg.Emails = emails
	if err := store.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "\nEmail recipients updated: %d recipient(s)\n", len(emails))
	return nil
}

// promptEmails reads a comma-separated recipient list and validates
// every address.
func promptEmails(p *prompter) ([]string, bool) {
	reply := p.ask("\nEnter email(s) for notifications (comma-separated for multiple): ")

	var emails, invalid []string
	for _, part := range splitTrim(reply, ",") {
		if part == "" {
			continue
		}
		if !config.ValidEmail(part) {
			invalid = append(invalid, part)
		}
		emails = append(emails, part)
	}

	if len(invalid) > 0 {
		fmt.Fprintf(p.out, "\nError: Invalid email address(es): %v\n", invalid)
		fmt.Fprintln(p.out, "Please check the format and try again.")
		return nil, false
	}
	if len(emails) == 0 {
		fmt.Fprintln(p.out, "\nError: No email addresses entered.")
		return nil, false
	}
	return emails, true
}

func manageThreshold(p *prompter, store *config.Store, cfg *config.Config) error {
	fmt.Fprintln(p.out, "\n=== Notification Threshold ===")
	fmt.Fprintf(p.out, "Current setting: %s\n", cfg.Threshold)
	fmt.Fprintln(p.out, "\nAvailable options:")
	fmt.Fprintf(p.out, "  1. HIGH - Only %s (best viewing conditions)\n", alert.Describe(models.ThresholdHigh))
	fmt.Fprintf(p.out, "  2. MODERATE - %s (good viewing conditions)\n", alert.Describe(models.ThresholdModerate))
	fmt.Fprintf(p.out, "  3. ALL - Any aurora activity detected (%s)\n", alert.Describe(models.ThresholdAll))

	switch p.ask("\nSelect threshold (1-3) or press Enter to keep current: ") {
	case "1":
		cfg.Threshold = models.ThresholdHigh
	case "2":
		cfg.Threshold = models.ThresholdModerate
	case "3":
		cfg.Threshold = models.ThresholdAll
	case "":
		fmt.Fprintf(p.out, "\nKeeping current threshold: %s\n", cfg.Threshold)
		return nil
	default:
		fmt.Fprintln(p.out, "\nInvalid choice. Keeping current threshold.")
		return nil
	}

	if err := store.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "\nNotification threshold set to %s (%s)\n", cfg.Threshold, alert.Describe(cfg.Threshold))
	return nil
}

func configureSMTP(p *prompter) error {
	fmt.Fprintln(p.out, "\nEnter your SMTP email settings:")
	server := p.ask("SMTP Server (e.g., smtp.gmail.com): ")

	var port int
	for {
		reply := p.askDefault("SMTP Port (default 587): ", "587")
		n, err := strconv.Atoi(reply)
		if err != nil || n <= 0 {
			if p.closed() {
				return fmt.Errorf("input ended before SMTP settings were complete")
			}
			fmt.Fprintln(p.out, "Invalid port. Enter a number.")
			continue
		}
		port = n
		break
	}

	username := p.ask("SMTP Username: ")
	password := p.ask("SMTP Password (or app-specific password): ")

	if err := config.WriteEnvFile(server, port, username, password); err != nil {
		return err
	}

	fmt.Fprintln(p.out, "\nSMTP settings saved to .env file!")
	fmt.Fprintln(p.out, "Note: the .env file contains sensitive credentials; keep it out of version control.")
	fmt.Fprintln(p.out, "\nTo test your email configuration, run:")
	fmt.Fprintln(p.out, "  auroraeye test-email")
	return nil
}

func completeSetup(p *prompter, store *config.Store, geo geocoder) error {
	cfg := &config.Config{Threshold: models.DefaultThreshold}

	fmt.Fprintln(p.out, "\nLet's add your monitoring locations.")
	for {
		fmt.Fprintf(p.out, "\nLocation #%d:\n", len(cfg.Locations)+1)
		if loc, ok := addLocation(p, geo, cfg.Locations); ok {
			cfg.Locations = append(cfg.Locations, loc)
		}
		if len(cfg.Locations) > 0 && !p.confirm("\nAdd another location? (Y/N): ") {
			break
		}
		if p.closed() {
			return fmt.Errorf("input ended before any location was configured")
		}
	}

	for {
		emails, ok := promptEmails(p)
		if ok {
			cfg.Emails = emails
			break
		}
		if p.closed() {
			return fmt.Errorf("input ended before any recipient was configured")
		}
	}

	fmt.Fprintln(p.out, "\n=== Notification Threshold ===")
	fmt.Fprintln(p.out, "When should you receive alerts?")
	fmt.Fprintf(p.out, "  1. HIGH - Only %s (best viewing, less frequent)\n", alert.Describe(models.ThresholdHigh))
	fmt.Fprintf(p.out, "  2. MODERATE - %s (good viewing, more frequent)\n", alert.Describe(models.ThresholdModerate))
	fmt.Fprintf(p.out, "  3. ALL - Any activity (%s, most frequent)\n", alert.Describe(models.ThresholdAll))

	switch p.ask("\nSelect (1-3, default is HIGH): ") {
	case "2":
		cfg.Threshold = models.ThresholdModerate
	case "3":
		cfg.Threshold = models.ThresholdAll
	default:
		cfg.Threshold = models.ThresholdHigh
	}

	if err := store.Save(cfg); err != nil {
		return err
	}

	fmt.Fprintln(p.out, "\nConfiguration saved successfully!")
	fmt.Fprintf(p.out, "Locations: %d\n", len(cfg.Locations))
	for _, loc := range cfg.Locations {
		fmt.Fprintf(p.out, "  - %s (%s)\n", loc.Name(), loc.Coordinates())
	}
	fmt.Fprintf(p.out, "Email recipients: %d\n", len(cfg.Emails))

	fmt.Fprintln(p.out, "\nWould you like to configure SMTP email settings now?")
	if p.confirm("Y/N: ") {
		if err := configureSMTP(p); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(p.out, "\nTo configure SMTP later, run 'auroraeye configure' and select option 4.")
	}

	fmt.Fprintln(p.out, "\nRun 'auroraeye check' to check aurora visibility and get notified.")
	return nil
}
