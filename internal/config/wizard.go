package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to ToldYou Button! Let's configure your server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 2. Public URL.
	urlPrompt := promptui.Prompt{
		Label:    "Public URL used in embed code (blank to derive from requests)",
		Validate: validatePublicURL,
	}
	publicURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("public url: %w", err)
	}
	cfg.Server.PublicURL = strings.TrimRight(strings.TrimSpace(publicURL), "/")

	// 3. Database.
	dbPrompt := promptui.Prompt{
		Label:   "SQLite database path",
		Default: cfg.Database.Path,
	}
	if cfg.Database.Path, err = dbPrompt.Run(); err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}

	// 4. Mail provider.
	mailPrompt := promptui.Select{
		Label: "How should code emails be delivered?",
		Items: []string{
			"log    - print emails to the server log (development)",
			"resend - send through the Resend API",
		},
	}
	mailIdx, _, err := mailPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mail provider: %w", err)
	}
	providers := []string{"log", "resend"}
	cfg.Mail.Provider = providers[mailIdx]

	if cfg.Mail.Provider == "resend" {
		fromPrompt := promptui.Prompt{
			Label:   "From address",
			Default: cfg.Mail.From,
		}
		if cfg.Mail.From, err = fromPrompt.Run(); err != nil {
			return nil, fmt.Errorf("from address: %w", err)
		}
		if os.Getenv("RESEND_API_KEY") == "" {
			fmt.Println("\nNote: Set RESEND_API_KEY in your environment before running toldyou serve.")
		}
	}

	// 5. Allowed origins.
	corsPrompt := promptui.Prompt{
		Label:   "Allowed CORS origins (comma-separated)",
		Default: strings.Join(cfg.Server.CORSOrigins, ","),
	}
	corsStr, err := corsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cors origins: %w", err)
	}
	if origins := splitAndTrim(corsStr); len(origins) > 0 {
		cfg.Server.CORSOrigins = origins
	}

	if os.Getenv("SHOPIFY_API_SECRET") == "" {
		fmt.Println("Note: Shopify webhooks are rejected until SHOPIFY_API_SECRET is set.")
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

func validatePublicURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return nil
	}
	return fmt.Errorf("url must start with http:// or https://")
}
