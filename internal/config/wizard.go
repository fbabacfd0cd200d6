package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to orient! Let's register what reality looks like.")
	fmt.Println()

	cfg := DefaultConfig()

	librarianPrompt := promptui.Prompt{
		Label:   "Path to the librarian (knowledge base) database",
		Default: "librarian.db",
	}
	librarian, err := librarianPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("librarian db prompt: %w", err)
	}
	cfg.LibrarianDB = librarian

	sapphirePrompt := promptui.Prompt{
		Label:   "Path to the sapphire (pattern) database",
		Default: "sapphire_torus.db",
	}
	sapphire, err := sapphirePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("sapphire db prompt: %w", err)
	}
	cfg.SapphireDB = sapphire

	// Repositories: name/path pairs until an empty name.
	fmt.Println("\nRegister repositories to probe (empty name to finish):")
	for {
		namePrompt := promptui.Prompt{Label: "Repository name"}
		name, err := namePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("repo name prompt: %w", err)
		}
		if name == "" {
			break
		}
		pathPrompt := promptui.Prompt{Label: fmt.Sprintf("Local path for %s", name)}
		repoPath, err := pathPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("repo path prompt: %w", err)
		}
		cfg.Repos[name] = repoPath
	}

	// Services: name/URL pairs until an empty name.
	fmt.Println("\nRegister services with a /health endpoint (empty name to finish):")
	for {
		namePrompt := promptui.Prompt{Label: "Service name"}
		name, err := namePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("service name prompt: %w", err)
		}
		if name == "" {
			break
		}
		urlPrompt := promptui.Prompt{Label: fmt.Sprintf("Base URL for %s", name)}
		baseURL, err := urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("service url prompt: %w", err)
		}
		cfg.Services[name] = baseURL
	}

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be a number in 1..65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("Run `orient scan` for a one-shot briefing, or `orient serve` to expose it over HTTP.")
	return cfg, nil
}
