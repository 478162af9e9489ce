package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("accounts requires at least one entry")
	}
	seen := make(map[string]struct{}, len(c.Accounts))
	for i := range c.Accounts {
		a := &c.Accounts[i]
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return fmt.Errorf("accounts[%d] missing name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("accounts contains duplicate name: %s", name)
		}
		seen[name] = struct{}{}
		if strings.TrimSpace(a.APIKey) == "" {
			return fmt.Errorf("accounts.%s missing api_key", name)
		}
		if strings.TrimSpace(a.APISecret) == "" {
			return fmt.Errorf("accounts.%s missing api_secret", name)
		}
		switch a.Transport {
		case "sdk", "signed":
		default:
			return fmt.Errorf("accounts.%s has unknown transport: %s", name, a.Transport)
		}
		if a.InitialBalance < 0 {
			return fmt.Errorf("accounts.%s initial_balance must be >= 0", name)
		}
	}
	return nil
}
