package cli

import (
	"fmt"

	"github.com/shaobosong/gdb-fzf/internal/config"
)

// Validate validates a gdb-fzf configuration file
func Validate(configPath string) error {
	if configPath == "" {
		configPath = config.FindConfig(config.ConfigDir())
		if configPath == "" {
			return fmt.Errorf("no config file found in %s", config.ConfigDir())
		}
	}

	fmt.Printf("Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Println("✅ Configuration is valid!")
		return nil
	}

	fmt.Println("❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}
	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
