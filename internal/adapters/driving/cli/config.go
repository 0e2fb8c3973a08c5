package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change config.toml",
	Long: `Show or change the configuration file.

Keys use dot notation, for example storage.backend or oauth.github.client_id.
Changes take effect the next time devsync starts.`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every key with its value",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:       "get [key]",
	Short:     "Print one value",
	Args:      cobra.ExactArgs(1),
	ValidArgs: services.ConfigKeys,
	RunE:      runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one value",
	Example: `  devsync config set storage.backend sqlite
  devsync config set proxy.strategies direct,https://relay.example.com/?url=
  devsync config set http.timeout_seconds 10`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func requireConfig() error {
	if configStore == nil {
		return errors.New("configuration not loaded")
	}
	return nil
}

func checkConfigKey(key string) error {
	if !slices.Contains(services.ConfigKeys, key) {
		return fmt.Errorf("%w: unknown key %q (see 'devsync config list')", domain.ErrInvalidInput, key)
	}
	return nil
}

// configValue renders a value for display. Client secrets are masked.
func configValue(key string) string {
	val, ok := configStore.Get(key)
	if !ok {
		return ""
	}
	var s string
	switch v := val.(type) {
	case []any, []string:
		s = strings.Join(configStore.GetStringSlice(key), ",")
	default:
		s = fmt.Sprint(v)
	}
	if strings.HasSuffix(key, "client_secret") && s != "" {
		return domain.MaskSecret(s)
	}
	return s
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if err := requireConfig(); err != nil {
		return err
	}

	if jsonOutput {
		out := make(map[string]string, len(services.ConfigKeys))
		for _, key := range services.ConfigKeys {
			out[key] = configValue(key)
		}
		return printJSON(cmd, out)
	}

	cmd.Printf("%s\n\n", configStore.Path())
	for _, key := range services.ConfigKeys {
		val := configValue(key)
		if val == "" {
			val = "(unset)"
		}
		cmd.Printf("  %-30s %s\n", key, val)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := requireConfig(); err != nil {
		return err
	}
	if err := checkConfigKey(args[0]); err != nil {
		return err
	}
	cmd.Println(configValue(args[0]))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireConfig(); err != nil {
		return err
	}
	key, raw := args[0], strings.TrimSpace(args[1])
	if err := checkConfigKey(key); err != nil {
		return err
	}

	var value any = raw
	switch key {
	case services.ConfigProxyStrategies:
		var list []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		value = list
	case services.ConfigHTTPTimeoutSeconds:
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive number of seconds", domain.ErrInvalidInput, key)
		}
		value = n
	case services.ConfigStorageBackend:
		backend := domain.StorageBackend(strings.ToLower(raw))
		if !backend.IsValid() {
			return fmt.Errorf("%w: %s must be file or sqlite", domain.ErrInvalidInput, key)
		}
		value = string(backend)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	cmd.Printf("%s set to: %s\n", key, configValue(key))
	return nil
}
