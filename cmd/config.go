package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/focuslog/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", app.settingsPath)
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(app.settings); err != nil {
			return err
		}
		return enc.Close()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long:  "Change one setting. Keys: " + strings.Join(config.Keys, ", ") + ".\nFor tags pass a comma-separated list.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd, func(s *config.Settings) error {
			return s.Set(args[0], args[1])
		})
	},
}

var configTagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Add or remove tags",
}

var configTagAddCmd = &cobra.Command{
	Use:   "add <tag> [color]",
	Short: "Add a tag, optionally with a chart color like #4A90E2",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		color := ""
		if len(args) == 2 {
			color = args[1]
		}
		return updateSettings(cmd, func(s *config.Settings) error {
			return s.AddTag(args[0], color)
		})
	},
}

var configTagRemoveCmd = &cobra.Command{
	Use:   "remove <tag>",
	Short: "Remove a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd, func(s *config.Settings) error {
			return s.RemoveTag(args[0])
		})
	},
}

func init() {
	configTagCmd.AddCommand(configTagAddCmd)
	configTagCmd.AddCommand(configTagRemoveCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configTagCmd)
}

// updateSettings applies change to the settings file. It reloads the file
// so a --vault override is not written back.
func updateSettings(cmd *cobra.Command, change func(*config.Settings) error) error {
	s, err := config.Load(app.settingsPath)
	if err != nil {
		return err
	}
	if err := change(&s); err != nil {
		return err
	}
	if err := config.Save(app.settingsPath, s); err != nil {
		return err
	}
	app.settings = s
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", app.settingsPath)
	return nil
}
