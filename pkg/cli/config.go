package cli

import (
	"fmt"

	"github.com/filetug/estorage/pkg/settings"
	"github.com/spf13/cobra"
)

var saveSettings = settings.Save

func newConfigCmd(configPath *string) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd.Context())
			data, err := s.Marshal()
			if err != nil {
				return err
			}
			if _, err = cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			if !save {
				return nil
			}
			p := *configPath
			if p == "" {
				if p, err = defaultConfigPath(); err != nil {
					return err
				}
			}
			if err = saveSettings(p, s); err != nil {
				return fmt.Errorf("failed to save settings to %s: %w", p, err)
			}
			loggerFrom(cmd).Info().Str("path", p).Msg("settings saved")
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the effective settings to the settings file")
	return cmd
}
