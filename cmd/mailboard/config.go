package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mailboard/mailboard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	RunE:  runConfigValidate,
}

func init() {
	configValidateCmd.Flags().StringVarP(&configFile, "config", "c", "/etc/mailboard/mailboard.yaml", "Path to configuration file")
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	fmt.Println("Configuration is valid")
	fmt.Printf("  Listen address: %s\n", cfg.Server.ListenAddr)
	fmt.Printf("  Database path: %s\n", cfg.Database.Path)
	fmt.Printf("  Dashboard window: %d campaigns\n", cfg.Dashboard.RecentCampaigns)
	fmt.Printf("  Compliance mode: %s\n", cfg.Dashboard.Compliance.Mode)
	if cfg.Dashboard.Compliance.Mode == config.ComplianceDNS {
		fmt.Printf("  Compliance domain: %s (selector %s)\n", cfg.Dashboard.Compliance.Domain, cfg.Dashboard.Compliance.DKIMSelector)
	}
	return nil
}
