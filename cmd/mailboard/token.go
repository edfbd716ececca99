package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailboard/mailboard/internal/repository"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "API token management commands",
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new API token",
	RunE:  runTokenCreate,
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete [token-id]",
	Short: "Revoke an API token",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenDelete,
}

var (
	tokenEmail     string
	tokenName      string
	tokenExpiresIn time.Duration
)

func init() {
	tokenCreateCmd.Flags().StringVar(&tokenEmail, "email", "", "Email of the user the token belongs to")
	tokenCreateCmd.Flags().StringVar(&tokenName, "name", "", "Token name (e.g. \"ci\", \"dashboard\")")
	tokenCreateCmd.Flags().DurationVar(&tokenExpiresIn, "expires-in", 0, "Token lifetime (e.g. 720h); 0 means no expiry")
	tokenCreateCmd.MarkFlagRequired("email")

	tokenCmd.AddCommand(tokenCreateCmd)
	tokenCmd.AddCommand(tokenDeleteCmd)

	tokenCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "/etc/mailboard/mailboard.yaml", "Path to configuration file")
}

func runTokenCreate(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	u, err := repository.NewUserRepository(database.DB).GetByEmail(tokenEmail)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %s not found", tokenEmail)
	}

	var expiresAt *time.Time
	if tokenExpiresIn > 0 {
		t := time.Now().Add(tokenExpiresIn)
		expiresAt = &t
	}

	result, err := repository.NewTokenRepository(database.DB).Create(u.ID, tokenName, expiresAt)
	if err != nil {
		return err
	}

	fmt.Printf("Token created for %s (id %s)\n", tokenEmail, result.ID)
	fmt.Println()
	fmt.Printf("  %s\n", result.Token)
	fmt.Println()
	fmt.Println("Store this token securely. It will not be shown again.")
	return nil
}

func runTokenDelete(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	found, err := repository.NewTokenRepository(database.DB).Delete(args[0])
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("token %s not found", args[0])
	}

	fmt.Println("Token revoked")
	return nil
}
