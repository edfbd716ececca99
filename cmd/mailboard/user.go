package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/mailboard/mailboard/internal/config"
	"github.com/mailboard/mailboard/internal/db"
	"github.com/mailboard/mailboard/internal/models"
	"github.com/mailboard/mailboard/internal/repository"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User management commands",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	RunE:  runUserCreate,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  runUserList,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete [email]",
	Short: "Delete a user and its API tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

var (
	userEmail    string
	userPassword string
	userName     string
)

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "User email")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "User password (will prompt if not provided)")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "User name")
	userCreateCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)

	userCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "/etc/mailboard/mailboard.yaml", "Path to configuration file")
}

func openDatabase() (*db.DB, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	// Prompt for password if not provided
	password := userPassword
	if password == "" {
		password, err = promptPassword()
		if err != nil {
			return err
		}
	}

	if len(password) < 10 {
		return fmt.Errorf("password must be at least 10 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := repository.NewUserRepository(database.DB)
	u := &models.User{
		Email:        userEmail,
		PasswordHash: string(hash),
		Name:         userName,
	}
	if err := users.Create(u); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("user with email %s already exists", userEmail)
		}
		return err
	}

	fmt.Printf("User %s created successfully\n", userEmail)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	users, err := repository.NewUserRepository(database.DB).List()
	if err != nil {
		return err
	}

	fmt.Printf("%-36s  %-30s  %-20s  %s\n", "ID", "Email", "Name", "Created")
	fmt.Println(strings.Repeat("-", 100))
	for _, u := range users {
		fmt.Printf("%-36s  %-30s  %-20s  %s\n", u.ID, u.Email, u.Name, u.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	email := args[0]

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	users := repository.NewUserRepository(database.DB)
	u, err := users.GetByEmail(email)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %s not found", email)
	}

	// Confirm deletion
	fmt.Printf("Are you sure you want to delete user %s? [y/N]: ", email)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		fmt.Println("Cancelled")
		return nil
	}

	found, err := users.Delete(u.ID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("user %s not found", email)
	}

	fmt.Printf("User %s deleted\n", email)
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Enter password: ")
	pwBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Print("Confirm password: ")
	pwBytes2, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	if string(pwBytes) != string(pwBytes2) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pwBytes), nil
}
