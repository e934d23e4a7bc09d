package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/existflow/tempo/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the Tempo server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and discard the local session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func clientFromConfig() (*api.Client, *api.Session, error) {
	session, err := api.LoadSession(loadedConfig().ServerURL)
	if err != nil {
		return nil, nil, err
	}
	return api.NewClient(session), session, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, session, err := clientFromConfig()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	password := string(passwordBytes)
	fmt.Println()

	fmt.Println("🔄 Logging in...")
	if err := client.Login(context.Background(), username, password); err != nil {
		return err
	}

	fmt.Printf("✅ Logged in to %s\n", session.ServerURL)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, session, err := clientFromConfig()
	if err != nil {
		return err
	}

	if !session.LoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Println("🔄 Logging out...")
	if err := client.Logout(context.Background()); err != nil {
		return err
	}

	fmt.Println("✅ Logged out successfully.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	client, session, err := clientFromConfig()
	if err != nil {
		return err
	}

	if !session.LoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	user, err := client.Me(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s> @ %s\n", user.Username, user.Email, session.ServerURL)
	return nil
}
