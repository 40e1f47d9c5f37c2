package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clapperhq/clapper/api"
)

var (
	loginUsername string
	loginPassword string

	registerUsername string
	registerPassword string
	registerEmail    string
	registerCode     string
	sendCodeOnly     bool
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the streaming service",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	creds := api.Credentials{Username: loginUsername, Password: loginPassword}

	result := sessionStore.Login(cmd.Context(), creds, "")
	if !result.Success {
		return errors.New(result.Message)
	}

	profile := sessionStore.Profile()
	fmt.Printf("Signed in as %s\n", profile.Username)
	if profile.IsVIP() {
		fmt.Printf("VIP membership active until %s\n", profile.VIPExpiresAt.Format("2006-01-02"))
	}
	return nil
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionStore.Logout()
		fmt.Println("Signed out.")
		return nil
	},
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new account. When the service requires email verification,
first request a code with --send-code, then register with --code.`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "desired username")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "desired password")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVar(&registerCode, "code", "", "email verification code")
	registerCmd.Flags().BoolVar(&sendCodeOnly, "send-code", false, "only request a verification code")
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sessionStore.FetchRegistrationSettings(ctx)

	if sendCodeOnly {
		if registerEmail == "" {
			return errors.New("--email is required to request a verification code")
		}
		result := sessionStore.SendVerificationCode(ctx, registerEmail)
		if !result.Success {
			return errors.New(result.Message)
		}
		fmt.Printf("Verification code sent to %s\n", registerEmail)
		return nil
	}

	if registerUsername == "" || registerPassword == "" {
		return errors.New("--username and --password are required")
	}
	if sessionStore.EmailVerificationEnabled() && registerCode == "" {
		return errors.New("email verification is enabled; request a code with --send-code first, then pass it via --code")
	}

	details := api.RegistrationDetails{
		Username:         registerUsername,
		Password:         registerPassword,
		Email:            registerEmail,
		VerificationCode: registerCode,
	}
	result := sessionStore.Register(ctx, details)
	if !result.Success {
		return errors.New(result.Message)
	}

	fmt.Println("Account created.")
	if days := sessionStore.NewUserVIPDays(); days > 0 {
		fmt.Printf("Welcome gift: %d days of VIP membership.\n", days)
	}
	fmt.Println("Sign in with: clapper login")
	return nil
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sessionStore.IsAuthenticated() {
			fmt.Println("Not signed in.")
			return nil
		}

		profile := sessionStore.Profile()
		fmt.Printf("Signed in as: %s\n", profile.Username)
		if profile.Email != "" {
			fmt.Printf("Email: %s\n", profile.Email)
		}
		if profile.IsVIP() {
			remaining := time.Until(profile.VIPExpiresAt)
			fmt.Printf("VIP: active, %d days remaining\n", int(remaining.Hours()/24))
		} else {
			fmt.Println("VIP: inactive")
		}
		return nil
	},
}
