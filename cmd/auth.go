package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/authinfo"
	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/config"
	"github.com/grihastudio/griha/internal/studio"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Griha Studio access token",
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who the stored token belongs to",
	RunE:  runAuthStatus,
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token [token]",
	Short: "Store an access token in the config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuthSetToken,
}

func init() {
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authSetTokenCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthStatus(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	token := config.Token(cfg)
	if token == "" {
		fmt.Println("\n  Not signed in. Run `griha auth set-token` with a token from")
		fmt.Println("  grihastudio.com (Account → API tokens).")
		return nil
	}

	fmt.Println()
	fmt.Printf("  Token: %s\n", maskToken(token))

	claims, err := authinfo.Inspect(token)
	if err != nil {
		fmt.Printf("  Warning: token does not decode as a JWT (%v)\n", err)
	} else {
		if claims.Email != "" {
			fmt.Printf("  Email: %s\n", claims.Email)
		}
		if claims.Name != "" {
			fmt.Printf("  Name:  %s\n", claims.Name)
		}
		if claims.Plan != "" {
			fmt.Printf("  Plan:  %s\n", claims.Plan)
		}
		switch {
		case claims.Expired():
			fmt.Println("  Expiry: EXPIRED. Get a fresh token from grihastudio.com")
		case claims.ExpiresAt != nil:
			fmt.Printf("  Expiry: %s (%s)\n",
				claims.ExpiresAt.Time.Local().Format("2006-01-02"),
				cli.FormatDuration(int64(claims.ExpiresIn().Seconds())))
		default:
			fmt.Println("  Expiry: none")
		}
	}

	// Live check against the API, best effort.
	client := studio.NewClient(config.APIBaseURL(cfg), token)
	if client == nil {
		fmt.Println("  Studio: token rejected locally (not a JWT)")
		fmt.Println()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	acct, err := client.Me(ctx)
	if err != nil {
		fmt.Printf("  Studio: unreachable (%v)\n", err)
	} else {
		fmt.Printf("  Studio: ok (%s, %d of %d rooms used)\n",
			acct.Plan, acct.RoomsUsed, acct.RoomsQuota)
	}
	fmt.Println()
	return nil
}

func runAuthSetToken(_ *cobra.Command, args []string) error {
	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		fmt.Print("  Paste your access token > ")
		reader := bufio.NewReader(os.Stdin)
		raw, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		token = strings.TrimSpace(raw)
	}

	if token == "" {
		return fmt.Errorf("no token given")
	}

	if _, err := authinfo.Inspect(token); err != nil {
		return fmt.Errorf("that does not look like a studio token: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Auth.Token = token
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Check it with `griha auth status`.")
	return nil
}

func maskToken(token string) string {
	if len(token) > 16 {
		return token[:8] + "..." + token[len(token)-4:]
	}
	if len(token) > 4 {
		return token[:4] + "..."
	}
	return "****"
}
