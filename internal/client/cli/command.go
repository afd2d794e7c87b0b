package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build information, set by main.
var (
	Version   = "dev"
	BuildDate = "unknown"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "vocabdeck",
		Short: "Vocabulary flashcards with generated explanations",
		Long: `vocabdeck manages vocabulary collections and flashcards against a
VocabDeck server and lets you play them in random order.

Examples:
  vocabdeck signup            # create an account
  vocabdeck                   # open the interactive shell
  vocabdeck reset --email me@example.com`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildDate),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			InitConfig(v, flags.CfgFile, cmd.ErrOrStderr())
			flags.Server = v.GetString("server")
			flags.StateFile = v.GetString("state")
			flags.Verbose = v.GetBool("verbose")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, flags)
		},
	}

	setupFlags(rootCmd, flags)
	bindFlagsToViper(v, rootCmd)

	rootCmd.AddCommand(
		newSignUpCommand(flags),
		newSignInCommand(flags),
		newSignOutCommand(flags),
		newResetCommand(flags),
		newPasswdCommand(flags),
		newShellCommand(flags),
	)
	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.vocabdeck.yaml)")
	cmd.PersistentFlags().StringVarP(&flags.Server, "server", "s", flags.Server, "VocabDeck server URL")
	cmd.PersistentFlags().StringVar(&flags.StateFile, "state", flags.StateFile, "path to the local session file")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "log HTTP traffic to stderr")
}

func bindFlagsToViper(v *viper.Viper, cmd *cobra.Command) {
	_ = v.BindPFlag("server", cmd.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag("state", cmd.PersistentFlags().Lookup("state"))
	_ = v.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
}

// InitConfig initializes viper configuration
func InitConfig(v *viper.Viper, cfgFile string, stderr io.Writer) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(stderr, "Error getting home directory: %v\n", err)
			return
		}
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".vocabdeck")
	}

	v.SetEnvPrefix("VOCABDECK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil && v.GetBool("verbose") {
		fmt.Fprintln(stderr, "Using config file:", v.ConfigFileUsed())
	}
}

func openApp(flags *Flags) (*App, error) {
	return NewApp(flags.Server, flags.StateFile, flags.Verbose, nil)
}

func runShell(cmd *cobra.Command, flags *Flags) error {
	app, err := openApp(flags)
	if err != nil {
		return err
	}
	defer func() { _ = app.Log.Sync() }()

	if app.State.AccessToken() == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Not signed in. Run 'vocabdeck signin' or 'vocabdeck signup' first.")
		return nil
	}
	return NewShell(app, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}

func newShellCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, flags)
		},
	}
}

func readCredentials(cmd *cobra.Command) (string, string, error) {
	r := bufio.NewReader(cmd.InOrStdin())
	email, err := promptLine(r, cmd.OutOrStdout(), "Email: ")
	if err != nil {
		return "", "", err
	}
	if email == "" {
		return "", "", errors.New("email is required")
	}
	pw, err := promptPassword(cmd.OutOrStdout(), "Password: ")
	if err != nil {
		return "", "", err
	}
	return email, pw, nil
}

func newSignUpCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(flags)
			if err != nil {
				return err
			}
			email, pw, err := readCredentials(cmd)
			if err != nil {
				return err
			}
			sess, err := app.Client.SignUp(cmd.Context(), email, pw)
			if err != nil {
				return err
			}
			if err := app.State.SetSession(*sess); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created. Run 'vocabdeck' to start.")
			return nil
		},
	}
}

func newSignInCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "signin",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(flags)
			if err != nil {
				return err
			}
			email, pw, err := readCredentials(cmd)
			if err != nil {
				return err
			}
			sess, err := app.Client.SignIn(cmd.Context(), email, pw)
			if err != nil {
				return err
			}
			if err := app.State.SetSession(*sess); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in until %s\n", sess.ExpiresAt.Local().Format(time.DateTime))
			return nil
		},
	}
}

func newSignOutCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(flags)
			if err != nil {
				return err
			}
			err = app.Settings.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return err
		},
	}
}

func newResetCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Request a password reset or complete one with a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(flags)
			if err != nil {
				return err
			}
			return runReset(cmd.Context(), cmd, app, flags)
		},
	}
	cmd.Flags().StringVar(&flags.Email, "email", "", "email to send the reset token to")
	cmd.Flags().StringVar(&flags.Token, "token", "", "reset token received by email")
	cmd.MarkFlagsMutuallyExclusive("email", "token")
	cmd.MarkFlagsOneRequired("email", "token")
	return cmd
}

func runReset(ctx context.Context, cmd *cobra.Command, app *App, flags *Flags) error {
	out := cmd.OutOrStdout()
	if flags.Email != "" {
		if err := app.Settings.RequestPasswordReset(ctx, flags.Email); err != nil {
			return err
		}
		fmt.Fprintln(out, "If the account exists, a reset token is on its way.")
		return nil
	}

	pw, err := promptPassword(out, "New password: ")
	if err != nil {
		return err
	}
	if err := app.Client.CompleteReset(ctx, flags.Token, pw); err != nil {
		return err
	}
	fmt.Fprintln(out, "Password updated. Sign in with the new password.")
	return nil
}

func newPasswdCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of the signed in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(flags)
			if err != nil {
				return err
			}
			pw, err := promptPassword(cmd.OutOrStdout(), "New password: ")
			if err != nil {
				return err
			}
			if err := app.Settings.UpdatePassword(cmd.Context(), pw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated")
			return nil
		},
	}
}
