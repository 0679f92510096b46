package cmd

import (
	"context"
	"fmt"
	"log"

	"cvmatch/internal/logger"
	"cvmatch/internal/resumeapi"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowProfile = "Show profile"
	PromptSignOut     = "Sign out"
	PromptYes         = "Yes"
	PromptNo          = "No"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in identity and offer profile actions",
	Run: func(cmd *cobra.Command, _ []string) {
		profile(cmd)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.Flags().Bool("no-input", false, "print the identity and exit without the interactive menu")
}

func profile(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// A missing token is not fatal here: the profile fetch degrades to the
	// placeholder identity, same as an expired or rejected one.
	token, err := resolveToken(config)
	if err != nil {
		logger.Debug("no usable token, proceeding anonymously", zap.Error(err))
	}

	client := newClient(ctx, logger, config, token)

	me := client.GetMyProfile()

	fmt.Printf("[%s] %s\n", me.Initials(), me.DisplayName())

	if cmd.Flag("no-input").Value.String() == "true" {
		return
	}

	menu(me, config, logger)
}

// menu is the interactive loop behind the identity line. Leaving the loop is
// the "menu closed" state; every action returns there or exits.
func menu(me *resumeapi.Profile, config *Config, logger *zap.Logger) {
	for {
		prompt := promptui.Select{
			Label: "Profile menu",
			Items: []string{PromptShowProfile, PromptSignOut, PromptQuit},
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		switch action {
		case PromptShowProfile:
			showProfile(me)
		case PromptSignOut:
			if signOut(config, logger) {
				return
			}
		case PromptQuit:
			return
		}
	}
}

func showProfile(me *resumeapi.Profile) {
	if me == nil {
		fmt.Println("No profile available. The backend did not recognize the current token.")
		return
	}

	fmt.Printf("Name:     %s\n", me.DisplayName())
	if me.Email != "" {
		fmt.Printf("Email:    %s\n", me.Email)
	}
	if me.Location != "" {
		fmt.Printf("Location: %s\n", me.Location)
	}
}

// signOut asks for confirmation and clears the stored credential. It reports
// whether a sign-out actually happened; a declined confirmation just closes
// the menu iteration.
func signOut(config *Config, logger *zap.Logger) bool {
	confirm := promptui.Select{
		Label: "Sign out and clear the stored token?",
		Items: []string{PromptYes, PromptNo},
	}

	_, answer, err := confirm.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	if answer != PromptYes {
		return false
	}

	if err := tokenStore(config).Clear(); err != nil {
		logger.Fatal("clearing credential", zap.Error(err))
	}

	logger.Info("signed out")
	fmt.Println("Signed out. Obtain a new token and point token-file at it to sign in again.")

	return true
}
