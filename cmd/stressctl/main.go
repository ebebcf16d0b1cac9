package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mindtrack/stress-api/internal/client"
	"github.com/mindtrack/stress-api/internal/core/domain"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:           "stressctl",
		Short:         "CLI for the stress-support API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&server, "server", "http://localhost:5000", "API base URL")

	cmd.AddCommand(newRegisterCommand(&server))
	cmd.AddCommand(newLoginCommand(&server))
	cmd.AddCommand(newMeCommand(&server))
	cmd.AddCommand(newPredictCommand(&server))
	cmd.AddCommand(newHistoryCommand(&server))
	cmd.AddCommand(newLogoutCommand(&server))
	return cmd
}

// newGateway builds the session gateway and restores any persisted session.
func newGateway(ctx context.Context, server string) (*client.Gateway, *client.APIClient, error) {
	api := client.NewAPIClient(server)
	store, err := client.DefaultFileStore()
	if err != nil {
		return nil, nil, err
	}
	gw := client.NewGateway(api, store)
	gw.Bootstrap(ctx)
	return gw, api, nil
}

func newRegisterCommand(server *string) *cobra.Command {
	var in client.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := newGateway(cmd.Context(), *server)
			if err != nil {
				return err
			}
			in.Password, err = promptPassword("Password: ")
			if err != nil {
				return err
			}

			res := gw.Register(cmd.Context(), in)
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}
			fmt.Println(res.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCommand(server *string) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := newGateway(cmd.Context(), *server)
			if err != nil {
				return err
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			res := gw.Login(cmd.Context(), email, password)
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}
			fmt.Println(res.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newMeCommand(server *string) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current session's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := newGateway(cmd.Context(), *server)
			if err != nil {
				return err
			}
			if !gw.IsAuthenticated() {
				return fmt.Errorf("not logged in")
			}

			s := gw.Session()
			fmt.Printf("%s %s <%s>\n", s.User.FirstName, s.User.LastName, s.User.Email)
			return nil
		},
	}
}

func newPredictCommand(server *string) *cobra.Command {
	var in domain.QuestionnaireInput

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Submit the questionnaire and print the prediction",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, api, err := newGateway(cmd.Context(), *server)
			if err != nil {
				return err
			}

			// The endpoint is open; a session token just links the result
			// to the account's history.
			body, err := api.Predict(cmd.Context(), in, gw.Token())
			if err != nil {
				return err
			}
			return printJSON(body)
		},
	}

	cmd.Flags().StringVar(&in.AcademicStage, "stage", "", "Academic stage (e.g. Undergraduate)")
	cmd.Flags().Float64Var(&in.PeerPressure, "peer-pressure", 0, "Peer pressure rating, 1-5")
	cmd.Flags().Float64Var(&in.HomePressure, "home-pressure", 0, "Academic pressure from home, 1-5")
	cmd.Flags().StringVar(&in.StudyEnvironment, "environment", "", "Study environment (e.g. Library)")
	cmd.Flags().StringVar(&in.CopingStrategy, "coping", "", "Coping strategy")
	cmd.Flags().StringVar(&in.BadHabits, "habits", "", "Bad habits (Yes/No)")
	cmd.Flags().Float64Var(&in.AcademicCompetition, "competition", 0, "Academic competition rating, 1-5")
	_ = cmd.MarkFlagRequired("stage")
	_ = cmd.MarkFlagRequired("peer-pressure")
	_ = cmd.MarkFlagRequired("home-pressure")
	_ = cmd.MarkFlagRequired("environment")
	_ = cmd.MarkFlagRequired("coping")
	_ = cmd.MarkFlagRequired("habits")
	_ = cmd.MarkFlagRequired("competition")
	return cmd
}

func newHistoryCommand(server *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List your stored predictions",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, api, err := newGateway(cmd.Context(), *server)
			if err != nil {
				return err
			}
			if !gw.IsAuthenticated() {
				return fmt.Errorf("not logged in")
			}

			items, err := api.History(cmd.Context(), gw.Token())
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Printf("%s  %.2f  %s\n", item.CreatedAt.Format("2006-01-02 15:04"), item.StressLevel, item.Category)
			}
			return nil
		},
	}
}

func newLogoutCommand(server *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := newGateway(cmd.Context(), *server)
			if err != nil {
				return err
			}
			gw.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}
	return string(raw), nil
}

func printJSON(raw json.RawMessage) error {
	var buf map[string]any
	if err := json.Unmarshal(raw, &buf); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	pretty, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}
