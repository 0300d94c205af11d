package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gookit/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"newbie_greeter/internal/interfaces"
	"newbie_greeter/internal/repository"
)

var errNotSeen = errors.New("username not seen")

type storeFlags struct {
	kind        string
	path        string
	badgerPath  string
	databaseURL string
	noColor     bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	flags := &storeFlags{}

	rootCmd := &cobra.Command{
		Use:           "seenctl",
		Short:         "Inspect the greeter's seen users",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.kind, "store", envOr("SEEN_STORE", repository.StoreFile), "store kind: file, postgres or badger")
	pf.StringVar(&flags.path, "path", envOr("SEEN_USERS_PATH", repository.DefaultSeenUsersPath), "file store path")
	pf.StringVar(&flags.badgerPath, "badger-path", envOr("BADGER_PATH", "storage/badger"), "badger directory")
	pf.StringVar(&flags.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(listCmd(flags))
	rootCmd.AddCommand(checkCmd(flags))

	return rootCmd
}

func listCmd(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List seen users in the order they first wrote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, status, err := loadSeenUsers(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			header := fmt.Sprintf("Seen users (%s): %d", status, len(users))
			if !flags.noColor {
				header = color.New(color.FgGreen, color.OpBold).Render(header)
			}
			fmt.Fprintln(out, header)

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"#", "Username"})
			table.SetAutoFormatHeaders(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			for i, user := range users {
				table.Append([]string{strconv.Itoa(i + 1), user})
			}
			table.Render()
			return nil
		},
	}
}

func checkCmd(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <username>",
		Short: "Report whether a username has been greeted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, _, err := loadSeenUsers(flags)
			if err != nil {
				return err
			}
			username := args[0]
			for _, user := range users {
				if user == username {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: seen\n", username)
					return nil
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not seen\n", username)
			return errNotSeen
		},
	}
}

func loadSeenUsers(flags *storeFlags) ([]string, interfaces.LoadStatus, error) {
	var pool *pgxpool.Pool
	if flags.kind == repository.StorePostgres {
		if flags.databaseURL == "" {
			return nil, interfaces.LoadMissing, errors.New("--database-url is required for the postgres store")
		}
		// read-only: no migrations, the bot owns the schema
		p, err := pgxpool.New(context.Background(), flags.databaseURL)
		if err != nil {
			return nil, interfaces.LoadMissing, fmt.Errorf("unable to create connection pool: %w", err)
		}
		defer p.Close()
		pool = p
	}

	store, closeStore, err := repository.OpenSeenUserStore(flags.kind, flags.path, flags.badgerPath, pool)
	if err != nil {
		return nil, interfaces.LoadMissing, err
	}
	defer func() { _ = closeStore() }()

	return store.Load()
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
