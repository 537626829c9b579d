package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mealtrack/internal/bootstrap"
	foodlogdto "mealtrack/internal/modules/foodlog/dto"
	"mealtrack/internal/platform/config"
	apperrors "mealtrack/internal/platform/errors"
	"mealtrack/internal/platform/numfmt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var home string

	root := &cobra.Command{
		Use:           "mealtrack",
		Short:         "Log what you eat and watch your daily macronutrients",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&home, "home", config.DefaultHome(), "directory holding config, credentials, cache and journal")

	root.AddCommand(newTUICmd(&home))
	root.AddCommand(newAuthCmd(&home))
	root.AddCommand(newFoodCmd(&home))
	root.AddCommand(newTotalsCmd(&home))
	root.AddCommand(newJournalCmd(&home))
	root.AddCommand(newCacheCmd(&home))
	return root
}

// withApp builds the app for one command and closes it afterwards.
func withApp(home string, fn func(app *bootstrap.App) error) error {
	cfg, err := config.New(home)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(home *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the food tracker",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*home, bootstrap.RunTUI)
		},
	}
}

func newAuthCmd(home *string) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Manage backend credentials"}

	var userID, token string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Store the user id and bearer token issued at login",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*home, func(app *bootstrap.App) error {
				out, err := app.AccountCLI.Set(context.Background(), userID, token)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", out.UserID)
				if out.HasExpiry {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "token expires %s\n", out.ExpiresAt.Local().Format(time.RFC1123))
				}
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&userID, "user-id", "", "user id (read from the token when omitted)")
	setCmd.Flags().StringVar(&token, "token", "", "bearer token")
	_ = setCmd.MarkFlagRequired("token")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*home, func(app *bootstrap.App) error {
				out, err := app.AccountCLI.Show(context.Background())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if !out.Authenticated {
					_, _ = fmt.Fprintln(w, "not signed in")
					return nil
				}
				_, _ = fmt.Fprintf(w, "user:   %s\n", out.UserID)
				_, _ = fmt.Fprintf(w, "token:  %s\n", out.TokenPreview)
				_, _ = fmt.Fprintf(w, "source: %s\n", out.Source)
				if out.HasExpiry {
					state := "valid"
					if out.Expired {
						state = "EXPIRED"
					}
					_, _ = fmt.Fprintf(w, "expiry: %s (%s)\n", out.ExpiresAt.Local().Format(time.RFC1123), state)
				}
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*home, func(app *bootstrap.App) error {
				if err := app.AccountCLI.Clear(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "credentials cleared")
				return nil
			})
		},
	}

	auth.AddCommand(setCmd, showCmd, clearCmd)
	return auth
}

func newFoodCmd(home *string) *cobra.Command {
	food := &cobra.Command{Use: "food", Short: "Today's food entries"}

	var cached bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the foods you ate today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*home, func(app *bootstrap.App) error {
				day, err := app.FoodCLI.List(context.Background(), cached)
				if err != nil {
					if cached && errors.Is(err, apperrors.ErrNotFound) {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing cached yet")
						return nil
					}
					return err
				}
				if cached {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cached %s\n", day.FetchedAt.Local().Format(time.RFC1123))
				}
				printEntries(cmd.OutOrStdout(), day.Entries)
				printTotals(cmd.OutOrStdout(), day.Totals)
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&cached, "cached", false, "read the last fetched list without contacting the backend")

	var draft foodlogdto.DraftInput
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a meal item to the tracker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*home, func(app *bootstrap.App) error {
				out, err := app.FoodCLI.Add(context.Background(), draft)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", draft.FoodName)
				if out.Drift {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "note: totals differ from the server list")
				}
				printTotals(cmd.OutOrStdout(), out.Totals)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&draft.FoodName, "name", "", "food name")
	addCmd.Flags().StringVar(&draft.Calories, "calories", "", "calories per serving")
	addCmd.Flags().StringVar(&draft.Protein, "protein", "", "protein grams per serving")
	addCmd.Flags().StringVar(&draft.Carbohydrates, "carbs", "", "carbohydrate grams per serving")
	addCmd.Flags().StringVar(&draft.Fat, "fat", "", "fat grams per serving")
	addCmd.Flags().StringVar(&draft.Servings, "servings", "", "number of servings")
	addCmd.Flags().StringVar(&draft.MealType, "meal", foodlogdto.MealTypePlaceholder, "Breakfast|Lunch|Dinner|Snack")

	food.AddCommand(listCmd, addCmd)
	return food
}

func newTotalsCmd(home *string) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Print today's total macronutrients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*home, func(app *bootstrap.App) error {
				day, err := app.FoodCLI.Totals(context.Background())
				if err != nil {
					return err
				}
				printTotals(cmd.OutOrStdout(), day.Totals)
				return nil
			})
		},
	}
}

func newJournalCmd(home *string) *cobra.Command {
	journal := &cobra.Command{Use: "journal", Short: "Markdown food journal"}
	journal.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Write today's foods to the journal note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*home, func(app *bootstrap.App) error {
				out, err := app.FoodCLI.ExportJournal(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d foods, %s kcal)\n", out.Path, out.Entries, numfmt.Format(out.Totals.Calories))
				return nil
			})
		},
	})
	return journal
}

func newCacheCmd(home *string) *cobra.Command {
	cache := &cobra.Command{Use: "cache", Short: "Offline copy of the last fetched list"}
	cache.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the cached list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*home, func(app *bootstrap.App) error {
				day, err := app.FoodCLI.List(context.Background(), true)
				if errors.Is(err, apperrors.ErrNotFound) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing cached yet")
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "user %s, fetched %s, %d foods\n",
					day.UserID, day.FetchedAt.Local().Format(time.RFC1123), len(day.Entries))
				return nil
			})
		},
	})
	cache.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop the cached lists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*home, func(app *bootstrap.App) error {
				if err := app.FoodCLI.ClearCache(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
				return nil
			})
		},
	})
	return cache
}

func printEntries(w io.Writer, entries []foodlogdto.EntryOutput) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "You've eaten nothing today...")
		return
	}
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s kcal\tx%s\t%s\n",
			e.ID, e.MealType, e.FoodName, numfmt.Format(e.Calories), numfmt.Format(e.Servings), e.Route)
	}
}

func printTotals(w io.Writer, t foodlogdto.TotalsOutput) {
	_, _ = fmt.Fprintf(w, "calories=%s protein=%sg carbohydrates=%sg fat=%sg\n",
		numfmt.Format(t.Calories), numfmt.Format(t.Protein), numfmt.Format(t.Carbohydrates), numfmt.Format(t.Fat))
}
