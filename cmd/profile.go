package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clapperhq/clapper/profile"
)

var (
	favoritesToggle int64
	historyPages    int
	favoritesPages  int
)

// favoritesCmd represents the favorites command
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorites or toggle one",
	Long: `List the favorited titles, or toggle a single title on or off with
--toggle <movie-id>. Toggles apply immediately and roll back if the
server rejects them.`,
	RunE: runFavorites,
}

func init() {
	favoritesCmd.Flags().Int64VarP(&favoritesToggle, "toggle", "t", 0, "movie id to favorite or unfavorite")
	favoritesCmd.Flags().IntVar(&favoritesPages, "pages", 1, "number of pages to fetch")
}

func runFavorites(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if favoritesToggle != 0 {
		wasFavorited := favorites.IsFavorited(favoritesToggle)
		if err := favorites.Toggle(ctx, favoritesToggle, "/favorites"); err != nil {
			if errors.Is(err, profile.ErrLoginRequired) {
				return errors.New("sign in to manage favorites")
			}
			return fmt.Errorf("failed to update favorite: %w", err)
		}
		if wasFavorited {
			fmt.Printf("Removed movie %d from favorites.\n", favoritesToggle)
		} else {
			fmt.Printf("Added movie %d to favorites.\n", favoritesToggle)
		}
		return nil
	}

	list := profileLists.Favorites
	if err := list.LoadFirst(ctx); err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	for page := 1; page < favoritesPages && list.HasMore(); page++ {
		if err := list.LoadMore(ctx); err != nil {
			return fmt.Errorf("failed to load page %d: %w", page+1, err)
		}
	}

	movies := list.Items()
	if len(movies) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}

	fmt.Printf("Favorites (%d):\n", len(movies))
	printMovies(movies)
	if list.HasMore() {
		fmt.Println("… more available, rerun with a higher --pages")
	}
	return nil
}

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show watch history",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyPages, "pages", 1, "number of pages to fetch")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	list := profileLists.History
	if err := list.LoadFirst(ctx); err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	for page := 1; page < historyPages && list.HasMore(); page++ {
		if err := list.LoadMore(ctx); err != nil {
			return fmt.Errorf("failed to load page %d: %w", page+1, err)
		}
	}

	entries := list.Items()
	if len(entries) == 0 {
		fmt.Println("No watch history yet.")
		return nil
	}

	fmt.Printf("Watch history (%d):\n", len(entries))
	for _, entry := range entries {
		progress := strconv.Itoa(int(entry.Progress*100)) + "%"
		fmt.Printf("  • [%d] %s, watched %s (%s)\n",
			entry.Movie.ID, entry.Movie.Title,
			entry.WatchedAt.Format("2006-01-02 15:04"), progress)
	}
	if list.HasMore() {
		fmt.Println("… more available, rerun with a higher --pages")
	}
	return nil
}
