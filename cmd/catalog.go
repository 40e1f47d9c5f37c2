package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clapperhq/clapper/api"
	"github.com/clapperhq/clapper/filter"
)

var (
	browseGenre        string
	browseRegion       string
	browseTag          string
	browseSort         string
	browseMonetization string
	browsePages        int
	browseWhere        string
)

// homeCmd represents the home command
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the landing page",
	Long:  `Show the landing-page banner rotation and every section shelf.`,
	RunE:  runHome,
}

func runHome(cmd *cobra.Command, args []string) error {
	if err := homeStore.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load landing page: %w", err)
	}

	banners := homeStore.Banners()
	if len(banners) > 0 {
		fmt.Println("Featured:")
		for _, banner := range banners {
			fmt.Printf("  ★ %s (movie %d)\n", banner.Title, banner.MovieID)
		}
		fmt.Println()
	}

	for _, section := range homeStore.Sections() {
		fmt.Printf("%s\n", section.Title)
		fmt.Println(strings.Repeat("-", len(section.Title)))
		printMovies(section.List.Items())
		if section.List.HasMore() {
			fmt.Println("  … more available")
		}
		fmt.Println()
	}
	return nil
}

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog with filters",
	Long: `Browse the catalog filtered by genre, region, tag, sort order, and
monetization class. --where applies an additional client-side expression,
e.g. --where 'ReleaseYear >= 2020 && Rating > 8'.`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseGenre, "genre", "", "filter by genre")
	browseCmd.Flags().StringVar(&browseRegion, "region", "", "filter by region")
	browseCmd.Flags().StringVar(&browseTag, "tag", "", "filter by tag")
	browseCmd.Flags().StringVar(&browseSort, "sort", "", "sort order (published_at, release_year, rating)")
	browseCmd.Flags().StringVar(&browseMonetization, "monetization", "", "monetization class (vip, free)")
	browseCmd.Flags().IntVar(&browsePages, "pages", 1, "number of pages to fetch")
	browseCmd.Flags().StringVarP(&browseWhere, "where", "w", "", "client-side filter expression")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Monetization resets the other criteria, so apply it first.
	if browseMonetization != "" {
		if err := browseStore.SetMonetization(ctx, api.MonetizationType(browseMonetization)); err != nil {
			return err
		}
	}
	if browseGenre != "" {
		if err := browseStore.SetGenre(ctx, browseGenre); err != nil {
			return err
		}
	}
	if browseRegion != "" {
		if err := browseStore.SetRegion(ctx, browseRegion); err != nil {
			return err
		}
	}
	if browseTag != "" {
		if err := browseStore.SetTag(ctx, browseTag); err != nil {
			return err
		}
	}
	if browseSort != "" {
		if err := browseStore.SetSortBy(ctx, browseSort); err != nil {
			return err
		}
	}

	if browseStore.List.Len() == 0 {
		if err := browseStore.List.LoadFirst(ctx); err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
	}
	for page := 1; page < browsePages && browseStore.List.HasMore(); page++ {
		if err := browseStore.List.LoadMore(ctx); err != nil {
			return fmt.Errorf("failed to load page %d: %w", page+1, err)
		}
	}

	movies := browseStore.List.Items()

	if browseWhere != "" {
		expr, err := filter.Compile(browseWhere)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		movies, err = expr.Apply(movies)
		if err != nil {
			return fmt.Errorf("failed to apply filter: %w", err)
		}
	}

	if len(movies) == 0 {
		fmt.Println("No titles match.")
		return nil
	}

	fmt.Printf("Found %d titles:\n", len(movies))
	printMovies(movies)
	if browseStore.List.HasMore() {
		fmt.Println("… more available, rerun with a higher --pages")
	}
	return nil
}

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <movie-id>",
	Short: "Show playback details for a title",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	movieID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid movie id %q", args[0])
	}

	if err := playbackStore.Load(cmd.Context(), movieID); err != nil {
		if apiMsg := api.ErrorMessage(err, ""); apiMsg != "" {
			return fmt.Errorf("playback unavailable: %s", apiMsg)
		}
		return fmt.Errorf("failed to load playback data: %w", err)
	}

	detail := playbackStore.Detail()
	playData := playbackStore.PlayData()

	fmt.Printf("%s (%d)\n", detail.Title, detail.ReleaseYear)
	if detail.Director != "" {
		fmt.Printf("Directed by %s\n", detail.Director)
	}
	if len(detail.Actors) > 0 {
		fmt.Printf("Starring %s\n", strings.Join(detail.Actors, ", "))
	}
	if detail.Description != "" {
		fmt.Printf("\n%s\n", detail.Description)
	}
	fmt.Printf("\nStream (%s, expires in %ds):\n  %s\n", playData.Format, playData.ExpiresIn, playData.PlayURL)

	uiState.OpenVideoModal(playData.PlayURL)

	if related := playbackStore.Related(); len(related) > 0 {
		fmt.Println("\nRelated titles:")
		printMovies(related)
	}
	return nil
}

// printMovies renders a movie list with the markers the detail views use.
func printMovies(movies []api.Movie) {
	for _, movie := range movies {
		fmt.Printf("  • [%d] %s (%d)", movie.ID, movie.Title, movie.ReleaseYear)
		if movie.IsVIP() {
			fmt.Print(" [VIP]")
		}
		if favorites != nil && favorites.IsFavorited(movie.ID) {
			fmt.Print(" ♥")
		}
		fmt.Println()
	}
}
