package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	feedHistoryPages int
	feedMarkRead     bool
)

// feedCmd represents the feed command
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the activity feed",
	Long: `Show the activity feed around the last-read position. --history pulls
additional pages of older posts; --mark-read advances the read marker to
the newest loaded post.`,
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().IntVar(&feedHistoryPages, "history", 0, "extra pages of older posts to load")
	feedCmd.Flags().BoolVar(&feedMarkRead, "mark-read", false, "advance the read marker to the newest post")
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := feedStore.LoadInitial(ctx); err != nil {
		return fmt.Errorf("failed to load feed: %w", err)
	}
	for i := 0; i < feedHistoryPages && feedStore.HasMoreHistory(); i++ {
		if err := feedStore.LoadHistory(ctx); err != nil {
			return fmt.Errorf("failed to load older posts: %w", err)
		}
	}
	if feedStore.HasMoreNew() {
		if err := feedStore.LoadNew(ctx); err != nil {
			return fmt.Errorf("failed to load newer posts: %w", err)
		}
	}

	posts := feedStore.Posts()
	if len(posts) == 0 {
		fmt.Println("The feed is empty.")
		return nil
	}

	lastSeen := feedStore.LastSeenID()
	for _, post := range posts {
		marker := " "
		if post.ID > lastSeen {
			marker = "•"
		}
		fmt.Printf("%s [%d] %s\n", marker, post.ID, post.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("    %s\n", post.Content)
		if len(post.Images) > 0 {
			fmt.Printf("    %d image(s)\n", len(post.Images))
		}
		if post.VideoURL != "" {
			fmt.Printf("    video: %s\n", post.VideoURL)
		}
	}

	if feedStore.HasMoreHistory() {
		fmt.Println("… older posts available, rerun with a higher --history")
	}

	if feedMarkRead {
		newest := posts[len(posts)-1]
		feedStore.UpdateProgress(ctx, newest.ID)
		fmt.Printf("Read marker advanced to post %d.\n", newest.ID)
	}
	return nil
}
