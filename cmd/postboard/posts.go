// ABOUTME: CLI commands for post operations against a running service.
// ABOUTME: Provides list, create, update, delete, and search subcommands.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/storage"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Manage posts",
	Long:  "List, create, update, delete, and search posts on the configured service.",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	Long:  "List every post, optionally sorted by title or content.",
	Args:  cobra.NoArgs,
	RunE:  runPostsList,
}

var postsCreateCmd = &cobra.Command{
	Use:   "create <title> <content>",
	Short: "Create a post",
	Args:  cobra.ExactArgs(2),
	RunE:  runPostsCreate,
}

var postsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a post",
	Long:  "Replace the title and/or content of a post. Omitted fields keep their value.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsUpdate,
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsDelete,
}

var postsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search posts",
	Long:  "Find posts whose title or content contains the given text, ignoring case.",
	Args:  cobra.NoArgs,
	RunE:  runPostsSearch,
}

// Flags
var (
	postsSort      string
	postsDirection string
	postsTitle     string
	postsContent   string
)

// newPostStore is swapped in tests.
var newPostStore = func() storage.PostStore {
	return storage.NewRemoteClient(globalConfig.Client.APIURL)
}

var postsOut io.Writer = os.Stdout

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(postsListCmd, postsCreateCmd, postsUpdateCmd, postsDeleteCmd, postsSearchCmd)

	postsListCmd.Flags().StringVar(&postsSort, "sort", "", "Sort field: title or content")
	postsListCmd.Flags().StringVar(&postsDirection, "direction", "", "Sort direction: asc or desc")

	postsUpdateCmd.Flags().StringVar(&postsTitle, "title", "", "New title")
	postsUpdateCmd.Flags().StringVar(&postsContent, "content", "", "New content")

	postsSearchCmd.Flags().StringVar(&postsTitle, "title", "", "Text to find in titles")
	postsSearchCmd.Flags().StringVar(&postsContent, "content", "", "Text to find in content")
}

func runPostsList(cmd *cobra.Command, args []string) error {
	store := newPostStore()
	defer func() { _ = store.Close() }()

	posts, err := store.ListPosts(storage.ListPostsOptions{Sort: postsSort, Direction: postsDirection})
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}
	printPosts(posts)
	return nil
}

func runPostsCreate(cmd *cobra.Command, args []string) error {
	store := newPostStore()
	defer func() { _ = store.Close() }()

	post, err := store.CreatePost(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	fmt.Fprintf(postsOut, "Post created (ID: %d)\n", post.ID)
	return nil
}

func runPostsUpdate(cmd *cobra.Command, args []string) error {
	id, err := parsePostID(args[0])
	if err != nil {
		return err
	}

	var patch models.PostPatch
	if cmd.Flags().Changed("title") {
		patch.Title = &postsTitle
	}
	if cmd.Flags().Changed("content") {
		patch.Content = &postsContent
	}
	if patch.Empty() {
		return fmt.Errorf("nothing to update - pass --title and/or --content")
	}

	store := newPostStore()
	defer func() { _ = store.Close() }()

	post, err := store.UpdatePost(id, patch)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	fmt.Fprintf(postsOut, "Post %d updated\n", post.ID)
	return nil
}

func runPostsDelete(cmd *cobra.Command, args []string) error {
	id, err := parsePostID(args[0])
	if err != nil {
		return err
	}

	store := newPostStore()
	defer func() { _ = store.Close() }()

	if err := store.DeletePost(id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	fmt.Fprintf(postsOut, "Post with id %d has been deleted successfully.\n", id)
	return nil
}

func runPostsSearch(cmd *cobra.Command, args []string) error {
	store := newPostStore()
	defer func() { _ = store.Close() }()

	posts, err := store.SearchPosts(storage.SearchOptions{Title: postsTitle, Content: postsContent})
	if err != nil {
		return fmt.Errorf("failed to search posts: %w", err)
	}
	printPosts(posts)
	return nil
}

func parsePostID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid post ID %q", raw)
	}
	return id, nil
}

func printPosts(posts []models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(postsOut, "No posts found.")
		return
	}
	for _, post := range posts {
		fmt.Fprintf(postsOut, "--- #%d %s\n%s\n\n", post.ID, post.Title, post.Content)
	}
}
