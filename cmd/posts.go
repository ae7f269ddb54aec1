package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rasiler/academy-graphql1/internal/blog"
	"github.com/rasiler/academy-graphql1/internal/ui"
)

var (
	postsJSON     bool
	postsCategory string
)

var postsCmd = &cobra.Command{
	Use:     "posts",
	Aliases: []string{"ls"},
	Short:   "List posts",
	Long:    `Lists the posts in the data set, optionally filtered by category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var category *blog.Category
		if postsCategory != "" {
			c, err := blog.ParseCategory(postsCategory)
			if err != nil {
				return err
			}
			category = &c
		}

		posts := core.Posts(category)

		// JSON output
		if postsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(posts)
		}

		// Human-friendly output
		if len(posts) == 0 {
			fmt.Println(ui.Muted.Render("No posts found."))
			return nil
		}

		// Calculate max ID width
		maxIDWidth := 2 // minimum for "ID" header
		for _, p := range posts {
			if w := len(fmt.Sprint(p.ID)); w > maxIDWidth {
				maxIDWidth = w
			}
		}
		maxIDWidth += 2 // padding

		// Column styles with widths for alignment
		idStyle := lipgloss.NewStyle().Width(maxIDWidth)
		dateStyle := lipgloss.NewStyle().Width(12)
		categoryStyle := lipgloss.NewStyle().Width(12)
		likesStyle := lipgloss.NewStyle().Width(7)
		titleStyle := lipgloss.NewStyle()

		// Header style
		headerCol := lipgloss.NewStyle().Foreground(ui.ColorMuted)

		header := lipgloss.JoinHorizontal(lipgloss.Top,
			idStyle.Render(headerCol.Render("ID")),
			dateStyle.Render(headerCol.Render("DATE")),
			categoryStyle.Render(headerCol.Render("CATEGORY")),
			likesStyle.Render(headerCol.Render("LIKES")),
			titleStyle.Render(headerCol.Render("TITLE")),
		)
		fmt.Println(header)
		fmt.Println(ui.Muted.Render(strings.Repeat("─", maxIDWidth+12+12+7+30)))

		for _, p := range posts {
			date := "-"
			if p.Date != nil {
				date = p.Date.Format("2006-01-02")
			}

			row := lipgloss.JoinHorizontal(lipgloss.Top,
				idStyle.Render(fmt.Sprint(p.ID)),
				dateStyle.Render(date),
				categoryStyle.Render(ui.RenderCategory(p.Category)),
				likesStyle.Render(fmt.Sprint(p.LikeCount)),
				titleStyle.Render(truncate(p.Title, 50)),
			)
			fmt.Println(row)
		}

		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func init() {
	postsCmd.Flags().BoolVar(&postsJSON, "json", false, "Output as JSON")
	postsCmd.Flags().StringVarP(&postsCategory, "category", "c", "", "Filter by category (meteor, product, user-story, other)")
	rootCmd.AddCommand(postsCmd)
}
