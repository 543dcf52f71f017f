package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kavitarao/studyhall/internal/ai"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage saved links",
}

var linkAddCmd = &cobra.Command{
	Use:   "add <url> [title]",
	Short: "Save a link; the page title is fetched when none is given",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		title := ""
		if len(args) == 2 {
			title = args[1]
		} else {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			page, err := ai.FetchPage(ctx, url)
			if err != nil {
				// The link is still worth saving without a title.
				logger.Debug("page title fetch failed", zap.String("url", url), zap.Error(err))
			} else {
				title = page.Title
				url = page.URL
			}
		}

		b, doc, err := openBoard()
		if err != nil {
			return err
		}
		defer doc.Close()

		id, err := b.AddLink(url, title)
		if err != nil {
			return err
		}
		fmt.Printf("Saved link %s.\n", shortID(id))
		return nil
	},
}

var linkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved links, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, doc, err := openBoard()
		if err != nil {
			return err
		}
		defer doc.Close()

		links, err := b.Links()
		if err != nil {
			return err
		}
		if len(links) == 0 {
			cmd.Println("no saved links")
			return nil
		}
		for _, l := range links {
			if l.Title != "" {
				cmd.Printf("%s  %s\n    %s\n", shortID(l.ID), l.Title, l.URL)
			} else {
				cmd.Printf("%s  %s\n", shortID(l.ID), l.URL)
			}
		}
		return nil
	},
}

func init() {
	linkCmd.AddCommand(linkAddCmd, linkListCmd)
	rootCmd.AddCommand(linkCmd)
}
