package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage dashboard to-dos",
}

var todoAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a to-do",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, doc, err := openBoard()
		if err != nil {
			return err
		}
		defer doc.Close()

		id, err := b.AddTodo(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("Added to-do %s.\n", shortID(id))
		return nil
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a to-do as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, doc, err := openBoard()
		if err != nil {
			return err
		}
		defer doc.Close()

		todos, err := b.Todos()
		if err != nil {
			return err
		}
		ids := make([]string, len(todos))
		for i, t := range todos {
			ids[i] = t.ID
		}
		id, err := resolveID(args[0], ids)
		if err != nil {
			return err
		}

		ok, err := b.CompleteTodo(id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no to-do with id %s", args[0])
		}
		fmt.Println("Done.")
		return nil
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List to-dos, pending first",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, doc, err := openBoard()
		if err != nil {
			return err
		}
		defer doc.Close()

		todos, err := b.Todos()
		if err != nil {
			return err
		}
		if len(todos) == 0 {
			cmd.Println("no to-dos")
			return nil
		}
		for _, t := range todos {
			mark := "[ ]"
			if t.Done {
				mark = "[x]"
			}
			cmd.Printf("%s %s  %s\n", mark, shortID(t.ID), t.Text)
		}
		return nil
	},
}

// shortID trims a UUID to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// resolveID matches a user-supplied id or unique prefix against known ids.
func resolveID(input string, ids []string) (string, error) {
	var match string
	var count int
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			match = id
			count++
		}
	}
	if count == 0 {
		return "", fmt.Errorf("no item with id %s", input)
	}
	if count > 1 {
		return "", fmt.Errorf("id %s is ambiguous", input)
	}
	return match, nil
}

func init() {
	todoCmd.AddCommand(todoAddCmd, todoDoneCmd, todoListCmd)
	rootCmd.AddCommand(todoCmd)
}
