package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	messageName    string
	messageText    string
	messagePrivate bool
)

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Send a written tribute",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := apiClient().SendMessage(cmd.Context(), messageName, messageText, !messagePrivate)
		if err != nil {
			return err
		}
		fmt.Printf("tribute %s submitted\n", res.ID)
		return nil
	},
}

func init() {
	messageCmd.Flags().StringVarP(&messageName, "name", "n", "", "your name")
	messageCmd.Flags().StringVarP(&messageText, "message", "m", "", "the tribute text")
	messageCmd.Flags().BoolVar(&messagePrivate, "private", false, "keep the tribute off the public wall")
	_ = messageCmd.MarkFlagRequired("name")
	_ = messageCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(messageCmd)
}
