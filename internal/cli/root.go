package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "condolctl",
	Short: "Leave tributes on the memorial site from the terminal",
	Long: `condolctl submits condolence messages, records voice notes and browses
the tribute wall of the memorial site from the terminal.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "base URL of the tribute API")
	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
}

func initConfig() {
	viper.SetEnvPrefix("condolctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func apiClient() *Client {
	return NewClient(viper.GetString("server"))
}
