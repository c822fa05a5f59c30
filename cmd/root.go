package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "policy-chatbot-be",
	Short: "Retrieval-augmented Q&A backend for organizational policy documents",
	Long: `policy-chatbot-be serves a retrieval-augmented question-answering API
over organizational policy documents. Uploaded documents are classified
against an allowed and a restricted reference corpus; questions are routed
to the matching context and answered by a generative model.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "config/config.yaml", "config file")
}
