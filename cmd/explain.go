package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/smart-hire/internal/render"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Ask the dashboard backend why a resume matches a role",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := prepare(cmd)
		role := cmd.Flag("role").Value.String()

		text, err := resumeText(cmd, os.Stdin)
		if err != nil {
			d.logger.Fatal("reading resume text", zap.Error(err))
		}

		exp, err := d.client.Explain(cmd.Context(), text, role)
		if err != nil {
			fatal(d.logger, "explaining the match", err)
		}

		d.write(exp, render.RenderExplanation(role, exp))
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)

	explainCmd.Flags().StringP("role", "r", "", "job role to explain")
	explainCmd.Flags().StringP("text", "t", "", "resume text")
	explainCmd.Flags().String("text-file", "", "read resume text from a file")

	explainCmd.MarkFlagRequired("role")
	explainCmd.MarkFlagsMutuallyExclusive("text", "text-file")
}
