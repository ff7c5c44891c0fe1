package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/smart-hire/internal/render"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the domains known to the backend",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := prepare(cmd)

		domains, err := d.client.Domains(cmd.Context())
		if err != nil {
			fatal(d.logger, "getting domains", err)
		}

		d.logger.Info("getting domains", zap.Int("count", domains.Count))
		d.write(domains, render.RenderList("Domains", domains.Names, "No domains available"))
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the job roles known to the backend",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := prepare(cmd)
		domain := cmd.Flag("domain").Value.String()

		roles, err := d.client.JobRoles(cmd.Context(), domain)
		if err != nil {
			fatal(d.logger, "getting job roles", err)
		}

		title := "Job Roles"
		if domain != "" {
			title += " in " + domain
		}

		d.logger.Info("getting job roles", zap.String("domain", domain), zap.Int("count", roles.Count))
		d.write(roles, render.RenderList(title, roles.Roles, "No job roles available"))
	},
}

var modelInfoCmd = &cobra.Command{
	Use:   "model-info",
	Short: "Show information about the backend model",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := prepare(cmd)

		info, err := d.client.ModelInfo(cmd.Context())
		if err != nil {
			fatal(d.logger, "getting model info", err)
		}

		d.write(info, render.RenderModelInfo(info))
	},
}

func init() {
	rootCmd.AddCommand(domainsCmd, rolesCmd, modelInfoCmd)

	rolesCmd.Flags().String("domain", "", "only list roles of this domain (required by the dashboard backend)")
}
