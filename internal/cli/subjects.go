package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trivia-party/internal/config"
)

// NewSubjectsCmd lists the catalog.
func NewSubjectsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List available subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			service, closeCatalog, err := newService(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeCatalog()

			subjects, err := service.Subjects(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range subjects {
				fmt.Fprintf(out, "%-20s %-24s %d questions\n", s.ID, s.Name, s.QuestionCount)
			}
			return nil
		},
	}
}
