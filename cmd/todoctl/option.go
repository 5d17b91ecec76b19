package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/i18n"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"github.com/yukikurage/todo-tracker/internal/services"
)

func setOptionCmd() *cobra.Command {
	var (
		userID      uint64
		category    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "set-option <name> <value>",
		Short: "Create or overwrite a setting",
		Long: `Create or overwrite the setting identified by name, user and category.

Without --user the setting is global and applies to every user who has not
chosen their own value.

Examples:
  todoctl set-option language en
  todoctl set-option per_page 25 --user 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDatabase()
			if err != nil {
				return err
			}

			catalog, err := i18n.NewCatalog(cfg.DefaultLanguage, cfg.SupportedLanguages)
			if err != nil {
				return err
			}

			input := services.SetOptionInput{
				Name:        args[0],
				Value:       args[1],
				Description: description,
				Category:    category,
			}
			if cmd.Flags().Changed("user") {
				input.UserID = &userID
			}

			settings := services.NewSettingsService(repository.NewSettingRepository(db), catalog)
			setting, err := settings.SetOption(cmd.Context(), input)
			if err != nil {
				return err
			}

			scope := "global"
			if setting.UserID != nil {
				scope = fmt.Sprintf("user %d", *setting.UserID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s, %s)\n", setting.Name, setting.Value, scope, setting.Category)
			return nil
		},
	}

	cmd.Flags().Uint64VarP(&userID, "user", "u", 0, "owner user id; global when omitted")
	cmd.Flags().StringVarP(&category, "category", "c", constants.CategoryUserSetting, "setting category")
	cmd.Flags().StringVarP(&description, "description", "d", "", "human readable description")

	return cmd
}
