package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"github.com/yukikurage/todo-tracker/internal/services"
	"github.com/yukikurage/todo-tracker/internal/utils"
)

func createAdminCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create-admin <username>",
		Short: "Create a user with the admin role",
		Long: `Create a user with the admin role.

When --password is omitted a temporary password is generated and printed.

Examples:
  todoctl create-admin root --email root@example.com
  todoctl create-admin root --email root@example.com --password s3cret!`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			roleRepo := repository.NewRoleRepository(db)
			adminRole, err := roleRepo.FindByName(ctx, constants.AdminRoleName)
			if err != nil {
				return fmt.Errorf("failed to find admin role: %w", err)
			}

			generated := password == ""
			if generated {
				if password, err = utils.GenerateTemporaryPassword(); err != nil {
					return err
				}
			}

			users := services.NewUserService(repository.NewUserRepository(db), roleRepo)
			user, err := users.CreateUser(ctx, services.CreateUserInput{
				Username: args[0],
				Email:    email,
				Password: password,
				RoleID:   adminRole.ID,
			})
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (id %d)\n", user.Username, user.ID)
			if generated {
				fmt.Fprintf(cmd.OutOrStdout(), "Temporary password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email address (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password; generated when empty")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
