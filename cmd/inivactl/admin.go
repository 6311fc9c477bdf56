package main

import (
	"fmt"

	"iniva-cms/models"

	"github.com/spf13/cobra"
)

func newCreateAdminCmd() *cobra.Command {
	var req models.CreateUserRequest
	var role string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a back office user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := openApp()
			if err != nil {
				return err
			}

			req.Role = models.UserRole(role)
			user, err := a.Auth.CreateUser(req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&req.Name, "name", "Administrador", "Display name")
	cmd.Flags().StringVar(&role, "role", string(models.RoleSuperAdmin), "EDITOR, ADMIN or SUPER_ADMIN")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the super admin and the default blog categories and tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := openApp()
			if err != nil {
				return err
			}

			cfg.SeedData = true
			return a.Bootstrap(cfg)
		},
	}
}
