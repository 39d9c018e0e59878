package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"polyglot-blog-be/config"
	"polyglot-blog-be/models"
	"polyglot-blog-be/utils"
)

var (
	flagAdminName     string
	flagAdminEmail    string
	flagAdminPassword string
)

var createAdminCmd = cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin user",
	Long:  "Create an admin user. The password defaults to the ADMIN_PASSWORD environment variable.",
	Args:  cobra.ExactArgs(0),

	RunE: func(cmd *cobra.Command, args []string) error {
		password := flagAdminPassword
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}
		return withDatabase(cmd.Context(), func(ctx context.Context) error {
			return createAdminUser(ctx, config.GetDB(), adminRequest{
				Name:     flagAdminName,
				Email:    strings.ToLower(strings.TrimSpace(flagAdminEmail)),
				Password: password,
			})
		})
	},
}

type adminRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func init() {
	createAdminCmd.Flags().StringVar(&flagAdminName, "name", "Admin", "Display name")
	createAdminCmd.Flags().StringVar(&flagAdminEmail, "email", "", "Login email")
	createAdminCmd.Flags().StringVar(&flagAdminPassword, "password", "", "Login password")
}

func createAdminUser(ctx context.Context, db *gorm.DB, req adminRequest) error {
	if fields := utils.ValidateStruct(req); fields != nil {
		errs := make([]error, 0, len(fields))
		for field, msg := range fields {
			errs = append(errs, fmt.Errorf("%s: %s", field, msg))
		}
		return errors.Join(errs...)
	}

	db = db.WithContext(ctx)
	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		slog.Info("Skipping admin user creation because it already exists",
			slog.String("email", req.Email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	slog.Info("Created new admin user",
		slog.String("email", user.Email),
		slog.String("user_id", user.ID))
	return nil
}
