package main

import (
	"github.com/GunarsK-portfolio/inventory-service/internal/repository"
	"github.com/GunarsK-portfolio/inventory-service/internal/service"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type RegisterFlags struct {
	DBFlags  *DatabaseFlags
	Name     string
	Email    string
	Password string
	Admin    bool
}

func NewRegisterFlags() *RegisterFlags {
	return &RegisterFlags{
		DBFlags: NewDatabaseFlags(),
	}
}

func (f *RegisterFlags) BindFlags(fs *pflag.FlagSet) {
	f.DBFlags.BindFlags(fs)
	fs.StringVar(&f.Name, "name", f.Name, "display name of the new account")
	fs.StringVar(&f.Email, "email", f.Email, "login email of the new account")
	fs.StringVar(&f.Password, "password", f.Password, "initial password")
	fs.BoolVar(&f.Admin, "admin", f.Admin, "grant administrator privileges")
}

func init() {
	f := NewRegisterFlags()

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account, typically the first administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := f.DBFlags.Connect()
			if err != nil {
				return err
			}

			// Registration never touches sessions.
			auth := service.NewAuthService(repository.NewUserRepository(db), nil, nil)
			user, err := auth.Register(cmd.Context(), service.RegisterRequest{
				Name:     f.Name,
				Email:    f.Email,
				Password: f.Password,
				IsAdmin:  f.Admin,
			})
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"id":       user.ID,
				"email":    user.Email,
				"is_admin": user.IsAdmin,
			}).Info("account registered")
			return nil
		},
	}

	f.BindFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	rootCmd.AddCommand(cmd)
}
