package main

import (
	"fmt"

	"innkeep/config"
	"innkeep/infras/jwt"
	"innkeep/shared/constant"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	tokenEmail   string
	tokenRole    string
	tokenRefresh string
)

var tokenCmd = &cobra.Command{
	Use:   "token [staff-id]",
	Short: "Mint a staff token pair, or rotate one with --refresh",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		signer := jwt.New(config.Get())

		var (
			pair *jwt.TokenPair
			err  error
		)

		switch {
		case tokenRefresh != "":
			pair, err = signer.Refresh(tokenRefresh)
		case len(args) == 1:
			pair, err = signer.Issue(jwt.Staff{ID: args[0], Email: tokenEmail, Role: tokenRole})
		default:
			return fmt.Errorf("staff id is required unless --refresh is given")
		}

		if err != nil {
			return fmt.Errorf("failed to mint token: %w", err)
		}

		label := color.New(color.FgCyan, color.Bold)

		fmt.Println(label.Sprint("access:  ") + pair.AccessToken)
		fmt.Println(label.Sprint("refresh: ") + pair.RefreshToken)
		fmt.Println(label.Sprint("expires: ") + fmt.Sprintf("%ds", pair.ExpiresIn))

		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email recorded in the token")
	tokenCmd.Flags().StringVar(&tokenRole, "role", constant.RoleReceptionist, "staff role")
	tokenCmd.Flags().StringVar(&tokenRefresh, "refresh", "", "refresh token to rotate")
}
