// Package auth implements the cardeactl auth subcommands.
package auth

import "github.com/spf13/cobra"

// AuthCmd groups the authentication commands.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(registerCmd)
	AuthCmd.AddCommand(statusCmd)
	AuthCmd.AddCommand(logoutCmd)
}
