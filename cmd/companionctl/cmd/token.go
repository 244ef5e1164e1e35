// Package cmd implements the companionctl commands.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/companion/internal/integration/adapters"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/companion/internal/integration/persistence"
)

var (
	tokenSubject string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue and revoke API bearer tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a new bearer token",
	Args:  cobra.NoArgs,
	RunE:  runTokenIssue,
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke [token-id]",
	Short: "Revoke one token by id, or every token of --subject",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenRevoke,
}

func init() {
	tokenIssueCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "owner", "Subject the token is issued to")
	tokenRevokeCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Revoke every token issued to this subject")
	tokenCmd.AddCommand(tokenIssueCmd, tokenRevokeCmd)
}

func runTokenIssue(cmd *cobra.Command, args []string) error {
	cfg, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	service := adapters.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, persistence.NewTokenRepository(database.DB()))
	token, claims, err := service.GenerateToken(cmd.Context(), tokenSubject)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(dto.TokenResponse{
		Token:     token,
		TokenID:   claims.ID,
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt,
	})
}

func runTokenRevoke(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && tokenSubject == "" {
		return errors.New("pass a token id or --subject")
	}

	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	repo := persistence.NewTokenRepository(database.DB())

	if len(args) == 1 {
		if err := repo.RevokeToken(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to revoke token: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "revoked token %s\n", args[0])
		return nil
	}

	n, err := repo.RevokeAllForSubject(cmd.Context(), tokenSubject)
	if err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "revoked %d token(s) for %s\n", n, tokenSubject)
	return nil
}
