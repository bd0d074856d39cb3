package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"icare/internal/api"
)

var (
	loginEmail    string
	loginPassword string

	registerUsername string
	registerEmail    string
	registerPassword string
	registerConfirm  string
	registerAgree    bool
	registerLat      float64
	registerLon      float64

	locationLat float64
	locationLon float64
)

// loginCmd authenticates and stores the issued token
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.Login(context.Background(), api.LoginRequest{
			Email:    loginEmail,
			Password: loginPassword,
		})
		if err != nil {
			return err
		}
		if err := tokens.Save(resp.Token, resp.User); err != nil {
			return err
		}
		logger.Info("logged in", zap.String("username", resp.User.Username))
		fmt.Printf("%s님, 환영합니다!\n", resp.User.Username)
		return nil
	},
}

// registerCmd creates an account; location is optional
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := api.RegisterRequest{
			Username:      registerUsername,
			Email:         registerEmail,
			Password:      registerPassword,
			PasswordCheck: registerConfirm,
			TermAgreed:    registerAgree,
		}
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
			req.Latitude = &registerLat
			req.Longitude = &registerLon
		}

		resp, err := client.Register(context.Background(), req)
		if err != nil {
			return err
		}
		fmt.Printf("가입이 완료되었습니다: %s (%s)\n이제 icare login 으로 로그인하세요.\n", resp.Username, resp.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Best effort on the server; the local token is dropped regardless.
		if err := client.Logout(context.Background()); err != nil && !api.IsAuthExpired(err) {
			logger.Warn("server logout failed", zap.Error(err))
		}
		if err := tokens.Clear(); err != nil {
			return err
		}
		fmt.Println("로그아웃되었습니다.")
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := client.FetchProfile(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("이름:   %s\n이메일: %s\n", profile.Username, profile.Email)
		return nil
	},
}

var deleteAccountCmd = &cobra.Command{
	Use:   "delete-account",
	Short: "Permanently delete the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.DeleteAccount(context.Background())
		if err != nil {
			return err
		}
		if err := tokens.Clear(); err != nil {
			return err
		}
		if resp.Message != "" {
			fmt.Println(resp.Message)
		} else {
			fmt.Println("계정이 삭제되었습니다.")
		}
		return nil
	},
}

var updateLocationCmd = &cobra.Command{
	Use:   "update-location",
	Short: "Update the profile coordinates used by nearby search",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.UpdateLocation(context.Background(), api.Location{
			Latitude:  locationLat,
			Longitude: locationLon,
		})
		if err != nil {
			return err
		}
		if resp.Message != "" {
			fmt.Println(resp.Message)
		} else {
			fmt.Println("위치가 업데이트되었습니다.")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Display name (required)")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email (required)")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (required)")
	registerCmd.Flags().StringVar(&registerConfirm, "password-check", "", "Password confirmation (required)")
	registerCmd.Flags().BoolVar(&registerAgree, "agree-terms", false, "Agree to the terms of service")
	registerCmd.Flags().Float64Var(&registerLat, "lat", 0, "Initial latitude")
	registerCmd.Flags().Float64Var(&registerLon, "lon", 0, "Initial longitude")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("password-check")

	updateLocationCmd.Flags().Float64Var(&locationLat, "lat", 0, "Latitude (required)")
	updateLocationCmd.Flags().Float64Var(&locationLon, "lon", 0, "Longitude (required)")
	_ = updateLocationCmd.MarkFlagRequired("lat")
	_ = updateLocationCmd.MarkFlagRequired("lon")
}
