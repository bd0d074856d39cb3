package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"icare/internal/api"
)

var (
	hospitalsOpenOnly  bool
	pharmaciesOpenOnly bool
)

// hospitalsCmd lists hospitals near the stored profile location. Without
// --open it fetches the nearby and currently-open sets concurrently and
// prints both.
var hospitalsCmd = &cobra.Command{
	Use:   "hospitals",
	Short: "Find hospitals near your location",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if hospitalsOpenOnly {
			open, err := client.HospitalList(ctx, api.ListOpen)
			if err != nil {
				return err
			}
			printHospitals("지금 진료 중인 병원", open)
			return nil
		}

		var nearby, open []api.HospitalRecord
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			nearby, err = client.HospitalList(gctx, api.ListNearby)
			return err
		})
		g.Go(func() (err error) {
			open, err = client.HospitalList(gctx, api.ListOpen)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		printHospitals("근처 병원", nearby)
		fmt.Println()
		printHospitals("지금 진료 중인 병원", open)
		return nil
	},
}

var pharmaciesCmd = &cobra.Command{
	Use:   "pharmacies",
	Short: "Find pharmacies near your location",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if pharmaciesOpenOnly {
			open, err := client.PharmacyList(ctx, api.ListOpen)
			if err != nil {
				return err
			}
			printPharmacies("지금 영업 중인 약국", open)
			return nil
		}

		var nearby, open []api.PharmacyRecord
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			nearby, err = client.PharmacyList(gctx, api.ListNearby)
			return err
		})
		g.Go(func() (err error) {
			open, err = client.PharmacyList(gctx, api.ListOpen)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		printPharmacies("근처 약국", nearby)
		fmt.Println()
		printPharmacies("지금 영업 중인 약국", open)
		return nil
	},
}

func printHospitals(title string, records []api.HospitalRecord) {
	fmt.Printf("## %s (%d)\n", title, len(records))
	if len(records) == 0 {
		fmt.Println("검색 결과가 없습니다.")
		return
	}
	for _, h := range records {
		var details []string
		if h.Category != "" {
			details = append(details, h.Category)
		}
		if hours := h.HoursRange(); hours != "" {
			details = append(details, hours)
		}
		if h.Distance != "" {
			details = append(details, h.Distance)
		}
		if h.State != "" {
			details = append(details, h.State)
		}
		fmt.Printf("- %s", h.Name)
		if len(details) > 0 {
			fmt.Printf("  (%s)", strings.Join(details, " · "))
		}
		fmt.Println()
		if h.Address != "" {
			fmt.Printf("  %s\n", h.Address)
		}
		if h.Phone != "" {
			fmt.Printf("  %s\n", h.Phone)
		}
	}
}

func printPharmacies(title string, records []api.PharmacyRecord) {
	fmt.Printf("## %s (%d)\n", title, len(records))
	if len(records) == 0 {
		fmt.Println("검색 결과가 없습니다.")
		return
	}
	for _, p := range records {
		var details []string
		switch {
		case p.Hours != "":
			details = append(details, p.Hours)
		case p.OpeningTime > 0 || p.ClosingTime > 0:
			details = append(details, api.FormatClock(p.OpeningTime)+" ~ "+api.FormatClock(p.ClosingTime))
		}
		if p.Distance != "" {
			details = append(details, p.Distance)
		}
		if p.State != "" {
			details = append(details, p.State)
		}
		fmt.Printf("- %s", p.Name)
		if len(details) > 0 {
			fmt.Printf("  (%s)", strings.Join(details, " · "))
		}
		fmt.Println()
		if p.Address != "" {
			fmt.Printf("  %s\n", p.Address)
		}
		if p.Phone != "" {
			fmt.Printf("  %s\n", p.Phone)
		}
	}
}

func init() {
	hospitalsCmd.Flags().BoolVar(&hospitalsOpenOnly, "open", false, "Only hospitals open right now")
	pharmaciesCmd.Flags().BoolVar(&pharmaciesOpenOnly, "open", false, "Only pharmacies open right now")
}
