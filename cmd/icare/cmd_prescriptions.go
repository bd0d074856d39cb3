package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"icare/internal/api"
	"icare/internal/media"
)

var (
	prescriptionsByDate bool
	uploadChildName     string
)

var prescriptionsCmd = &cobra.Command{
	Use:   "prescriptions",
	Short: "Manage prescriptions scanned from photos",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default: list
		return prescriptionsListCmd.RunE(cmd, args)
	},
}

var prescriptionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored prescriptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var list api.PrescriptionList
		var err error
		if prescriptionsByDate {
			list, err = client.PrescriptionsByDate(ctx)
		} else {
			list, err = client.Prescriptions(ctx)
		}
		if err != nil {
			return err
		}

		fmt.Printf("처방전 %d건\n", list.Count)
		for _, p := range list.Results {
			fmt.Printf("- [%d] %s", p.PrescriptionID, p.PrescriptionDate)
			if p.ChildName != "" {
				fmt.Printf("  %s", p.ChildName)
			}
			if p.PharmacyName != "" {
				fmt.Printf("  (%s)", p.PharmacyName)
			}
			fmt.Println()
		}
		return nil
	},
}

var prescriptionsDetailCmd = &cobra.Command{
	Use:   "detail <id>",
	Short: "Show one prescription with its medicines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid prescription id %q", args[0])
		}

		result, err := client.PrescriptionDetail(context.Background(), id)
		if err != nil {
			return err
		}
		p := result.Data

		fmt.Printf("처방전 번호: %s\n", p.PrescriptionNumber)
		fmt.Printf("처방일:      %s\n", p.PrescriptionDate)
		if p.ChildName != "" {
			fmt.Printf("자녀:        %s\n", p.ChildName)
		}
		if p.PharmacyInfo.Name != "" {
			fmt.Printf("약국:        %s (%s)\n", p.PharmacyInfo.Name, p.PharmacyInfo.Address)
		} else if p.PharmacyName != "" {
			fmt.Printf("약국:        %s\n", p.PharmacyName)
		}
		if p.Duration != "" {
			fmt.Printf("복용 기간:   %s일\n", p.Duration)
		}
		if p.EndDate != "" {
			fmt.Printf("복용 종료:   %s\n", p.EndDate)
		}
		if len(p.Medicines) > 0 {
			fmt.Println("\n처방 약품:")
			for _, med := range p.Medicines {
				fmt.Printf("- %s", med.Name)
				if med.Dosage != "" {
					fmt.Printf("  %s", med.Dosage)
				}
				if med.Frequency != "" {
					fmt.Printf("  %s", med.Frequency)
				}
				fmt.Println()
				if med.Effect != "" {
					fmt.Printf("  효능: %s\n", med.Effect)
				}
				if med.Precaution != "" {
					fmt.Printf("  주의: %s\n", med.Precaution)
				}
			}
		}
		return nil
	},
}

var prescriptionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored prescription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid prescription id %q", args[0])
		}

		resp, err := client.DeletePrescription(context.Background(), id)
		if err != nil {
			return err
		}
		if resp.Message != "" {
			fmt.Println(resp.Message)
		} else {
			fmt.Println("처방전이 삭제되었습니다.")
		}
		return nil
	},
}

var prescriptionsUploadCmd = &cobra.Command{
	Use:   "upload <image>",
	Short: "Register a prescription from a photo (OCR)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		image, err := media.ReadImage(path)
		if err != nil {
			return err
		}

		logger.Info("uploading prescription",
			zap.String("path", path),
			zap.Int("bytes", len(image)))

		result, err := client.UploadPrescription(context.Background(), image, path, uploadChildName)
		if err != nil {
			return err
		}

		fmt.Println("처방전이 등록되었습니다!")
		if result.Data.PrescriptionNumber != "" {
			fmt.Printf("처방전 번호: %s\n", result.Data.PrescriptionNumber)
		}
		if result.Data.PrescriptionID != 0 {
			fmt.Printf("상세 보기: icare prescriptions detail %d\n", result.Data.PrescriptionID)
		}
		return nil
	},
}

func init() {
	prescriptionsCmd.PersistentFlags().BoolVar(&prescriptionsByDate, "by-date", false, "Order by prescription date")
	prescriptionsUploadCmd.Flags().StringVar(&uploadChildName, "child", "", "Child the prescription belongs to")

	prescriptionsCmd.AddCommand(prescriptionsListCmd)
	prescriptionsCmd.AddCommand(prescriptionsDetailCmd)
	prescriptionsCmd.AddCommand(prescriptionsDeleteCmd)
	prescriptionsCmd.AddCommand(prescriptionsUploadCmd)
}
