package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var drugCmd = &cobra.Command{
	Use:   "drug <name>",
	Short: "Look up medicine information by product name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")

		resp, err := client.DrugInfo(context.Background(), name)
		if err != nil {
			return err
		}

		if resp.Type != "success" || len(resp.Data) == 0 {
			if resp.Message != "" {
				fmt.Println(resp.Message)
			} else {
				fmt.Printf("'%s'에 해당하는 약 정보가 없습니다.\n", name)
			}
			return nil
		}

		for i, d := range resp.Data {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s", d.ItemName)
			if d.Manufacturer != "" {
				fmt.Printf(" (%s)", d.Manufacturer)
			}
			fmt.Println()
			if d.Efficacy != "" {
				fmt.Printf("효능:     %s\n", d.Efficacy)
			}
			if d.Precautions != "" {
				fmt.Printf("주의사항: %s\n", d.Precautions)
			}
			if d.StorageMethod != "" {
				fmt.Printf("보관법:   %s\n", d.StorageMethod)
			}
		}
		return nil
	},
}
