package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lexicanum/internal/character"
)

func characterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "character",
		Short: "Manage character sheets: careers, advances, XP accounting",
	}

	cmd.AddCommand(characterNewCmd())
	cmd.AddCommand(characterBuyCmd())
	cmd.AddCommand(characterListCmd())
	cmd.AddCommand(characterShowCmd())
	cmd.AddCommand(characterExportCmd())

	return cmd
}

func characterNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new character",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			careerName, _ := cmd.Flags().GetString("career")
			xp, _ := cmd.Flags().GetInt("xp")
			output, _ := cmd.Flags().GetString("output")

			registry := character.DefaultRegistry()
			career, err := registry.Get(careerName)
			if err != nil {
				return err
			}
			ch := &character.Character{Name: name, Career: career, XPTotal: xp}
			if output != "" {
				if err := character.Save(ch, output); err != nil {
					return err
				}
			}
			fmt.Println(ch.Summary())
			return nil
		},
	}

	cmd.Flags().String("name", "", "Character name")
	cmd.Flags().String("career", "", "Career name")
	cmd.Flags().Int("xp", 0, "Total XP available")
	cmd.Flags().String("output", "", "File path to save the new character")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("career")

	return cmd
}

func characterBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Purchase an advance for a character",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			advance, _ := cmd.Flags().GetString("advance")
			page, _ := cmd.Flags().GetInt("page")

			ch, err := character.Load(file, character.DefaultRegistry())
			if err != nil {
				return err
			}
			purchase, err := ch.PurchaseAdvance(advance, page)
			if err != nil {
				return err
			}
			if err := character.Save(ch, file); err != nil {
				return err
			}
			fmt.Printf("Purchased %s for %d XP (page %d). XP remaining: %d.\n",
				purchase.Name, purchase.XPCost, purchase.Page, ch.XPAvailable())
			return nil
		},
	}

	cmd.Flags().String("file", "", "Character file path")
	cmd.Flags().String("advance", "", "Advance name to purchase")
	cmd.Flags().Int("page", 0, "Override rulebook page number")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("advance")

	return cmd
}

func characterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List careers and their advances",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, career := range character.DefaultRegistry().Careers() {
				fmt.Println(career.Name)
				for _, adv := range career.Advances() {
					prereqs := strings.Join(adv.Prerequisites, ", ")
					if prereqs == "" {
						prereqs = "None"
					}
					fmt.Printf("  - %s (XP %d, page %d, prerequisites: %s)\n",
						adv.Name, adv.XPCost, adv.Page, prereqs)
				}
			}
			return nil
		},
	}
}

func characterShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display a character summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			ch, err := character.Load(file, character.DefaultRegistry())
			if err != nil {
				return err
			}
			fmt.Println(ch.Summary())
			return nil
		},
	}

	cmd.Flags().String("file", "", "Character file path")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func characterExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Emit a character file as validated JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			ch, err := character.Load(file, character.DefaultRegistry())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(character.ToDocument(ch), "", "  ")
			if err != nil {
				return fmt.Errorf("encode character: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().String("file", "", "Character file path")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
