package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/petpy/petfinder"
	"github.com/s0up4200/petpy/table"
)

var breedNamesOnly bool

var typesCmd = &cobra.Command{
	Use:   "types [TYPE...]",
	Short: "List animal types with their coats, colors and genders",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newPetfinderClient()
		if err != nil {
			return err
		}

		types, err := client.AnimalType(cmd.Context(), args...)
		if err != nil {
			return err
		}
		return printResults(cmd, types, table.AnimalTypes)
	},
}

var breedsCmd = &cobra.Command{
	Use:   "breeds [TYPE...]",
	Short: "List the breeds of animal types, all types by default",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newPetfinderClient()
		if err != nil {
			return err
		}

		breeds, err := client.Breeds(cmd.Context(), args...)
		if err != nil {
			return err
		}

		if breedNamesOnly {
			return printResults(cmd, petfinder.BreedNames(breeds), func(names map[string][]string) (*table.Table, error) {
				return table.BreedNames(names), nil
			})
		}
		return printResults(cmd, breeds, func(b map[string][]petfinder.Breed) (*table.Table, error) {
			return table.Breeds(b), nil
		})
	},
}

func init() {
	rootCmd.AddCommand(typesCmd, breedsCmd)
	breedsCmd.Flags().BoolVar(&breedNamesOnly, "names", false, "one row per type with its breed names")
}
