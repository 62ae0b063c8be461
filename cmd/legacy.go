package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/petpy/config"
	"github.com/s0up4200/petpy/legacy"
	"github.com/s0up4200/petpy/table"
)

var (
	legacyFormat  string
	legacyPages   int
	legacyPage    legacy.PageParams
	petFind       legacy.PetFindParams
	randomParams  legacy.RandomParams
	randomRecords int
	shelterFind   legacy.ShelterFindParams
	shelterPets   legacy.ShelterPetsParams
	byBreedBreed  string
)

// legacyCmd groups the commands of the v1 API
var legacyCmd = &cobra.Command{
	Use:   "legacy",
	Short: "Query the Petfinder v1 API",
	Long: `Query the Petfinder v1 API with a v1 key (legacy.key, or petfinder.key when
unset). JSON responses are flattened into tables; XML responses and --output raw
print the response bodies unchanged.`,
}

var legacyBreedsCmd = &cobra.Command{
	Use:   "breeds ANIMAL",
	Short: "List the breeds of an animal (breed.list)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLegacy(cmd, func(c *legacy.Client, f legacy.Format) ([]*legacy.Response, error) {
			resp, err := c.BreedList(cmd.Context(), args[0], f)
			if err != nil {
				return nil, err
			}
			return []*legacy.Response{resp}, nil
		})
	},
}

var legacyPetsCmd = &cobra.Command{
	Use:   "pets",
	Short: "Find and look up pets",
}

var legacyPetsFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Search pets near a location (pet.find)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := petFind
		p.PageParams = legacyPage
		return runLegacy(cmd, func(c *legacy.Client, f legacy.Format) ([]*legacy.Response, error) {
			return c.PetFind(cmd.Context(), p, f, legacyPages)
		})
	},
}

var legacyPetsGetCmd = &cobra.Command{
	Use:   "get ID...",
	Short: "Look up pets by id (pet.get)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLegacy(cmd, func(c *legacy.Client, f legacy.Format) ([]*legacy.Response, error) {
			return c.PetsGet(cmd.Context(), args, f)
		})
	},
}

var legacyPetsRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Fetch random pets (pet.getRandom)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLegacy(cmd, func(c *legacy.Client, f legacy.Format) ([]*legacy.Response, error) {
			return c.PetGetRandom(cmd.Context(), randomParams, f, randomRecords)
		})
	},
}

var legacySheltersCmd = &cobra.Command{
	Use:   "shelters",
	Short: "Find and look up shelters",
}

var legacySheltersFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Search shelters near a location (shelter.find)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := shelterFind
		p.PageParams = legacyPage
		return runLegacy(cmd, func(c *legacy.Client, f legacy.Format) ([]*legacy.Response, error) {
			return c.ShelterFind(cmd.Context(), p, f, legacyPages)
		})
	},
}

var legacySheltersGetCmd = &cobra.Command{
	Use:   "get ID...",
	Short: "Look up shelters by id (shelter.get)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLegacy(cmd, func(c *legacy.Client, f legacy.Format) ([]*legacy.Response, error) {
			return c.SheltersGet(cmd.Context(), args, f)
		})
	},
}

var legacySheltersPetsCmd = &cobra.Command{
	Use:   "pets ID",
	Short: "List the pets of a shelter (shelter.getPets)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := shelterPets
		p.ID = args[0]
		p.PageParams = legacyPage
		return runLegacy(cmd, func(c *legacy.Client, f legacy.Format) ([]*legacy.Response, error) {
			return c.ShelterGetPets(cmd.Context(), p, f, legacyPages)
		})
	},
}

var legacySheltersByBreedCmd = &cobra.Command{
	Use:   "by-breed ANIMAL BREED",
	Short: "List shelters with pets of a breed (shelter.listByBreed)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLegacy(cmd, func(c *legacy.Client, f legacy.Format) ([]*legacy.Response, error) {
			return c.ShelterListByBreed(cmd.Context(), args[0], args[1], legacyPage, f, legacyPages)
		})
	},
}

func init() {
	rootCmd.AddCommand(legacyCmd)
	legacyCmd.AddCommand(legacyBreedsCmd, legacyPetsCmd, legacySheltersCmd)
	legacyPetsCmd.AddCommand(legacyPetsFindCmd, legacyPetsGetCmd, legacyPetsRandomCmd)
	legacySheltersCmd.AddCommand(legacySheltersFindCmd, legacySheltersGetCmd, legacySheltersPetsCmd, legacySheltersByBreedCmd)

	legacyCmd.PersistentFlags().StringVar(&legacyFormat, "format", string(legacy.FormatJSON), "response format: json or xml")

	for _, c := range []*cobra.Command{legacyPetsFindCmd, legacySheltersFindCmd, legacySheltersPetsCmd, legacySheltersByBreedCmd} {
		f := c.Flags()
		f.IntVar(&legacyPage.Offset, "offset", 0, "offset into the result set")
		f.IntVar(&legacyPage.Count, "count", 0, "records per response (default 25)")
		f.IntVar(&legacyPages, "pages", 1, "number of responses to fetch")
	}

	f := legacyPetsFindCmd.Flags()
	f.StringVar(&petFind.Location, "location", "", "postal code or city, state")
	f.StringVar(&petFind.Animal, "animal", "", "barnyard, bird, cat, dog, horse, reptile, smallfurry")
	f.StringVar(&petFind.Breed, "breed", "", "breed name")
	f.StringVar(&petFind.Size, "size", "", "S, M, L, XL")
	f.StringVar(&petFind.Sex, "sex", "", "M or F")
	f.StringVar(&petFind.Age, "age", "", "Baby, Young, Adult, Senior")
	f.StringVar(&petFind.Output, "detail", "", "basic or full")

	f = legacyPetsRandomCmd.Flags()
	f.StringVar(&randomParams.Animal, "animal", "", "barnyard, bird, cat, dog, horse, reptile, smallfurry")
	f.StringVar(&randomParams.Breed, "breed", "", "breed name")
	f.StringVar(&randomParams.Size, "size", "", "S, M, L, XL")
	f.StringVar(&randomParams.Sex, "sex", "", "M or F")
	f.StringVar(&randomParams.Location, "location", "", "postal code or city, state")
	f.StringVar(&randomParams.ShelterID, "shelter", "", "shelter id")
	f.StringVar(&randomParams.Output, "detail", "full", "id, basic or full")
	f.IntVarP(&randomRecords, "count", "n", 1, "number of random pets")

	f = legacySheltersFindCmd.Flags()
	f.StringVar(&shelterFind.Location, "location", "", "postal code or city, state")
	f.StringVar(&shelterFind.Name, "name", "", "shelter name")

	f = legacySheltersPetsCmd.Flags()
	f.StringVar(&shelterPets.Status, "status", "", "A (adoptable), H (hold), P (pending), X (adopted)")
	f.StringVar(&shelterPets.Output, "detail", "", "id, basic or full")
}

type legacyCall func(c *legacy.Client, format legacy.Format) ([]*legacy.Response, error)

// runLegacy performs a v1 call and prints its responses
func runLegacy(cmd *cobra.Command, call legacyCall) error {
	client, err := newLegacyClient()
	if err != nil {
		return err
	}

	format := legacy.Format(legacyFormat)
	responses, err := call(client, format)
	if err != nil {
		return err
	}

	if cfg.Output.Format == config.FormatRaw || format == legacy.FormatXML {
		return printBodies(cmd, responses)
	}

	tables := make([]*table.Table, 0, len(responses))
	for _, resp := range responses {
		body, err := resp.Decode()
		if err != nil {
			return err
		}
		t, err := table.Legacy(resp.Method, body)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}
	return printTable(cmd, table.Concat(tables...))
}

func printBodies(cmd *cobra.Command, responses []*legacy.Response) error {
	w := cmd.OutOrStdout()
	for _, resp := range responses {
		if _, err := fmt.Fprintln(w, resp.String()); err != nil {
			return err
		}
	}
	return nil
}
