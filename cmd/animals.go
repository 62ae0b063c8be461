package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/petpy/petfinder"
	"github.com/s0up4200/petpy/table"
)

var (
	animalSearch petfinder.AnimalSearch
	pageOpts     petfinder.PageOptions
	randomCount  int

	// Tri-state flags, only sent when given
	goodWithChildren bool
	goodWithDogs     bool
	goodWithCats     bool
	houseTrained     bool
	declawed         bool
	specialNeeds     bool
	before           string
	after            string
)

// animalsCmd groups the animal commands
var animalsCmd = &cobra.Command{
	Use:     "animals",
	Aliases: []string{"animal", "pets"},
	Short:   "Search and look up adoptable animals",
}

var animalsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search adoptable animals",
	Long: `Search adoptable animals. Repeatable filters such as --age or --size match
any of the given values.

  petpy animals search --type dog --age baby,young --location 98101 --distance 25
  petpy animals search --type cat --good-with-dogs --all`,
	Args: cobra.NoArgs,
	RunE: runAnimalsSearch,
}

var animalsGetCmd = &cobra.Command{
	Use:   "get ID...",
	Short: "Look up animals by id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnimalsGet,
}

var animalsRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show random animals matching the search filters",
	Args:  cobra.NoArgs,
	RunE:  runAnimalsRandom,
}

func init() {
	rootCmd.AddCommand(animalsCmd)
	animalsCmd.AddCommand(animalsSearchCmd, animalsGetCmd, animalsRandomCmd)

	for _, c := range []*cobra.Command{animalsSearchCmd, animalsRandomCmd} {
		addAnimalSearchFlags(c)
	}
	addPageFlags(animalsSearchCmd)

	animalsRandomCmd.Flags().IntVarP(&randomCount, "count", "n", 1, "number of animals to return (1-100)")
}

func addAnimalSearchFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&animalSearch.Type, "type", "", "animal type, e.g. dog, cat, small-furry")
	f.StringSliceVar(&animalSearch.Breed, "breed", nil, "breed names")
	f.StringSliceVar(&animalSearch.Size, "size", nil, "small, medium, large, xlarge")
	f.StringSliceVar(&animalSearch.Gender, "gender", nil, "male, female, unknown")
	f.StringSliceVar(&animalSearch.Age, "age", nil, "baby, young, adult, senior")
	f.StringSliceVar(&animalSearch.Color, "color", nil, "coat colors")
	f.StringSliceVar(&animalSearch.Coat, "coat", nil, "short, medium, long, wire, hairless, curly")
	f.StringSliceVar(&animalSearch.Status, "status", nil, "adoptable, adopted, found")
	f.StringVar(&animalSearch.Name, "name", "", "animal name, partial matches allowed")
	f.StringSliceVar(&animalSearch.OrganizationID, "organization", nil, "organization ids")
	f.BoolVar(&goodWithChildren, "good-with-children", false, "good with children")
	f.BoolVar(&goodWithDogs, "good-with-dogs", false, "good with dogs")
	f.BoolVar(&goodWithCats, "good-with-cats", false, "good with cats")
	f.BoolVar(&houseTrained, "house-trained", false, "house trained")
	f.BoolVar(&declawed, "declawed", false, "declawed")
	f.BoolVar(&specialNeeds, "special-needs", false, "has special needs")
	f.StringVar(&animalSearch.Location, "location", "", "city, state, postal code or lat,long")
	f.IntVar(&animalSearch.Distance, "distance", 0, "miles from location (1-500)")
	f.StringVar(&before, "before", "", "published before (RFC 3339 or YYYY-MM-DD)")
	f.StringVar(&after, "after", "", "published after (RFC 3339 or YYYY-MM-DD)")
	f.StringVar(&animalSearch.Sort, "sort", "", "recent, -recent, distance, -distance, random")
	f.IntVar(&animalSearch.Limit, "limit", 0, "results per page (1-100)")
}

func addPageFlags(c *cobra.Command) {
	f := c.Flags()
	f.IntVar(&pageOpts.Page, "page", 0, "first page to fetch")
	f.IntVar(&pageOpts.Pages, "pages", 0, "number of pages to fetch")
	f.BoolVar(&pageOpts.AllPages, "all", false, "fetch every page")
}

// buildAnimalSearch applies the tri-state and date flags to animalSearch
func buildAnimalSearch(cmd *cobra.Command) (petfinder.AnimalSearch, error) {
	s := animalSearch
	s.GoodWithChildren = optionalBool(cmd, "good-with-children", goodWithChildren)
	s.GoodWithDogs = optionalBool(cmd, "good-with-dogs", goodWithDogs)
	s.GoodWithCats = optionalBool(cmd, "good-with-cats", goodWithCats)
	s.HouseTrained = optionalBool(cmd, "house-trained", houseTrained)
	s.Declawed = optionalBool(cmd, "declawed", declawed)
	s.SpecialNeeds = optionalBool(cmd, "special-needs", specialNeeds)

	var err error
	if s.Before, err = parseTimeFlag("before", before); err != nil {
		return s, err
	}
	if s.After, err = parseTimeFlag("after", after); err != nil {
		return s, err
	}
	return s, nil
}

func optionalBool(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func parseTimeFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid --%s value %q: expected RFC 3339 or YYYY-MM-DD", name, value)
}

func runAnimalsSearch(cmd *cobra.Command, args []string) error {
	search, err := buildAnimalSearch(cmd)
	if err != nil {
		return err
	}

	client, err := newPetfinderClient()
	if err != nil {
		return err
	}

	page, err := client.SearchAnimals(cmd.Context(), search, pageOpts)
	if err != nil {
		return err
	}

	logger.Info().
		Int("animals", len(page.Animals)).
		Int("pages", page.PagesFetched).
		Int("total", page.Pagination.TotalCount).
		Msg("Animal search complete")

	if rawOutput() {
		return printRaw(cmd.OutOrStdout(), page)
	}
	return printResults(cmd, page.Animals, table.Animals)
}

func runAnimalsGet(cmd *cobra.Command, args []string) error {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid animal id %q", arg)
		}
		ids[i] = id
	}

	client, err := newPetfinderClient()
	if err != nil {
		return err
	}

	animals, err := client.Animals(cmd.Context(), ids...)
	if err != nil {
		return err
	}
	return printResults(cmd, animals, table.Animals)
}

func runAnimalsRandom(cmd *cobra.Command, args []string) error {
	search, err := buildAnimalSearch(cmd)
	if err != nil {
		return err
	}

	client, err := newPetfinderClient()
	if err != nil {
		return err
	}

	animals, err := client.RandomAnimals(cmd.Context(), search, randomCount)
	if err != nil {
		return err
	}
	return printResults(cmd, animals, table.Animals)
}
