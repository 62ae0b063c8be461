package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/petpy/petfinder"
	"github.com/s0up4200/petpy/table"
)

var orgSearch petfinder.OrganizationSearch

// organizationsCmd groups the organization commands
var organizationsCmd = &cobra.Command{
	Use:     "organizations",
	Aliases: []string{"orgs", "shelters"},
	Short:   "Search and look up animal welfare organizations",
}

var organizationsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search animal welfare organizations",
	Args:  cobra.NoArgs,
	RunE:  runOrganizationsSearch,
}

var organizationsGetCmd = &cobra.Command{
	Use:   "get ID...",
	Short: "Look up organizations by id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOrganizationsGet,
}

func init() {
	rootCmd.AddCommand(organizationsCmd)
	organizationsCmd.AddCommand(organizationsSearchCmd, organizationsGetCmd)

	f := organizationsSearchCmd.Flags()
	f.StringVar(&orgSearch.Name, "name", "", "organization name, partial matches allowed")
	f.StringVar(&orgSearch.Location, "location", "", "city, state, postal code or lat,long")
	f.IntVar(&orgSearch.Distance, "distance", 0, "miles from location (1-500)")
	f.StringVar(&orgSearch.State, "state", "", "two letter state code")
	f.StringVar(&orgSearch.Country, "country", "", "two letter country code")
	f.StringVar(&orgSearch.Query, "query", "", "search name, city or state")
	f.StringVar(&orgSearch.Sort, "sort", "", "distance, name, country or state, prefix - to reverse")
	f.IntVar(&orgSearch.Limit, "limit", 0, "results per page (1-100)")
	addPageFlags(organizationsSearchCmd)
}

func runOrganizationsSearch(cmd *cobra.Command, args []string) error {
	client, err := newPetfinderClient()
	if err != nil {
		return err
	}

	page, err := client.SearchOrganizations(cmd.Context(), orgSearch, pageOpts)
	if err != nil {
		return err
	}

	logger.Info().
		Int("organizations", len(page.Organizations)).
		Int("pages", page.PagesFetched).
		Int("total", page.Pagination.TotalCount).
		Msg("Organization search complete")

	if rawOutput() {
		return printRaw(cmd.OutOrStdout(), page)
	}
	return printResults(cmd, page.Organizations, table.Organizations)
}

func runOrganizationsGet(cmd *cobra.Command, args []string) error {
	client, err := newPetfinderClient()
	if err != nil {
		return err
	}

	orgs, err := client.Organizations(cmd.Context(), args...)
	if err != nil {
		return err
	}
	return printResults(cmd, orgs, table.Organizations)
}
