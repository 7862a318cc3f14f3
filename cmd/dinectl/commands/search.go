package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dishfinder/models"
	"dishfinder/search"
)

var errUnavailable = errors.New("failed to load restaurant data, please try again")

func searchCmd(o *options) *cobra.Command {
	var (
		criteria  models.SearchCriteria
		cuisine   string
		price     string
		minRating float64
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find restaurants by county and/or dish, then filter",
		Example: `  dinectl search --county Nairobi --dish pizza
  dinectl search --dish pilau --price low --rating 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := criteria.Validate(); err != nil {
				return err
			}
			tier, err := models.ParsePriceTier(price)
			if err != nil {
				return err
			}
			filters := models.FilterSet{Cuisine: cuisine, PriceTier: tier}
			if cmd.Flags().Changed("rating") {
				filters.MinRating = &minRating
			}

			dir, err := o.loadDirectory(cmd.Context())
			if err != nil {
				return errUnavailable
			}

			results := search.ApplyFilters(search.Search(dir, criteria), filters)
			return printRestaurants(cmd.OutOrStdout(), results, criteria.Normalize().DishQuery, o.asJSON)
		},
	}
	cmd.Flags().StringVar(&criteria.County, "county", "", "county name (case-insensitive)")
	cmd.Flags().StringVar(&criteria.DishQuery, "dish", "", "dish name or description to look for")
	cmd.Flags().StringVar(&cuisine, "cuisine", "", "exact cuisine, e.g. Italian")
	cmd.Flags().StringVar(&price, "price", "", "price tier: low, medium or high")
	cmd.Flags().Float64Var(&minRating, "rating", 0, "minimum rating")
	return cmd
}

func recommendCmd(o *options) *cobra.Command {
	var (
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show a random selection of restaurants",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := o.loadDirectory(cmd.Context())
			if err != nil {
				return errUnavailable
			}
			picks := search.Recommend(dir, count, newShuffler(cmd.Flags().Changed("seed"), seed))
			return printRestaurants(cmd.OutOrStdout(), picks, "", o.asJSON)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", search.DefaultRecommendations, "number of restaurants")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "fixed random seed for a repeatable selection")
	return cmd
}

func showCmd(o *options) *cobra.Command {
	var county string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one restaurant's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				r  models.Restaurant
				ok bool
			)
			if county != "" {
				dir, err := o.loadDirectory(cmd.Context())
				if err != nil {
					return errUnavailable
				}
				r, ok = dir.Find(args[0], county)
			} else {
				r, ok = o.api.FetchRestaurant(cmd.Context(), args[0])
			}
			if !ok {
				return fmt.Errorf("restaurant %q not found", args[0])
			}
			return printDetails(cmd.OutOrStdout(), r, o.asJSON)
		},
	}
	cmd.Flags().StringVar(&county, "county", "", "look the id up within this county of the directory")
	return cmd
}

func countiesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "counties",
		Short: "List counties present in the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := o.loadDirectory(cmd.Context())
			if err != nil {
				return errUnavailable
			}
			for _, g := range dir {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", g.County, len(g.Restaurants))
			}
			return nil
		},
	}
}
