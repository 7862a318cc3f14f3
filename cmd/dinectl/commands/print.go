package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"text/tabwriter"

	"dishfinder/models"
	"dishfinder/search"
)

func newShuffler(fixed bool, seed uint64) search.Shuffler {
	if fixed {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func printRestaurants(w io.Writer, rs []models.Restaurant, dishQuery string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	}
	if len(rs) == 0 {
		fmt.Fprintln(w, "No Results Found")
		fmt.Fprintln(w, "Try adjusting your search criteria or filters.")
		return nil
	}

	fmt.Fprintf(w, "Found %d Restaurant(s):\n", len(rs))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOUNTY\tCUISINE\tPRICE\tRATING\tDISHES")
	for _, r := range rs {
		dishes := strings.Join(search.MatchingDishPreview(r, dishQuery, search.DefaultPreviewLimit), ", ")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n", r.ID, r.Name, r.County, r.Cuisine, r.PriceRange, r.Rating, dishes)
	}
	return tw.Flush()
}

func printDetails(w io.Writer, r models.Restaurant, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Fprintf(w, "%s\n", r.Name)
	fmt.Fprintf(w, "Cuisine: %s\nPrice Range: %s\nRating: %.1f/5\n", r.Cuisine, r.PriceRange, r.Rating)
	fmt.Fprintf(w, "Address: %s\nPhone: %s\nEmail: %s\n", r.Address, r.Phone, r.Email)
	if r.SpecialFeatures != "" {
		fmt.Fprintf(w, "Special Features: %s\n", r.SpecialFeatures)
	}
	printMenu(w, "Menu Items", r.Dishes)
	printMenu(w, "Drinks", r.Drinks)
	if len(r.OperatingHours) > 0 {
		fmt.Fprintln(w, "Operating Hours:")
		for _, h := range r.OperatingHours {
			fmt.Fprintf(w, "  %s\n", h)
		}
	}
	if u := r.ReserveURL(); u != "" {
		fmt.Fprintf(w, "Reserve: %s\n", u)
	} else {
		fmt.Fprintf(w, "Contact %s directly to make a reservation.\n", r.Name)
	}
	return nil
}

func printMenu(w io.Writer, title string, items []models.Dish) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, d := range items {
		fmt.Fprintf(w, "  %s: %s\n", d.Name, d.Description)
	}
}
