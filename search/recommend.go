package search

import "dishfinder/models"

// Shuffler is the random source used for recommendations. *rand.Rand from
// math/rand/v2 satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Recommend flattens the directory in county order, shuffles it and returns
// the first count entries, each annotated with its county.
func Recommend(dir models.Directory, count int, rnd Shuffler) []models.Restaurant {
	flat := make([]models.Restaurant, 0, dir.Len())
	for _, group := range dir {
		for _, r := range group.Restaurants {
			r.County = group.County
			flat = append(flat, r)
		}
	}
	if count <= 0 || len(flat) == 0 {
		return []models.Restaurant{}
	}
	if rnd != nil {
		rnd.Shuffle(len(flat), func(i, j int) { flat[i], flat[j] = flat[j], flat[i] })
	}
	if count < len(flat) {
		flat = flat[:count]
	}
	return flat
}
