package bed

import (
	"sort"

	"github.com/compgen/mafkit/utils"
)

// Bed is a struct for representing the contents of a BED file. See
// https://genome.ucsc.edu/FAQ/FAQformat.html#format1
type Bed struct {
	// Maps chromosome name onto bed regions.
	RegionMap map[utils.Symbol][]*Region
}

// A Region is a half-open interval [Start, End) on a chromosome, as
// defined in a BED file. Only the three mandatory BED fields are
// represented; additional fields up to BED9 are accepted and ignored,
// BED12+ input is rejected.
type Region struct {
	Chrom      utils.Symbol
	Start, End int64
}

// NewBed allocates and initializes an empty bed.
func NewBed() *Bed {
	return &Bed{
		RegionMap: make(map[utils.Symbol][]*Region),
	}
}

// AddRegion adds a region to the bed region map.
func (bed *Bed) AddRegion(region *Region) {
	bed.RegionMap[region.Chrom] = append(bed.RegionMap[region.Chrom], region)
}

// sortRegions sorts the bed regions by start position per chromosome.
func (bed *Bed) sortRegions() {
	for _, regions := range bed.RegionMap {
		sort.SliceStable(regions, func(i, j int) bool {
			return regions[i].Start < regions[j].Start
		})
	}
}
