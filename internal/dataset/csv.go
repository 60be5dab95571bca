// Package dataset parses problem inputs from CSV files so the CLI can run
// against exported location lists.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"darwindispatch/internal/model"
)

// ParseLocations reads `id,x,y` records. A header row is detected and
// skipped when the second column is not numeric. The first record may use
// the id "depot" to mark the depot; otherwise the caller supplies one.
func ParseLocations(r io.Reader) (depot *model.LocationIn, locs []model.LocationIn, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line++
		if len(rec) != 3 {
			return nil, nil, fmt.Errorf("dataset: line %d: want 3 fields id,x,y, got %d", line, len(rec))
		}
		x, errX := strconv.ParseFloat(rec[1], 64)
		y, errY := strconv.ParseFloat(rec[2], 64)
		if errX != nil || errY != nil {
			if line == 1 {
				continue // header row
			}
			return nil, nil, fmt.Errorf("dataset: line %d: bad coordinates %q,%q", line, rec[1], rec[2])
		}
		loc := model.LocationIn{ID: strings.TrimSpace(rec[0]), X: x, Y: y}
		if strings.EqualFold(loc.ID, "depot") {
			if depot != nil {
				return nil, nil, fmt.Errorf("dataset: line %d: duplicate depot row", line)
			}
			depot = &loc
			continue
		}
		locs = append(locs, loc)
	}
	if len(locs) == 0 {
		return nil, nil, fmt.Errorf("dataset: no delivery locations")
	}
	return depot, locs, nil
}

// LoadProblem reads a CSV file into a ProblemIn with the given fleet size.
func LoadProblem(path string, vehicles int) (model.ProblemIn, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ProblemIn{}, err
	}
	defer f.Close()
	depot, locs, err := ParseLocations(f)
	if err != nil {
		return model.ProblemIn{}, err
	}
	p := model.ProblemIn{Name: path, Locations: locs, Vehicles: vehicles}
	if depot != nil {
		p.Depot = *depot
	} else {
		// fall back to the centroid when no depot row is present
		for _, l := range locs {
			p.Depot.X += l.X
			p.Depot.Y += l.Y
		}
		p.Depot.X /= float64(len(locs))
		p.Depot.Y /= float64(len(locs))
		p.Depot.ID = "depot"
	}
	return p, nil
}
