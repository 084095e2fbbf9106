// Package main implements the network seeding CLI. It loads the station
// and distance reference data from JSON fixtures into the configured
// backing store; the API server never writes these tables itself.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"railrouter/domain/routing"
	"railrouter/infrastructure/config"
	"railrouter/infrastructure/di"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stationEntry matches one element of stations.json.
type stationEntry struct {
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
}

// lineEntry matches one element of distances.json: a named line with its
// list of adjacent-station segments.
type lineEntry struct {
	Name      string `json:"name"`
	Distances []struct {
		Parent   string  `json:"parent"`
		Child    string  `json:"child"`
		Distance float64 `json:"distance"`
	} `json:"distances"`
}

func main() {
	stationsPath := flag.String("stations", "stations.json", "path to the stations fixture")
	distancesPath := flag.String("distances", "distances.json", "path to the distances fixture")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	stations, err := loadStations(*stationsPath)
	if err != nil {
		logger.Fatal("Failed to read stations fixture", zap.String("path", *stationsPath), zap.Error(err))
	}

	lines, err := loadLines(*distancesPath)
	if err != nil {
		logger.Fatal("Failed to read distances fixture", zap.String("path", *distancesPath), zap.Error(err))
	}

	known := make(map[string]bool, len(stations))
	for _, entry := range stations {
		station := routing.Station{
			ID:        uuid.New().String(),
			ShortName: entry.ShortName,
			LongName:  entry.LongName,
			CreatedAt: time.Now().UTC(),
		}
		if err := container.StationRepo.Save(ctx, station); err != nil {
			logger.Fatal("Failed to save station", zap.String("shortName", entry.ShortName), zap.Error(err))
		}
		known[entry.ShortName] = true
	}
	logger.Info("Stations imported", zap.Int("count", len(stations)))

	imported := 0
	for _, line := range lines {
		for _, segment := range line.Distances {
			if !known[segment.Parent] || !known[segment.Child] {
				logger.Warn("Skipping segment with unknown station",
					zap.String("line", line.Name),
					zap.String("parent", segment.Parent),
					zap.String("child", segment.Child),
				)
				continue
			}

			distance := routing.Distance{
				ID:              uuid.New().String(),
				LineName:        line.Name,
				ParentShortName: segment.Parent,
				ChildShortName:  segment.Child,
				DistanceKm:      segment.Distance,
			}
			if err := container.DistanceRepo.Save(ctx, distance); err != nil {
				logger.Fatal("Failed to save distance",
					zap.String("line", line.Name),
					zap.String("parent", segment.Parent),
					zap.String("child", segment.Child),
					zap.Error(err),
				)
			}
			imported++
		}
	}
	logger.Info("Distances imported", zap.Int("count", imported), zap.Int("lines", len(lines)))
}

func loadStations(path string) ([]stationEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stations []stationEntry
	if err := json.Unmarshal(data, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

func loadLines(path string) ([]lineEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []lineEntry
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
