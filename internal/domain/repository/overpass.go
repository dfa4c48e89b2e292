package repository

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/serjvanilla/go-overpass"

	"risk_service/internal/domain/model"
)

// Radius in meters for the nearest-road query.
const roadSearchRadius = 75

// RoadRepository answers "what road is at this point" from OpenStreetMap,
// used when the geocoder returned no route component.
type RoadRepository struct {
	client  *overpass.Client
	timeout time.Duration
}

func NewRoadRepository(endpoint string, timeout time.Duration) *RoadRepository {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &RoadRepository{
		client:  &client,
		timeout: timeout,
	}
}

// NearestRoad returns the closest tagged highway way within the search
// radius, or (nil, nil) when there is none.
func (r *RoadRepository) NearestRoad(ctx context.Context, lat, lng float64) (*model.RoadInfo, error) {
	query := fmt.Sprintf(`
		[out:json];
		(
			way(around:%d,%f,%f)["highway"];
		);
		out body;
		>;
		out skel qt;
	`, roadSearchRadius, lat, lng)

	result, err := r.executeQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute road query: %w", err)
	}

	var nearest *model.RoadInfo
	best := math.MaxFloat64
	for _, way := range result.Ways {
		highway, ok := way.Tags["highway"]
		if !ok || highway == "" {
			continue
		}

		// Way position is approximated by its node centroid.
		var wayLat, wayLng float64
		count := len(way.Nodes)
		if count == 0 {
			continue
		}
		for _, node := range way.Nodes {
			wayLat += node.Lat
			wayLng += node.Lon
		}
		wayLat /= float64(count)
		wayLng /= float64(count)

		dist := haversineMeters(lat, lng, wayLat, wayLng)
		if dist < best {
			best = dist
			nearest = &model.RoadInfo{
				Name:    way.Tags["name"],
				Highway: highway,
			}
		}
	}
	return nearest, nil
}

func (r *RoadRepository) executeQuery(ctx context.Context, query string) (*overpass.Result, error) {
	_, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	return &result, nil
}

// haversineMeters returns the distance in meters between two points.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
