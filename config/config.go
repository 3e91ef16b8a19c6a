package config

import (
	"encoding/json"
	"os"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
)

// Config carries every tunable of the pipeline. Distances and areas
// are in meters; the pipeline converts them to map units through
// Resolution where needed.
type Config struct {
	Resolution float64

	RootLat    float64
	RootLon    float64
	RootPixelX float64
	RootPixelY float64

	SimplifyEnabled   bool
	SimplifyTolerance float64

	SpikeRemovalEnabled    bool
	SpikeAngleThreshold    float64
	SpikeDistanceThreshold float64

	SmallRoomMergeEnabled     bool
	SmallRoomMinArea          float64
	SmallRoomMaxMergeDistance float64
}

func Defaults() Config {
	return Config{
		Resolution: 0.044,

		RootLat:    31.17947960435,
		RootLon:    121.59139728509,
		RootPixelX: 3804,
		RootPixelY: 2801,

		SimplifyEnabled:   true,
		SimplifyTolerance: 0.05,

		SpikeRemovalEnabled:    true,
		SpikeAngleThreshold:    60.0,
		SpikeDistanceThreshold: 0.30,

		SmallRoomMergeEnabled:     true,
		SmallRoomMinArea:          4.0,
		SmallRoomMaxMergeDistance: 1.5,
	}
}

// fileConfig mirrors the params file; pointers tell a missing key
// apart from a zero value so each key can default independently.
type fileConfig struct {
	Resolution *float64 `json:"resolution"`

	RootNode *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		PixelX    *float64 `json:"pixel_x"`
		PixelY    *float64 `json:"pixel_y"`
	} `json:"root_node"`

	Simplify *struct {
		Enabled   *bool    `json:"enabled"`
		Tolerance *float64 `json:"tolerance"`
	} `json:"simplify"`

	SpikeRemoval *struct {
		Enabled           *bool    `json:"enabled"`
		AngleThreshold    *float64 `json:"angle_threshold"`
		DistanceThreshold *float64 `json:"distance_threshold"`
	} `json:"spike_removal"`

	SmallRoomMerge *struct {
		Enabled          *bool    `json:"enabled"`
		MinArea          *float64 `json:"min_area"`
		MaxMergeDistance *float64 `json:"max_merge_distance"`
	} `json:"small_room_merge"`
}

func floatOr(target *float64, value *float64) {
	if value != nil {
		*target = *value
	}
}

func boolOr(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}

// Load reads the params file and overlays it on the defaults. A
// missing or malformed file is not fatal: the error is returned for
// logging and the defaults apply.
func Load(filename string) (Config, error) {
	cfg := Defaults()

	bytes, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}

	var file fileConfig
	if err := json.Unmarshal(bytes, &file); err != nil {
		return cfg, err
	}

	floatOr(&cfg.Resolution, file.Resolution)

	if file.RootNode != nil {
		floatOr(&cfg.RootLat, file.RootNode.Latitude)
		floatOr(&cfg.RootLon, file.RootNode.Longitude)
		floatOr(&cfg.RootPixelX, file.RootNode.PixelX)
		floatOr(&cfg.RootPixelY, file.RootNode.PixelY)
	}

	if file.Simplify != nil {
		boolOr(&cfg.SimplifyEnabled, file.Simplify.Enabled)
		floatOr(&cfg.SimplifyTolerance, file.Simplify.Tolerance)
	}

	if file.SpikeRemoval != nil {
		boolOr(&cfg.SpikeRemovalEnabled, file.SpikeRemoval.Enabled)
		floatOr(&cfg.SpikeAngleThreshold, file.SpikeRemoval.AngleThreshold)
		floatOr(&cfg.SpikeDistanceThreshold, file.SpikeRemoval.DistanceThreshold)
	}

	if file.SmallRoomMerge != nil {
		boolOr(&cfg.SmallRoomMergeEnabled, file.SmallRoomMerge.Enabled)
		floatOr(&cfg.SmallRoomMinArea, file.SmallRoomMerge.MinArea)
		floatOr(&cfg.SmallRoomMaxMergeDistance, file.SmallRoomMerge.MaxMergeDistance)
	}

	return cfg, nil
}

// MustLoad loads the params file, warning (never failing) when it
// cannot be used. An empty filename silently yields the defaults.
func MustLoad(filename string) Config {
	if filename == "" {
		return Defaults()
	}

	cfg, err := Load(filename)
	if err != nil {
		utils.WarnWith(err)
	}
	return cfg
}
