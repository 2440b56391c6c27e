package levelgen

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidConfig = errors.New("levelgen: invalid config")

var validate = validator.New()

// Config is everything a peer needs to regenerate a level.
type Config struct {
	Seed            uint64  `yaml:"seed"`
	TargetZoneCount uint32  `yaml:"target_zone_count" validate:"min=1"`
	MinZoneSpacing  float32 `yaml:"min_zone_spacing" validate:"gt=0"`
	MaxDepth        uint32  `yaml:"max_depth"`
}

func DefaultConfig() Config {
	return Config{
		Seed:            12345,
		TargetZoneCount: 15,
		MinZoneSpacing:  30.0,
		MaxDepth:        10,
	}
}

// WithSeed returns a copy of c using seed.
func (c Config) WithSeed(seed uint64) Config {
	c.Seed = seed
	return c
}

// Validate checks the config is usable. Generate never calls it; it accepts
// any config and returns at least the spawn zone.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, formatValidationError(err))
	}
	if math.IsInf(float64(c.MinZoneSpacing), 0) {
		return fmt.Errorf("%w: MinZoneSpacing: must be finite", ErrInvalidConfig)
	}
	return nil
}

func formatValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err.Error()
	}
	e := validationErrs[0]
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("%s: must be at least %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s: validation failed (%s)", e.Field(), e.Tag())
	}
}
