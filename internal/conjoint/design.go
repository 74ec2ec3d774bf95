// Package conjoint generates synthetic discrete-choice panels under a known
// data-generating process, for validating choice-model estimators.
package conjoint

import "fmt"

// Profile is one product alternative: a brand, an ad tier, and a price.
// Profiles are enumerated once from the Cartesian product of the design's
// attribute levels and never mutated afterwards.
type Profile struct {
	Brand  string
	HasAds bool
	Price  float64
}

// Design defines the attribute levels of a conjoint study. The last brand in
// Brands is the zero-coded baseline for estimation.
type Design struct {
	Brands   []string
	AdStates []bool
	Prices   []float64
}

// DefaultDesign returns the streaming-service design used throughout the
// study: three brands (Hulu as baseline), with/without ads, and a monthly
// price grid from $4 to $32.
func DefaultDesign() Design {
	return Design{
		Brands:   []string{"Netflix", "Prime", "Hulu"},
		AdStates: []bool{true, false},
		Prices:   []float64{4, 8, 12, 16, 20, 24, 28, 32},
	}
}

// Validate checks that every attribute has at least one level.
func (d Design) Validate() error {
	if len(d.Brands) == 0 {
		return &ConfigError{Field: "brands", Reason: "at least one brand level required"}
	}
	if len(d.AdStates) == 0 {
		return &ConfigError{Field: "ad_states", Reason: "at least one ad level required"}
	}
	if len(d.Prices) == 0 {
		return &ConfigError{Field: "prices", Reason: "at least one price level required"}
	}
	return nil
}

// Universe enumerates every profile the design can produce, in a fixed order
// (brand-major, then ad state, then price).
func (d Design) Universe() []Profile {
	out := make([]Profile, 0, len(d.Brands)*len(d.AdStates)*len(d.Prices))
	for _, b := range d.Brands {
		for _, a := range d.AdStates {
			for _, p := range d.Prices {
				out = append(out, Profile{Brand: b, HasAds: a, Price: p})
			}
		}
	}
	return out
}

// WithBaseline returns a copy of the design with the named brand moved to
// the end of Brands, making it the zero-coded baseline.
func (d Design) WithBaseline(brand string) (Design, error) {
	idx := -1
	for i, b := range d.Brands {
		if b == brand {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Design{}, &ConfigError{Field: "baseline", Reason: fmt.Sprintf("brand %q not in design", brand)}
	}
	brands := make([]string, 0, len(d.Brands))
	for i, b := range d.Brands {
		if i != idx {
			brands = append(brands, b)
		}
	}
	d.Brands = append(brands, brand)
	return d, nil
}

// PartWorths holds the true utility weights of the data-generating process:
// one weight per brand, one for the ad indicator, and a per-dollar price
// slope.
type PartWorths struct {
	Brand map[string]float64
	Ads   float64
	Price float64
}

// DefaultPartWorths returns the ground truth used in the recovery study.
func DefaultPartWorths() PartWorths {
	return PartWorths{
		Brand: map[string]float64{"Netflix": 1.0, "Prime": 0.5, "Hulu": 0},
		Ads:   -0.8,
		Price: -0.1,
	}
}

// Utility is the deterministic part of a profile's latent utility: the sum of
// the part-worths of each attribute level present.
func (w PartWorths) Utility(p Profile) float64 {
	u := w.Brand[p.Brand] + w.Price*p.Price
	if p.HasAds {
		u += w.Ads
	}
	return u
}

// ConfigError reports an invalid simulation or design parameter. It always
// fires before any data is generated.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
