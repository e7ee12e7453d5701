package classify

import "slotboard/config"

// Policy carries the per-deployment knobs of the classifier. Historical
// deployments forked the whole pipeline per store; the policy struct is
// what varies instead.
type Policy struct {
	// BrandMarkers gate classification entirely; no marker, no event.
	BrandMarkers []string
	// IncludeLocations is an explicit allow-list; ExcludeLocations wins
	// over it when both appear.
	IncludeLocations []string
	ExcludeLocations []string
	// DefaultAcceptLocation accepts messages carrying no location marker
	// at all. Off by default: single-location deployments may enable it.
	DefaultAcceptLocation bool
	// AllowOvernight lets a synthesized end time wrap past midnight
	// instead of clamping to 23:59.
	AllowOvernight bool
}

// DefaultPolicy builds the policy from application config.
func DefaultPolicy() Policy {
	return Policy{
		BrandMarkers:          config.SplitList(config.AppConfig.BrandMarker),
		IncludeLocations:      config.SplitList(config.AppConfig.IncludeLocations),
		ExcludeLocations:      config.SplitList(config.AppConfig.ExcludeLocations),
		DefaultAcceptLocation: config.AppConfig.DefaultAcceptLocation,
		AllowOvernight:        config.AppConfig.AllowOvernight,
	}
}

func (p Policy) primaryLocation() string {
	if len(p.IncludeLocations) == 0 {
		return ""
	}
	return p.IncludeLocations[0]
}
