package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/litescript/ls-almanac/internal/astro"
	"gopkg.in/yaml.v3"
)

// Site is a named observing location.
type Site struct {
	Name      string   `yaml:"name"`
	Latitude  float64  `yaml:"latitude"`
	Longitude float64  `yaml:"longitude"` // east positive
	Elevation float64  `yaml:"elevation,omitempty"`
	Aliases   []string `yaml:"aliases,omitempty"`
}

// Location returns the site as a geographic location.
func (s Site) Location() astro.GeoLocation {
	return astro.GeoLocation{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Elevation: s.Elevation,
		Name:      s.Name,
	}
}

// Sites is an ordered list of sites.
type Sites []Site

// sitesFile is the layout of a sites YAML file.
type sitesFile struct {
	Sites Sites `yaml:"sites"`
}

// DefaultSites returns the built-in sites: the Royal Observatory and the
// three Deep Space Network complexes.
func DefaultSites() Sites {
	return Sites{
		{Name: "Greenwich", Latitude: 51.4779, Longitude: -0.0015, Elevation: 46, Aliases: []string{"london"}},
		{Name: "Goldstone", Latitude: 35.4267, Longitude: -116.8900, Elevation: 1036, Aliases: []string{"gdscc"}},
		{Name: "Canberra", Latitude: -35.4014, Longitude: 148.9817, Elevation: 688, Aliases: []string{"cdscc", "tidbinbilla"}},
		{Name: "Madrid", Latitude: 40.4314, Longitude: -4.2481, Elevation: 834, Aliases: []string{"mdscc", "robledo"}},
	}
}

// Lookup finds a site by name or alias, ignoring case.
func (s Sites) Lookup(name string) (Site, bool) {
	name = strings.TrimSpace(name)
	for _, site := range s {
		if strings.EqualFold(site.Name, name) {
			return site, true
		}
		for _, a := range site.Aliases {
			if strings.EqualFold(a, name) {
				return site, true
			}
		}
	}
	return Site{}, false
}

// Names returns the site names in order.
func (s Sites) Names() []string {
	out := make([]string, len(s))
	for i, site := range s {
		out[i] = site.Name
	}
	return out
}

// Merge returns s with every site in other added; a site in other replaces
// one of the same name in s.
func (s Sites) Merge(other Sites) Sites {
	out := make(Sites, len(s), len(s)+len(other))
	copy(out, s)
	for _, o := range other {
		replaced := false
		for i := range out {
			if strings.EqualFold(out[i].Name, o.Name) {
				out[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}

// ParseSites parses a sites document. Unknown fields are errors.
func ParseSites(data []byte) (Sites, error) {
	var f sitesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse sites: %w", err)
	}
	for i, site := range f.Sites {
		if strings.TrimSpace(site.Name) == "" {
			return nil, fmt.Errorf("site %d: missing name", i+1)
		}
		if err := site.Location().Validate(); err != nil {
			return nil, fmt.Errorf("site %q: %w", site.Name, err)
		}
	}
	return f.Sites, nil
}

// LoadSites returns the built-in sites merged with those in the file at
// path. An empty path yields the built-in sites.
func LoadSites(path string) (Sites, error) {
	if path == "" {
		return DefaultSites(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sites: %w", err)
	}
	sites, err := ParseSites(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return DefaultSites().Merge(sites), nil
}

// Marshal encodes sites in the file layout read by ParseSites.
func (s Sites) Marshal() ([]byte, error) {
	return yaml.Marshal(sitesFile{Sites: s})
}
