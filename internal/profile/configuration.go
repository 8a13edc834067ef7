package profile

import (
	"encoding/json"
	"sort"
)

// Resolved configuration keys.
const (
	KeySSLEnabled    = "server.ssl.enabled"
	KeyHTTP2Enabled  = "server.http2.enabled"
	KeyServerPort    = "server.port"
	KeyDatasourceURL = "spring.datasource.url"

	persistenceProp = "spring.jpa.properties.jakarta.persistence"
	schemaGenProp   = persistenceProp + ".schema-generation"

	KeyDropScript   = schemaGenProp + ".drop-script-source"
	KeyCreateScript = schemaGenProp + ".create-script-source"
	KeySeedScript   = persistenceProp + ".sql-load-script-source"

	KeyForkCount = "test.max-parallel-forks"
	KeyImageName = "image.name"
	KeyImageTags = "image.tags"
)

// datasourceKeys are only present when a database selector was given.
var datasourceKeys = []string{KeyDatasourceURL, KeyDropScript, KeyCreateScript, KeySeedScript}

// Configuration is an immutable set of resolved key/value entries.
// The zero value is an empty configuration.
type Configuration struct {
	entries map[string]string
}

// NewConfiguration copies entries into a new Configuration.
func NewConfiguration(entries map[string]string) Configuration {
	c := Configuration{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		c.entries[k] = v
	}
	return c
}

// Get returns the value for key, or "" when absent.
func (c Configuration) Get(key string) string {
	return c.entries[key]
}

// Lookup returns the value for key and whether it is present.
func (c Configuration) Lookup(key string) (string, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (c Configuration) Len() int {
	return len(c.entries)
}

// Keys returns all keys in sorted order.
func (c Configuration) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the entries.
func (c Configuration) Map() map[string]string {
	out := make(map[string]string, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// merge returns a new Configuration with the entries of others layered on
// top of c, later layers winning.
func (c Configuration) merge(others ...map[string]string) Configuration {
	out := c.Map()
	for _, layer := range others {
		for k, v := range layer {
			out[k] = v
		}
	}
	return Configuration{entries: out}
}

// pick returns the subset of entries whose keys are in keys.
func (c Configuration) pick(keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := c.entries[k]; ok {
			out[k] = v
		}
	}
	return out
}

// MarshalJSON encodes the configuration as a flat JSON object.
func (c Configuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

// MarshalYAML encodes the configuration as a flat YAML mapping.
func (c Configuration) MarshalYAML() (any, error) {
	return c.Map(), nil
}
