package config

import "gopkg.in/yaml.v3"

// defaultsYAML is the library default configuration. Required leaves carry
// null sentinels: the caller must supply them or Validate rejects the config.
const defaultsYAML = `
http:
  port: 8080
  read_timeout_sec: 10
  write_timeout_sec: 10
  shutdown_timeout_sec: 10
server:
  url: null
  index: null
  page_size: 10
  timeout_sec: 10
database:
  driver: valkey
  addrs: ["127.0.0.1:6379"]
  readiness_timeout_sec: 10
  key_prefix: "facetview:"
result_fields:
  title:
    field: null
    fallback: Untitled
  link:
    fields: null
  description:
    fields: null
    fallback: ""
  date:
    field: null
  language:
    field: null
facets: []
date_filter:
  field: null
  param: dates
features:
  date_filter: false
  field_inspector: false
  autocomplete: false
  did_you_mean: true
ui:
  theme: plain
  max_pagination_buttons: 5
  locale: en
  date_layout: "Jan 2, 2006"
  date_fallback: ""
logging:
  level: ""
`

// Defaults returns the library default configuration as a mutable map.
func Defaults() map[string]any {
	var m map[string]any
	if err := yaml.Unmarshal([]byte(defaultsYAML), &m); err != nil {
		panic("config: invalid built-in defaults: " + err.Error())
	}
	return m
}

// Merge recursively merges user over defaults and returns a new map.
// Map-valued keys merge key-wise; every other type, arrays included, is
// replaced wholesale by the user value. Explicit nulls in user are ignored
// so they cannot erase a default.
func Merge(defaults, user map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+len(user))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range user {
		if v == nil {
			continue
		}
		uv, userIsMap := v.(map[string]any)
		dv, defIsMap := out[k].(map[string]any)
		if userIsMap && defIsMap {
			out[k] = Merge(dv, uv)
			continue
		}
		out[k] = v
	}
	return out
}
