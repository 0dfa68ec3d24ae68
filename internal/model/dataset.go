package model

import "time"

// YardDataset is the currently loaded yard snapshot as returned by the API.
type YardDataset struct {
	Version    string      `json:"version" msgpack:"version"`
	LoadedAt   *time.Time  `json:"loadedAt" msgpack:"loadedAt"`
	Stats      *ParseStats `json:"stats" msgpack:"stats"`
	Vessels    []string    `json:"vessels" msgpack:"vessels"`
	Containers int         `json:"containers" msgpack:"-"`
}
