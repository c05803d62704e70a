package models

// ShardMetadata is the header of a catalog shard file.
type ShardMetadata struct {
	File          string  `json:"file" yaml:"file"`
	Category      string  `json:"category" yaml:"category"`
	MaterialCount int     `json:"materialCount" yaml:"materialCount"`
	IDRange       IDRange `json:"idRange" yaml:"idRange"`
	SchemaVersion string  `json:"schemaVersion" yaml:"schemaVersion"`
	Created       string  `json:"created" yaml:"created"`
	LastUpdated   string  `json:"lastUpdated" yaml:"lastUpdated"`
}

// IDRange names the lexicographically first and last material ids.
type IDRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// CategoryStainless is the category tag of ISO M stainless shards.
const CategoryStainless = "M_STAINLESS"
