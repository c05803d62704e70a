// Package data embeds the catalog shard files shipped with the module.
package data

import _ "embed"

// StainlessFile is the file name of the ISO M stainless shard.
const StainlessFile = "m_stainless_051_100.json"

//go:embed m_stainless_051_100.json
var Stainless []byte
