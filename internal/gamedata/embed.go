// Package gamedata provides the embedded cave data and the registries that
// turn map labels into tiles, items and enemies.
package gamedata

import "embed"

// dataFS embeds all JSON files and the default map from this directory at build time.
//
//go:embed *.json map.txt
var dataFS embed.FS
