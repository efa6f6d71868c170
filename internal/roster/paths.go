package roster

import (
	"path/filepath"
	"strconv"
)

const playersDir = "players"

// PlayersPath builds the path to a season roster file.
func PlayersPath(basePath string, year int) string {
	return filepath.Join(basePath, playersDir, strconv.Itoa(year)+".json")
}
