package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
)

type frameJSON struct {
	*mesh.DrawList
	Background string `json:"background"`
}

// WriteJSON dumps a draw list with indented JSON.
func WriteJSON(w io.Writer, list *mesh.DrawList) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(frameJSON{DrawList: list, Background: list.BackgroundHex()})
}

func SaveJSON(path string, list *mesh.DrawList) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, list)
}
