// Package seed bundles the static fallback project dataset, consulted only
// when durable storage has no usable project collection.
package seed

import (
	_ "embed"
	"encoding/json"

	"github.com/mvaldez/projecttracker/internal/store"
)

//go:embed seed.json
var seedData []byte

type seedFile struct {
	Projects []store.Project `json:"projects"`
}

// Projects returns the bundled seed dataset. The bundle ships inside the
// binary, so a decode failure is a build defect and panics at startup.
func Projects() []store.Project {
	var f seedFile
	if err := json.Unmarshal(seedData, &f); err != nil {
		panic("seed: malformed bundled dataset: " + err.Error())
	}
	return f.Projects
}
