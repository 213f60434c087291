package model

// GenerateResult summarizes one pipeline run
type GenerateResult struct {
	Releases  []*Release
	Files     []string // Paths of every file written
	Failed    int      // Number of outputs that could not be written
	Published int      // Number of files uploaded to the object store
}
