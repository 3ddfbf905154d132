package store

import _ "embed"

//go:embed sampledata/directory.yaml
var sampleDataset []byte

// SampleCaseID is the case the sample dataset centres on.
const SampleCaseID = "500-0001"

// SampleDataset returns a copy of the embedded demo dataset (YAML).
func SampleDataset() []byte {
	return append([]byte(nil), sampleDataset...)
}
