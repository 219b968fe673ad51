package h5p

import "github.com/gmixoulis/docx-to-h5p/model"

// Manifest is the archive's root h5p.json.
type Manifest struct {
	Title                 string       `json:"title"`
	Language              string       `json:"language"`
	MainLibrary           string       `json:"mainLibrary"`
	EmbedTypes            []string     `json:"embedTypes"`
	License               string       `json:"license"`
	PreloadedDependencies []Dependency `json:"preloadedDependencies"`
}

// Dependency names one required library. Versions are strings in the wire
// format the importing platform validates.
type Dependency struct {
	MachineName  string `json:"machineName"`
	MajorVersion string `json:"majorVersion"`
	MinorVersion string `json:"minorVersion"`
}

const (
	libQuestionSet = "H5P.QuestionSet 1.20"
	libMultiChoice = "H5P.MultiChoice 1.16"
	libTrueFalse   = "H5P.TrueFalse 1.8"
	libCrossword   = "H5P.Crossword 0.5"
)

// manifestFor builds the manifest for a question type's package.
func manifestFor(t model.QuestionType, title string) Manifest {
	m := Manifest{
		Title:      title,
		Language:   "en",
		EmbedTypes: []string{"iframe"},
		License:    "U",
	}
	switch t {
	case model.MultipleChoice:
		m.MainLibrary = "H5P.QuestionSet"
		m.PreloadedDependencies = []Dependency{
			{MachineName: "H5P.QuestionSet", MajorVersion: "1", MinorVersion: "20"},
			{MachineName: "H5P.MultiChoice", MajorVersion: "1", MinorVersion: "16"},
		}
	case model.TrueFalse:
		m.MainLibrary = "H5P.QuestionSet"
		m.PreloadedDependencies = []Dependency{
			{MachineName: "H5P.QuestionSet", MajorVersion: "1", MinorVersion: "20"},
			{MachineName: "H5P.TrueFalse", MajorVersion: "1", MinorVersion: "8"},
		}
	case model.Crossword:
		m.MainLibrary = "H5P.Crossword"
		m.PreloadedDependencies = []Dependency{
			{MachineName: "H5P.Crossword", MajorVersion: "0", MinorVersion: "5"},
		}
	}
	return m
}
