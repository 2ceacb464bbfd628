package models

// SaveChoice is the answer to the "Do you wish to save." prompt
type SaveChoice int

const (
	SaveCancel SaveChoice = iota
	SaveYes
	SaveNo
)

func (c SaveChoice) String() string {
	switch c {
	case SaveYes:
		return "yes"
	case SaveNo:
		return "no"
	default:
		return "cancel"
	}
}

// FileFilter is a labelled set of file extensions offered by the file dialogs.
// A nil Extensions slice accepts every file.
type FileFilter struct {
	Label      string
	Extensions []string
}

var (
	TextFilesFilter = FileFilter{Label: "Text files (*.txt)", Extensions: []string{".txt"}}
	AllFilesFilter  = FileFilter{Label: "All files (*.*)"}
)

// AcceptsAll reports whether the filter lets every file through
func (f FileFilter) AcceptsAll() bool {
	return len(f.Extensions) == 0
}
