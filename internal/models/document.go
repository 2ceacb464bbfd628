package models

// AppTitle is the fixed part of the main window title
const AppTitle = "Text Editor"

// Document is the text being edited together with the file it belongs to.
// An empty Path means the document has never been saved.
type Document struct {
	Path string
	Text string
}

// NewDocument creates an empty, untitled document
func NewDocument() *Document {
	return &Document{}
}

// HasPath reports whether the document is associated with a file
func (d *Document) HasPath() bool {
	return d.Path != ""
}

// Reset clears both the text and the path
func (d *Document) Reset() {
	d.Path = ""
	d.Text = ""
}

// Title returns the window title for the document
func (d *Document) Title() string {
	if d.Path == "" {
		return AppTitle
	}
	return AppTitle + " - " + d.Path
}
