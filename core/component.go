package core

// ImagePresented is one inline image produced by a chart render. The
// cid is generated fresh per render and is unique within one report;
// delivery attaches images by cid.
type ImagePresented struct {
	CID  string
	MIME string
	Data []byte
}

// RenderedContent is the output of one component render call: a
// format-specific text fragment plus the images it references.
type RenderedContent struct {
	Content string
	Images  []ImagePresented
}

// DataPresented is the assembled report handed over to delivery:
// full content, the flattened image list across all queries and the
// format flag delivery needs to pick a body type.
type DataPresented struct {
	IsHTML  bool
	Content string
	Images  []ImagePresented
}

// Component renders the rows of one query into format-specific
// content. Implementations are resolved from configuration once, at
// startup.
type Component interface {
	Render(query *Query, rows []Row, format OutputFormat) (*RenderedContent, error)
}
