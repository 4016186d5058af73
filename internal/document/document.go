package document

// Table is an ordered grid of cell strings extracted from a page.
// Row 0 is the header by convention. Rows are not guaranteed to be
// rectangular; short rows are treated as missing trailing cells.
type Table struct {
	Rows [][]string
}

// Cell returns the cell at (row, col), reporting whether it exists.
func (t Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Rows) {
		return "", false
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return "", false
	}
	return r[col], true
}

// SignatureField describes a digital signature form widget.
type SignatureField struct {
	FieldType string // "Sig" for signature fields
	FieldName string // may be empty when the field is unnamed
}

// Page is one page of an opened document. Pages are owned transiently
// by a single analysis operation and carry no cross-invocation state.
type Page struct {
	Number          int // 1-based
	Text            string
	Tables          []Table
	SignatureFields []SignatureField
}

// Document is a decoded document: an ordered sequence of pages plus a
// release hook for the underlying resource.
type Document struct {
	Path  string
	Pages []Page

	closeFn func() error
}

// New builds a Document. closeFn may be nil for fully in-memory sources.
func New(path string, pages []Page, closeFn func() error) *Document {
	return &Document{Path: path, Pages: pages, closeFn: closeFn}
}

// Close releases the underlying document resource. Safe to call on
// every exit path; subsequent calls are no-ops.
func (d *Document) Close() error {
	if d.closeFn == nil {
		return nil
	}
	fn := d.closeFn
	d.closeFn = nil
	return fn()
}
