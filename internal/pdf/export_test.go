package pdf

// PageContent returns the decoded content of a page opened by PDFCPU.
func PageContent(doc Document, index int) ([]byte, error) {
	_, b, err := doc.(*cpuDocument).pages[index].content()
	return b, err
}
