package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	contentTypesPart = "[Content_Types].xml"
	docxDefaultPart  = "word/document.xml"
	docxMainType     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	pptxSlidePrefix  = "ppt/slides/slide"
	odfContentPart   = "content.xml"
)

var (
	wordTextRe  = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	slideTextRe = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)

	// Override elements may list PartName and ContentType in either order.
	docxPartRes = []*regexp.Regexp{
		regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainType) + `"`),
		regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainType) + `"[^>]+PartName="([^"]+)"`),
	}

	odfParagraphRe = regexp.MustCompile(`<text:p[^>]*>([^<]*)</text:p>`)
	odfSpanRe      = regexp.MustCompile(`<text:span[^>]*>([^<]*)</text:span>`)
	odfHeadingRe   = regexp.MustCompile(`<text:h[^>]*>([^<]*)</text:h>`)

	odpElements = []*regexp.Regexp{odfParagraphRe, odfSpanRe, odfHeadingRe}
	odsElements = []*regexp.Regexp{odfParagraphRe, odfSpanRe}
)

func openZip(content []byte, format string) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("extract %s: not a zip: %w", format, err)
	}
	return zr, nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return data, nil
}

// findPart returns the named part, or nil.
func findPart(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// joinMatches appends the trimmed first submatch of every pattern hit to b,
// space separated.
func joinMatches(b *strings.Builder, xml string, res ...*regexp.Regexp) {
	for _, re := range res {
		for _, m := range re.FindAllStringSubmatch(xml, -1) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.TrimSpace(m[1]))
		}
	}
}

// docxMainPart resolves the main document part from [Content_Types].xml.
func docxMainPart(zr *zip.Reader) string {
	f := findPart(zr, contentTypesPart)
	if f == nil {
		return docxDefaultPart
	}
	data, err := readPart(f)
	if err != nil {
		return docxDefaultPart
	}
	for _, re := range docxPartRes {
		if m := re.FindSubmatch(data); len(m) > 1 {
			return strings.TrimPrefix(string(m[1]), "/")
		}
	}
	return docxDefaultPart
}

// extractDOCX collects every <w:t> run of the main document part.
func extractDOCX(content []byte) (string, error) {
	zr, err := openZip(content, "DOCX")
	if err != nil {
		return "", err
	}
	name := docxMainPart(zr)
	f := findPart(zr, name)
	if f == nil {
		return "", fmt.Errorf("extract DOCX: %s not found", name)
	}
	data, err := readPart(f)
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}
	var b strings.Builder
	joinMatches(&b, string(data), wordTextRe)
	return strings.TrimSpace(b.String()), nil
}

// extractPPTX collects every <a:t> run of every slide, in slide name order.
func extractPPTX(content []byte) (string, error) {
	zr, err := openZip(content, "PPTX")
	if err != nil {
		return "", err
	}
	var slides []*zip.File
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, pptxSlidePrefix) && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f)
		}
	}
	sort.SliceStable(slides, func(i, j int) bool {
		return slideLess(slides[i].Name, slides[j].Name)
	})
	var b strings.Builder
	for _, f := range slides {
		data, err := readPart(f)
		if err != nil {
			return "", fmt.Errorf("extract PPTX: %w", err)
		}
		joinMatches(&b, string(data), slideTextRe)
	}
	return strings.TrimSpace(b.String()), nil
}

// slideLess orders slide2.xml before slide10.xml.
func slideLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// extractODF collects the text elements of an OpenDocument content.xml, one
// pattern at a time.
func extractODF(content []byte, format string, elements []*regexp.Regexp) (string, error) {
	zr, err := openZip(content, format)
	if err != nil {
		return "", err
	}
	f := findPart(zr, odfContentPart)
	if f == nil {
		return "", fmt.Errorf("extract %s: %s not found", format, odfContentPart)
	}
	data, err := readPart(f)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", format, err)
	}
	var b strings.Builder
	joinMatches(&b, string(data), elements...)
	return strings.TrimSpace(b.String()), nil
}

// extractXLSX renders each sheet row as tab-separated cells, one row per line.
func extractXLSX(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String()), nil
}
