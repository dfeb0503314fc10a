package ingestion

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	// BinarySampleSize is the number of bytes to sample for binary detection
	BinarySampleSize = 1000
	// BinaryThreshold is the proportion of non-printable characters that indicates binary data
	BinaryThreshold = 0.3
)

var (
	// ErrUnsupportedFormat is returned for file extensions the loader cannot read
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrLegacyDoc is returned for Word 97-2003 .doc files
	ErrLegacyDoc = fmt.Errorf("%w: .doc not supported; please convert to .docx", ErrUnsupportedFormat)
	// ErrUnreadable is returned when a file exists but its text cannot be read
	ErrUnreadable = errors.New("unreadable file")
)

// SupportedExtensions lists the extensions ExtractText accepts
var SupportedExtensions = []string{".pdf", ".docx", ".txt", ".md"}

// IsSupported reports whether the file name has a readable extension
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// Format returns the lower-cased extension without the dot
func Format(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// ExtractText extracts normalized text from PDF, DOCX, TXT or MD files
func ExtractText(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var (
		text string
		err  error
	)
	switch ext {
	case ".txt", ".md":
		text, err = extractPlain(filePath)
	case ".pdf":
		text, err = extractPDF(filePath)
	case ".docx":
		text, err = extractDOCX(filePath)
	case ".doc":
		return "", ErrLegacyDoc
	case "":
		return "", fmt.Errorf("%w: file has no extension: %s", ErrUnsupportedFormat, filepath.Base(filePath))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", err
	}

	return NormalizeText(text), nil
}

func extractPlain(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	content := string(data)
	if IsBinaryData(content) {
		return "", fmt.Errorf("%w: %s looks like binary data, not text", ErrUnreadable, filepath.Base(filePath))
	}

	return strings.ToValidUTF8(content, ""), nil
}

// extractPDF reads the text layer of every page; image-only pages yield nothing
func extractPDF(filePath string) (text string, err error) {
	// The PDF reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: malformed PDF %s: %v", ErrUnreadable, filepath.Base(filePath), r)
		}
	}()

	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read pdf: %w", ErrUnreadable, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: failed to read pdf page %d: %w", ErrUnreadable, i, err)
		}
		sb.WriteString("\n")
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}

func extractDOCX(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse docx: %w", ErrUnreadable, err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

var (
	docxBreakRe = regexp.MustCompile(`</w:p>|<w:br[^>]*/>|<w:cr[^>]*/>`)
	docxTabRe   = regexp.MustCompile(`<w:tab[^>]*/>`)
	xmlTagRe    = regexp.MustCompile(`<[^>]+>`)
)

// docxXMLToText turns the body of word/document.xml into plain text
func docxXMLToText(content string) string {
	content = docxBreakRe.ReplaceAllString(content, "\n")
	content = docxTabRe.ReplaceAllString(content, " ")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

var (
	spacesAroundNewlineRe = regexp.MustCompile(` *\n *`)
	manyNewlinesRe        = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText unifies line endings and whitespace
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, "\t", " ")
	text = spacesAroundNewlineRe.ReplaceAllString(text, "\n")
	text = manyNewlinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// IsBinaryData checks if content appears to be binary (PDF/ZIP markers)
func IsBinaryData(content string) bool {
	if len(content) == 0 {
		return false
	}

	// Check for PDF magic number
	if strings.HasPrefix(content, "%PDF-") {
		return true
	}

	// Check for ZIP local file header (DOCX files)
	if strings.HasPrefix(content, "PK\x03\x04") {
		return true
	}

	// Check for high proportion of non-printable characters
	sampleSize := min(BinarySampleSize, len(content))
	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		ch := content[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(sampleSize) > BinaryThreshold
}
