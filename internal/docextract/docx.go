package docextract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

func extractDocx(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, unreadable(FormatDocx, err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBody {
			body = f
			break
		}
	}
	if body == nil {
		return nil, unreadable(FormatDocx, fmt.Errorf("%s missing", docxBody))
	}

	rc, err := body.Open()
	if err != nil {
		return nil, unreadable(FormatDocx, err)
	}
	defer rc.Close()

	text, err := walkDocxBody(rc)
	if err != nil {
		return nil, unreadable(FormatDocx, err)
	}

	return &Document{Text: text, Format: FormatDocx}, nil
}

// walkDocxBody streams document.xml in body order. A paragraph is one line;
// a table row is one line with its cell texts joined by " | ".
func walkDocxBody(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out       strings.Builder
		para      strings.Builder
		cell      strings.Builder
		rowCells  []string
		tblDepth  int
		inRun     bool
		inText    bool
		cellParas int
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
			case "tr":
				if tblDepth == 1 {
					rowCells = rowCells[:0]
				}
			case "tc":
				if tblDepth == 1 {
					cell.Reset()
					cellParas = 0
				}
			case "p":
				para.Reset()
			case "r":
				inRun = true
			case "t":
				inText = inRun
			case "tab":
				// w:tab also appears as a tab-stop definition inside w:pPr
				if inRun {
					para.WriteByte('\t')
				}
			case "br", "cr":
				if inRun {
					para.WriteByte('\n')
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				inRun = false
			case "t":
				inText = false
			case "p":
				line := para.String()
				if tblDepth == 0 {
					out.WriteString(line)
					out.WriteByte('\n')
					continue
				}
				if strings.TrimSpace(line) == "" {
					continue
				}
				if cellParas > 0 {
					cell.WriteByte(' ')
				}
				cell.WriteString(strings.TrimSpace(line))
				cellParas++
			case "tc":
				if tblDepth == 1 {
					rowCells = append(rowCells, cell.String())
				}
			case "tr":
				if tblDepth == 1 {
					out.WriteString(strings.Join(rowCells, " | "))
					out.WriteByte('\n')
				}
			case "tbl":
				tblDepth--
			}

		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}

	return out.String(), nil
}
