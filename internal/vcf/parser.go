// Package vcf provides parsing of variant-call records with per-allele depths.
package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// adTag is the FORMAT key carrying per-allele read depths.
const adTag = "AD"

// indelMarker flags records this pipeline skips; only SNVs are plotted.
const indelMarker = "INDEL"

// Parser reads variant records from a VCF file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	header     []string
}

// NewParser creates a new VCF parser for the given file.
// Supports both plain VCF and gzipped VCF (.vcf.gz) files.
// Use "-" to read from stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read vcf file: %w", err)
	}

	// Seek back to beginning
	_, err = file.Seek(0, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	// Check for gzip magic number (0x1f, 0x8b)
	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{
		reader: bufio.NewReader(r),
	}
}

// Next reads the next SNV record from the VCF file.
// Header lines and indel records are skipped.
// Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		if line == "" && err == io.EOF {
			return nil, nil
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err == io.EOF {
				return nil, nil
			}
			continue
		}

		if strings.HasPrefix(line, "#") {
			p.header = append(p.header, line)
			continue
		}

		if strings.Contains(line, indelMarker) {
			continue
		}

		return p.parseLine(line)
	}
}

// parseLine parses a single VCF data line into a Record.
func (p *Parser) parseLine(line string) (*Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 10 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least 10 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	var alts []string
	if fields[4] != "." && fields[4] != "" {
		alts = strings.Split(fields[4], ",")
	}

	depths, err := p.parseAlleleDepths(fields[8], fields[9], len(alts))
	if err != nil {
		return nil, err
	}

	return &Record{
		Chrom:        fields[0],
		Pos:          pos,
		Ref:          fields[3],
		Alts:         alts,
		AlleleDepths: depths,
	}, nil
}

// parseAlleleDepths locates the AD value via the FORMAT column ordering and
// parses it into per-allele depth counts, reference first. A trailing sentinel
// count produced by some callers is discarded.
func (p *Parser) parseAlleleDepths(format, sample string, altCount int) ([]int, error) {
	adIndex := -1
	for i, key := range strings.Split(format, ":") {
		if key == adTag {
			adIndex = i
			break
		}
	}
	if adIndex < 0 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("format column has no %s tag", adTag),
		}
	}

	values := strings.Split(sample, ":")
	if adIndex >= len(values) {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("sample column has no value for %s", adTag),
		}
	}

	counts := strings.Split(values[adIndex], ",")
	if len(counts) == altCount+2 {
		counts = counts[:len(counts)-1]
	}
	if len(counts) != altCount+1 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("%s has %d values for %d alternate bases", adTag, len(counts), altCount),
		}
	}

	depths := make([]int, len(counts))
	for i, c := range counts {
		d, err := strconv.Atoi(c)
		if err != nil || d < 0 {
			return nil, &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("invalid %s count: %s", adTag, c),
			}
		}
		depths[i] = d
	}

	return depths, nil
}

// Header returns the header lines seen so far.
func (p *Parser) Header() []string {
	return p.header
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
