package ioload

import (
	"bufio"
	"io"
	"slices"
	"strings"
)

const maxLineSize = 16 * 1024 * 1024

// tsvReader reads tab-delimited legacy exports line by line. Quotes carry
// no meaning in county exports, they are part of values like 6" PIPE or
// "A" BLK 2, so every line is split on tabs only.
type tsvReader struct {
	sc *bufio.Scanner
}

func newTSVReader(r io.Reader) *tsvReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &tsvReader{sc: sc}
}

// Read returns the fields of the next line, or io.EOF at the end of input.
// Rows may have any number of fields.
func (r *tsvReader) Read() ([]string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	line := strings.TrimSuffix(r.sc.Text(), "\r")
	return strings.Split(line, "\t"), nil
}

// columnIndex maps a known table column to its position in the file.
type columnIndex struct {
	name string
	pos  int
}

// matchHeader finds known columns in header. Matching ignores case and
// surrounding whitespace. Unknown header fields are skipped, the first
// occurrence of a repeated field wins.
func matchHeader(header, known []string) []columnIndex {
	var res []columnIndex
	for i, v := range header {
		name := normalizeHeader(v)
		if !slices.Contains(known, name) {
			continue
		}
		if slices.ContainsFunc(res, func(c columnIndex) bool { return c.name == name }) {
			continue
		}
		res = append(res, columnIndex{name: name, pos: i})
	}
	return res
}

func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.TrimSpace(s))
}

// rowValues picks known columns from a record. Values are trimmed and
// blanks become nil. Missing trailing fields are nil too.
func rowValues(record []string, cols []columnIndex) []any {
	res := make([]any, len(cols))
	for i, c := range cols {
		if c.pos >= len(record) {
			continue
		}
		v := strings.TrimSpace(record[c.pos])
		if v == "" {
			continue
		}
		res[i] = v
	}
	return res
}

func columnNames(cols []columnIndex) []string {
	res := make([]string, len(cols))
	for i, v := range cols {
		res[i] = v.name
	}
	return res
}
