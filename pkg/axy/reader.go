package axy

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"starsieve/pkg/errors"
)

// ReadTable reads an axy file back into a Table. It expects the layout
// WriteTable produces: an empty primary HDU followed by one BINTABLE
// extension with float32 X/Y columns.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening axy file: %w", err)
	}
	defer f.Close()
	return readTable(f)
}

func readTable(r io.Reader) (*Table, error) {
	primary, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if primary.get("SIMPLE") != "T" {
		return nil, errors.ErrNotFITS
	}
	if naxis := primary.getInt("NAXIS", 0); naxis != 0 {
		return nil, fmt.Errorf("unexpected primary data array (NAXIS=%d)", naxis)
	}

	ext, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if xt := ext.get("XTENSION"); xt != "BINTABLE" {
		return nil, fmt.Errorf("unexpected extension type %q", xt)
	}

	rowBytes := ext.getInt("NAXIS1", -1)
	rows := ext.getInt("NAXIS2", -1)
	fields := ext.getInt("TFIELDS", -1)
	if rowBytes != rowSize || fields != 2 {
		return nil, fmt.Errorf("unexpected table shape: NAXIS1=%d, TFIELDS=%d", rowBytes, fields)
	}
	if rows < 0 {
		return nil, fmt.Errorf("missing NAXIS2")
	}
	if ext.get("TFORM1") != "E" || ext.get("TFORM2") != "E" {
		return nil, fmt.Errorf("unexpected column formats %q, %q", ext.get("TFORM1"), ext.get("TFORM2"))
	}

	data := make([]byte, rows*rowSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("reading table data: %w", err)
	}

	table := &Table{Rows: make([]Row, rows)}
	for i := 0; i < rows; i++ {
		off := i * rowSize
		table.Rows[i] = Row{
			X: math.Float32frombits(binary.BigEndian.Uint32(data[off:])),
			Y: math.Float32frombits(binary.BigEndian.Uint32(data[off+4:])),
		}
	}
	return table, nil
}

// header holds the raw keyword/value pairs of one HDU header.
type header map[string]string

func (h header) get(key string) string {
	return h[strings.ToUpper(key)]
}

func (h header) getInt(key string, def int) int {
	v, ok := h[strings.ToUpper(key)]
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// readHeader consumes whole 2880-byte blocks of 80-byte cards until END.
func readHeader(r io.Reader) (header, error) {
	h := make(header)
	recordBuf := make([]byte, cardSize)
	headerDone := false

	for !headerDone {
		for i := 0; i < cardsPerBlock; i++ {
			if _, err := io.ReadFull(r, recordBuf); err != nil {
				return nil, fmt.Errorf("reading header record: %w", err)
			}
			record := string(recordBuf)
			keyword := strings.TrimSpace(record[:8])

			if keyword == "END" {
				headerDone = true
				remaining := cardsPerBlock - 1 - i
				if remaining > 0 {
					skipBuf := make([]byte, remaining*cardSize)
					if _, err := io.ReadFull(r, skipBuf); err != nil {
						return nil, fmt.Errorf("reading header padding: %w", err)
					}
				}
				break
			}

			if len(record) > 10 && record[8] == '=' && record[9] == ' ' {
				rawValue := strings.TrimSpace(strings.SplitN(record[10:], "/", 2)[0])
				if keyword != "" {
					h[strings.ToUpper(keyword)] = parseValue(rawValue)
				}
			}
		}
	}
	return h, nil
}

func parseValue(rawValue string) string {
	if strings.HasPrefix(rawValue, "'") {
		endQuote := strings.LastIndex(rawValue, "'")
		if endQuote > 0 {
			return strings.TrimRight(rawValue[1:endQuote], " ")
		}
		return strings.TrimLeft(strings.TrimRight(rawValue, " "), "'")
	}
	return rawValue
}
