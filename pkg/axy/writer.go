package axy

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"starsieve/pkg/catalog"
	"starsieve/pkg/errors"
)

// WriteTable writes the reference set to path as a FITS binary table,
// replacing any existing file. The table carries two float32 columns, X
// and Y, in reference-set order. A zero-row set produces a valid
// zero-row table.
//
// On failure the partial file is removed so a reported error never
// leaves output that looks usable.
func WriteTable(path string, refs []catalog.Candidate) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewWriteError(path, err)
	}

	if err := writeTable(f, refs); err != nil {
		f.Close()
		os.Remove(path)
		return errors.NewWriteError(path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return errors.NewWriteError(path, err)
	}
	return nil
}

func writeTable(f *os.File, refs []catalog.Candidate) error {
	w := bufio.NewWriter(f)

	if _, err := w.Write(primaryHeader()); err != nil {
		return err
	}
	if _, err := w.Write(tableHeader(len(refs))); err != nil {
		return err
	}

	var row [rowSize]byte
	for _, c := range refs {
		binary.BigEndian.PutUint32(row[0:4], math.Float32bits(float32(c.X)))
		binary.BigEndian.PutUint32(row[4:8], math.Float32bits(float32(c.Y)))
		if _, err := w.Write(row[:]); err != nil {
			return err
		}
	}

	// Data area fills out to a whole block with zero bytes.
	dataLen := len(refs) * rowSize
	if rem := dataLen % blockSize; rem != 0 {
		pad := make([]byte, blockSize-rem)
		if _, err := w.Write(pad); err != nil {
			return err
		}
	}

	return w.Flush()
}

// primaryHeader is the empty primary HDU preceding the table extension.
func primaryHeader() []byte {
	cards := []string{
		card("SIMPLE", "T", "conforms to FITS standard"),
		card("BITPIX", "8", ""),
		card("NAXIS", "0", "no primary data array"),
		card("EXTEND", "T", ""),
		endCard(),
	}
	return padHeader(cards)
}

func tableHeader(rows int) []byte {
	cards := []string{
		stringCard("XTENSION", "BINTABLE", "binary table extension"),
		card("BITPIX", "8", ""),
		card("NAXIS", "2", ""),
		card("NAXIS1", fmt.Sprintf("%d", rowSize), "bytes per row"),
		card("NAXIS2", fmt.Sprintf("%d", rows), "number of reference stars"),
		card("PCOUNT", "0", ""),
		card("GCOUNT", "1", ""),
		card("TFIELDS", "2", ""),
		stringCard("TTYPE1", "X", "image pixel coordinate"),
		stringCard("TFORM1", "E", "32-bit float"),
		stringCard("TTYPE2", "Y", "image pixel coordinate"),
		stringCard("TFORM2", "E", "32-bit float"),
		endCard(),
	}
	return padHeader(cards)
}
