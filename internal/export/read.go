package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jimezsa/jobharvest/internal/models"
)

var ErrBadHeader = errors.New("unexpected csv header")

// ReadCSV parses a file written by WriteCSV.
func ReadCSV(r io.Reader) ([]models.Job, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrBadHeader)
		}
		return nil, err
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, header[i], name)
		}
	}

	var jobs []models.Job
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return jobs, nil
		}
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, models.Job{
			Title:       row[0],
			Company:     row[1],
			Location:    row[2],
			Salary:      row[3],
			URL:         row[4],
			Description: row[5],
			PostedDate:  row[6],
		})
	}
}

// ReadCSVFile opens and parses path.
func ReadCSVFile(path string) ([]models.Job, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	jobs, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return jobs, nil
}
