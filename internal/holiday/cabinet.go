package holiday

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// DefaultCabinetOfficeURL is the Cabinet Office's published holiday CSV.
const DefaultCabinetOfficeURL = "https://www8.cao.go.jp/chosei/shukujitsu/syukujitsu.csv"

const cabinetDateLayout = "2006/1/2"

// CabinetOfficeSource reads the government holiday CSV. The file is
// Shift_JIS encoded with a header row and "YYYY/M/D,name" records.
type CabinetOfficeSource struct {
	URL    string
	Client *http.Client
}

// NewCabinetOfficeSource returns a source for url using client. Empty
// arguments select the default URL and a client with the given timeout.
func NewCabinetOfficeSource(url string, client *http.Client, timeout time.Duration) *CabinetOfficeSource {
	if url == "" {
		url = DefaultCabinetOfficeURL
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &CabinetOfficeSource{URL: url, Client: client}
}

func (s *CabinetOfficeSource) Name() string { return "cabinet" }

func (s *CabinetOfficeSource) Fetch(ctx context.Context, year int) ([]domain.Holiday, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building holiday csv request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching holiday csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching holiday csv: unexpected status %s", resp.Status)
	}

	all, err := ParseCabinetCSV(transform.NewReader(resp.Body, japanese.ShiftJIS.NewDecoder()))
	if err != nil {
		return nil, err
	}
	return filterYear(all, year), nil
}

// ParseCabinetCSV parses already-decoded CSV text. Rows whose first field
// is not a date (the header) are skipped.
func ParseCabinetCSV(r io.Reader) ([]domain.Holiday, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var out []domain.Holiday
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading holiday csv: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		d, err := time.Parse(cabinetDateLayout, strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		out = append(out, domain.Holiday{
			Name: strings.TrimSpace(record[1]),
			Date: d,
			Kind: domain.HolidayOfficial,
		})
	}
	if len(out) == 0 {
		return nil, errors.New("holiday csv contained no dated rows")
	}
	return out, nil
}
