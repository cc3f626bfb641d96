package holiday

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const cabinetCSV = "国民の祝日・休日月日,国民の祝日・休日名称\r\n" +
	"2025/11/24,休日\r\n" +
	"2026/1/1,元日\r\n" +
	"2026/1/12,成人の日\r\n" +
	"2026/5/6,休日\r\n" +
	"2027/1/1,元日\r\n"

func TestParseCabinetCSV(t *testing.T) {
	hs, err := ParseCabinetCSV(strings.NewReader(cabinetCSV))
	require.NoError(t, err)
	require.Len(t, hs, 5)
	assert.Equal(t, "元日", hs[1].Name)
	assert.Equal(t, d(2026, time.January, 1), hs[1].Date)
	assert.Equal(t, domain.HolidayOfficial, hs[1].Kind)
}

func TestParseCabinetCSV_NoRows(t *testing.T) {
	_, err := ParseCabinetCSV(strings.NewReader("header,only\n"))
	require.Error(t, err)
}

func TestCabinetOfficeSource_DecodesShiftJIS(t *testing.T) {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(cabinetCSV)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(encoded))
	}))
	defer srv.Close()

	src := NewCabinetOfficeSource(srv.URL, srv.Client(), 0)
	hs, err := src.Fetch(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, hs, 3)
	assert.Equal(t, "元日", hs[0].Name)
	assert.Equal(t, "成人の日", hs[1].Name)
	assert.Equal(t, d(2026, time.May, 6), hs[2].Date)
	assert.Equal(t, "cabinet", src.Name())
}

func TestCabinetOfficeSource_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewCabinetOfficeSource(srv.URL, srv.Client(), 0).Fetch(context.Background(), 2026)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestNewCabinetOfficeSource_Defaults(t *testing.T) {
	src := NewCabinetOfficeSource("", nil, 3*time.Second)
	assert.Equal(t, DefaultCabinetOfficeURL, src.URL)
	assert.Equal(t, 3*time.Second, src.Client.Timeout)
}

func TestGoogleCalendarSource_Pages(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		page := calendar.Events{
			Items: []*calendar.Event{
				{Summary: "元日", Description: "祝日", Start: &calendar.EventDateTime{Date: "2026-01-01"}},
				{Summary: "timed", Start: &calendar.EventDateTime{DateTime: "2026-01-02T10:00:00+09:00"}},
				{Summary: "節分", Description: "祭日\nお休みではありません", Start: &calendar.EventDateTime{Date: "2026-02-03"}},
			},
			NextPageToken: "p2",
		}
		if r.URL.Query().Get("pageToken") == "p2" {
			page = calendar.Events{Items: []*calendar.Event{
				{Summary: "海の日", Description: "Public holiday", Start: &calendar.EventDateTime{Date: "2026-07-20"}},
				{Summary: "七夕", Description: "Observance", Start: &calendar.EventDateTime{Date: "2026-07-07"}},
				{Summary: "成人の日", Start: &calendar.EventDateTime{Date: "2026-01-12"}},
			}}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := calendar.NewService(ctx,
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)

	src := NewGoogleCalendarSource(svc, "")
	hs, err := src.Fetch(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, hs, 3)
	assert.Equal(t, "元日", hs[0].Name)
	assert.Equal(t, "成人の日", hs[1].Name)
	assert.Equal(t, d(2026, time.July, 20), hs[2].Date)
	for _, h := range hs {
		assert.NotContains(t, []string{"節分", "七夕"}, h.Name, "observances are not days off")
	}
	assert.Equal(t, "gcal", src.Name())
}

func TestCalculatedSource(t *testing.T) {
	hs, err := CalculatedSource{}.Fetch(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, HolidaysForYear(2026), hs)
}
