package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"voya/internal/models/db_models"
	"voya/pkg/utils"
)

const (
	ExportJSON = "json"
	ExportCSV  = "csv"
	ExportPDF  = "pdf"
)

// ExportedFile is a rendered trip ready to be sent as a download.
type ExportedFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportServiceInterface interface {
	ExportTrip(ctx context.Context, user, id, format string) (*ExportedFile, error)
}

type ExportService struct {
	trips      TripServiceInterface
	appBaseURL string
}

func NewExportService(trips TripServiceInterface, appBaseURL string) ExportServiceInterface {
	return &ExportService{
		trips:      trips,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

func (e *ExportService) ExportTrip(ctx context.Context, user, id, format string) (*ExportedFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportJSON
	}
	if format != ExportJSON && format != ExportCSV && format != ExportPDF {
		return nil, fmt.Errorf("%w: unsupported export format %q", utils.ErrInvalidInput, format)
	}

	trip, err := e.trips.GetTrip(ctx, user, id)
	if err != nil {
		return nil, err
	}

	base := "trip-" + slug(trip.Destination)
	switch format {
	case ExportCSV:
		body, err := renderTripCSV(trip)
		if err != nil {
			return nil, err
		}
		return &ExportedFile{Filename: base + ".csv", ContentType: "text/csv; charset=utf-8", Body: body}, nil
	case ExportPDF:
		body, err := renderTripPDF(trip, e.tripURL(trip.ID))
		if err != nil {
			return nil, err
		}
		return &ExportedFile{Filename: base + ".pdf", ContentType: "application/pdf", Body: body}, nil
	default:
		body, err := json.MarshalIndent(trip, "", "  ")
		if err != nil {
			return nil, err
		}
		return &ExportedFile{Filename: base + ".json", ContentType: "application/json", Body: body}, nil
	}
}

func (e *ExportService) tripURL(id string) string {
	return e.appBaseURL + "/trips/" + id
}

var csvHeader = []string{"list", "position", "name", "category", "duration", "bestTime", "whyRecommended", "practicalInfo"}

func renderTripCSV(trip *db_models.Trip) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	write := func(list string, activities []db_models.Activity) error {
		for i, a := range activities {
			row := []string{list, strconv.Itoa(i + 1), a.Name, a.Category, a.Duration, a.BestTime, a.WhyRecommended, a.PracticalInfo}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := write(ListLiked, trip.LikedActivities); err != nil {
		return nil, err
	}
	if err := write(ListDisliked, trip.DislikedActivities); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderTripPDF(trip *db_models.Trip, link string) ([]byte, error) {
	qrCode, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Trip to "+trip.Destination), false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(130, 12, tr(trip.Destination), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if dates := tripDateLine(trip); dates != "" {
		pdf.CellFormat(130, 7, tr(dates), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(130, 7, fmt.Sprintf("%d liked, %d passed", len(trip.LikedActivities), len(trip.DislikedActivities)), "", 1, "L", false, 0, "")

	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrCode))
	pdf.ImageOptions("qr", 160, 18, 30, 30, false, imgOpts, 0, link)
	pdf.SetY(52)

	section := func(title string, activities []db_models.Activity) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 9, title, "B", 1, "L", false, 0, "")
		if len(activities) == 0 {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.CellFormat(0, 7, "None", "", 1, "L", false, 0, "")
			return
		}
		for i, a := range activities {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 7, tr(fmt.Sprintf("%d. %s", i+1, a.Name)), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s | %s | best: %s", a.Category, a.Duration, a.BestTime)), "", 1, "L", false, 0, "")
			if a.WhyRecommended != "" {
				pdf.MultiCell(0, 5, tr(a.WhyRecommended), "", "L", false)
			}
			if a.PracticalInfo != "" {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.MultiCell(0, 5, tr(a.PracticalInfo), "", "L", false)
			}
			pdf.Ln(2)
		}
	}
	section("Liked activities", trip.LikedActivities)
	section("Passed activities", trip.DislikedActivities)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func tripDateLine(trip *db_models.Trip) string {
	start, end := utils.FormatDisplayDate(trip.StartDate), utils.FormatDisplayDate(trip.EndDate)
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return "From " + start
	case end != "":
		return "Until " + end
	}
	return ""
}

func slug(s string) string {
	var sb strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			lastDash = false
		} else if !lastDash && sb.Len() > 0 {
			sb.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.TrimSuffix(sb.String(), "-")
	if out == "" {
		return "export"
	}
	return out
}
