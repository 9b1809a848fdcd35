package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pratik0133/alumni-connect-api/internal/models"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
	"github.com/pratik0133/alumni-connect-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult is a rendered report ready to stream to the client.
type ExportResult struct {
	Payload     []byte
	ContentType string
	Filename    string
}

type exportDonationReader interface {
	ListAll(ctx context.Context) ([]models.Donation, error)
}

type exportDirectoryReader interface {
	Directory(ctx context.Context, filter models.DirectoryFilter) ([]models.User, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders donation and directory reports. Reports are built
// and streamed in one request; nothing is persisted.
type ExportService struct {
	donations exportDonationReader
	users     exportDirectoryReader
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(donations exportDonationReader, users exportDirectoryReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		donations: donations,
		users:     users,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
		now:       time.Now,
	}
}

// Donations renders the full donation ledger in the requested format.
func (s *ExportService) Donations(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	donations, err := s.donations.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load donations for export")
	}

	rows := make([]map[string]string, 0, len(donations))
	for _, d := range donations {
		rows = append(rows, map[string]string{
			"Transaction ID": d.TransactionID,
			"User ID":        d.UserID,
			"Amount":         fmt.Sprintf("%.2f", d.Amount),
			"Purpose":        d.Purpose,
			"Payment Method": d.PaymentMethod,
			"Status":         string(d.Status),
			"Date":           d.CreatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Transaction ID", "User ID", "Amount", "Purpose", "Payment Method", "Status", "Date"},
		Rows:    rows,
	}

	return s.render(dataset, "Donation Report", "donations", format)
}

// Directory renders the approved-alumni directory in the requested format.
func (s *ExportService) Directory(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	users, err := s.users.Directory(ctx, models.DirectoryFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load directory for export")
	}

	rows := make([]map[string]string, 0, len(users))
	for _, u := range users {
		year := ""
		if u.GraduationYear > 0 {
			year = fmt.Sprintf("%d", u.GraduationYear)
		}
		rows = append(rows, map[string]string{
			"Name":       u.FirstName + " " + u.LastName,
			"Email":      u.Email,
			"Year":       year,
			"Degree":     u.Degree,
			"Department": u.Department,
			"Company":    u.Company,
			"Position":   u.Position,
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Name", "Email", "Year", "Degree", "Department", "Company", "Position"},
		Rows:    rows,
	}

	return s.render(dataset, "Alumni Directory", "directory", format)
}

func (s *ExportService) render(dataset export.Dataset, title, prefix string, format ExportFormat) (*ExportResult, error) {
	timestamp := s.now().UTC().Format("20060102_150405")
	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &ExportResult{
			Payload:     payload,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("%s_%s.csv", prefix, timestamp),
		}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &ExportResult{
			Payload:     payload,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("%s_%s.pdf", prefix, timestamp),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
