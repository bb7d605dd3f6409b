package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/auctionkit/appraisal-extractor/constants"
	"github.com/auctionkit/appraisal-extractor/internal/common"
)

// ReportRecord is one extracted report row, keyed by auction number.
// AppraisalFields holds the serialized appraisal object from metadata.json so
// the row round-trips the full field set without a column per heading.
type ReportRecord struct {
	AuctionNo       string
	PDFFilename     string
	LocationAddress string
	AppraisalType   string
	AppraisalFields string
	PhotoCount      int
	IsTextBased     bool
	TotalPages      int
	Status          constants.JobStatus
	UpdatedAt       time.Time
}

type ReportRepository interface {
	Upsert(ctx context.Context, rec *ReportRecord) error
	GetByAuctionNo(ctx context.Context, auctionNo string) (*ReportRecord, error)
	List(ctx context.Context) ([]*ReportRecord, error)
}

type reportRepo struct {
	db  *DB
	log *slog.Logger
}

func NewReportRepository(db *DB, log *slog.Logger) ReportRepository {
	if log == nil {
		log = slog.Default()
	}
	return &reportRepo{db: db, log: log}
}

// Upsert inserts or replaces the row for rec.AuctionNo. Re-running
// extraction over the same directory refreshes rows in place.
func (r *reportRepo) Upsert(ctx context.Context, rec *ReportRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	query := r.db.rebind(`
		INSERT INTO auction_reports
			(auction_no, pdf_filename, location_address, appraisal_type,
			 appraisal_fields, photo_count, is_text_based, total_pages,
			 status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (auction_no) DO UPDATE SET
			pdf_filename     = excluded.pdf_filename,
			location_address = excluded.location_address,
			appraisal_type   = excluded.appraisal_type,
			appraisal_fields = excluded.appraisal_fields,
			photo_count      = excluded.photo_count,
			is_text_based    = excluded.is_text_based,
			total_pages      = excluded.total_pages,
			status           = excluded.status,
			updated_at       = excluded.updated_at`)
	_, err := r.db.conn.ExecContext(ctx, query,
		rec.AuctionNo, rec.PDFFilename, rec.LocationAddress, rec.AppraisalType,
		rec.AppraisalFields, rec.PhotoCount, rec.IsTextBased, rec.TotalPages,
		string(rec.Status), rec.UpdatedAt)
	if err != nil {
		r.log.Error("auction_report upsert failed", "auction_no", rec.AuctionNo, "err", err)
		return dbErr("DB_UPSERT", "auction_report upsert failed", err)
	}
	r.log.Info("auction_report upserted", "auction_no", rec.AuctionNo, "status", rec.Status)
	return nil
}

func (r *reportRepo) GetByAuctionNo(ctx context.Context, auctionNo string) (*ReportRecord, error) {
	query := r.db.rebind(`
		SELECT auction_no, pdf_filename, location_address, appraisal_type,
		       appraisal_fields, photo_count, is_text_based, total_pages,
		       status, updated_at
		FROM auction_reports WHERE auction_no = ?`)
	rec, err := scanReport(r.db.conn.QueryRowContext(ctx, query, auctionNo))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, dbErr("DB_QUERY", "auction_report lookup failed", err)
	}
	return rec, nil
}

func (r *reportRepo) List(ctx context.Context) ([]*ReportRecord, error) {
	query := `
		SELECT auction_no, pdf_filename, location_address, appraisal_type,
		       appraisal_fields, photo_count, is_text_based, total_pages,
		       status, updated_at
		FROM auction_reports ORDER BY auction_no`
	rows, err := r.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, dbErr("DB_QUERY", "auction_report list failed", err)
	}
	defer rows.Close()

	var out []*ReportRecord
	for rows.Next() {
		rec, err := scanReport(rows)
		if err != nil {
			return nil, dbErr("DB_SCAN", "auction_report scan failed", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*ReportRecord, error) {
	var rec ReportRecord
	var addr sql.NullString
	var status string
	if err := row.Scan(&rec.AuctionNo, &rec.PDFFilename, &addr, &rec.AppraisalType,
		&rec.AppraisalFields, &rec.PhotoCount, &rec.IsTextBased, &rec.TotalPages,
		&status, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.LocationAddress = addr.String
	rec.Status = constants.JobStatus(status)
	return &rec, nil
}
