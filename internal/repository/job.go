package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/auctionkit/appraisal-extractor/constants"
)

// ExtractJob is one extraction attempt over a single PDF.
type ExtractJob struct {
	ID           uuid.UUID
	AuctionNo    string
	PDFPath      string
	Status       constants.JobStatus
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

type ExtractJobRepository interface {
	Start(ctx context.Context, auctionNo, pdfPath string) (*ExtractJob, error)
	FinishSuccess(ctx context.Context, jobID uuid.UUID, status constants.JobStatus) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	ListByAuctionNo(ctx context.Context, auctionNo string) ([]*ExtractJob, error)
}

type extractJobRepo struct {
	db  *DB
	log *slog.Logger
}

func NewExtractJobRepository(db *DB, log *slog.Logger) ExtractJobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &extractJobRepo{db: db, log: log}
}

func (r *extractJobRepo) Start(ctx context.Context, auctionNo, pdfPath string) (*ExtractJob, error) {
	job := &ExtractJob{
		ID:        uuid.New(),
		AuctionNo: auctionNo,
		PDFPath:   pdfPath,
		Status:    constants.JobStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	query := r.db.rebind(`
		INSERT INTO extract_jobs (id, auction_no, pdf_path, status, started_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := r.db.conn.ExecContext(ctx, query,
		job.ID.String(), job.AuctionNo, job.PDFPath, string(job.Status), job.StartedAt)
	if err != nil {
		r.log.Error("extract_job start failed", "auction_no", auctionNo, "err", err)
		return nil, dbErr("DB_INSERT", "extract_job start failed", err)
	}
	r.log.Info("extract_job started", "job_id", job.ID, "auction_no", auctionNo)
	return job, nil
}

func (r *extractJobRepo) FinishSuccess(ctx context.Context, jobID uuid.UUID, status constants.JobStatus) error {
	query := r.db.rebind(`
		UPDATE extract_jobs SET status = ?, finished_at = ? WHERE id = ?`)
	_, err := r.db.conn.ExecContext(ctx, query, string(status), time.Now().UTC(), jobID.String())
	if err != nil {
		r.log.Error("extract_job finish failed", "job_id", jobID, "err", err)
		return dbErr("DB_UPDATE", "extract_job finish failed", err)
	}
	r.log.Info("extract_job finished", "job_id", jobID, "status", status)
	return nil
}

func (r *extractJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	query := r.db.rebind(`
		UPDATE extract_jobs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`)
	_, err := r.db.conn.ExecContext(ctx, query,
		string(constants.JobStatusFailed), message, time.Now().UTC(), jobID.String())
	if err != nil {
		r.log.Error("extract_job finish(FAILED) failed", "job_id", jobID, "err", err)
		return dbErr("DB_UPDATE", "extract_job finish failed", err)
	}
	r.log.Warn("extract_job finished (FAILED)", "job_id", jobID, "error", message)
	return nil
}

func (r *extractJobRepo) ListByAuctionNo(ctx context.Context, auctionNo string) ([]*ExtractJob, error) {
	query := r.db.rebind(`
		SELECT id, auction_no, pdf_path, status, error_message, started_at, finished_at
		FROM extract_jobs WHERE auction_no = ? ORDER BY started_at`)
	rows, err := r.db.conn.QueryContext(ctx, query, auctionNo)
	if err != nil {
		return nil, dbErr("DB_QUERY", "extract_job list failed", err)
	}
	defer rows.Close()

	var out []*ExtractJob
	for rows.Next() {
		var job ExtractJob
		var id, status string
		var msg sql.NullString
		var finished sql.NullTime
		if err := rows.Scan(&id, &job.AuctionNo, &job.PDFPath, &status, &msg, &job.StartedAt, &finished); err != nil {
			return nil, dbErr("DB_SCAN", "extract_job scan failed", err)
		}
		job.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, dbErr("DB_SCAN", "extract_job id corrupt", err)
		}
		job.Status = constants.JobStatus(status)
		job.ErrorMessage = msg.String
		if finished.Valid {
			t := finished.Time
			job.FinishedAt = &t
		}
		out = append(out, &job)
	}
	return out, rows.Err()
}
