package instructor

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courseroom/backend/internal/app/models"
	"github.com/courseroom/backend/internal/pkg/apperrors"
	"github.com/courseroom/backend/internal/pkg/dberrors"
	"github.com/courseroom/backend/internal/pkg/logger"
)

// PgEngine implements Engine on PostgreSQL. Writes go to the primary pool;
// reads go to the reader pool, which in replicated deployments is a replica
// that may lag the primary. That replication lag is the eventual-consistency
// window the store's persistence checks compensate for.
type PgEngine struct {
	writer *pgxpool.Pool
	reader *pgxpool.Pool
	sb     squirrel.StatementBuilderType
}

// NewPgEngine creates a PgEngine. reader may equal writer when no replica
// is configured.
func NewPgEngine(writer, reader *pgxpool.Pool) *PgEngine {
	return &PgEngine{
		writer: writer,
		reader: reader,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Select returns detached copies of all records matching the filter
func (e *PgEngine) Select(ctx context.Context, f Filter) ([]models.InstructorRecord, error) {
	q := e.sb.Select("id", "google_id", "course_id", "email", "name").
		From("instructors")
	if f.CourseID != "" {
		q = q.Where(squirrel.Eq{"course_id": f.CourseID})
	}
	if f.GoogleID != "" {
		q = q.Where(squirrel.Eq{"google_id": f.GoogleID})
	}
	if f.Email != "" {
		q = q.Where(squirrel.Eq{"email": f.Email})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building select instructors SQL")
		return nil, fmt.Errorf("failed to build select instructors query: %w", err)
	}

	rows, err := e.reader.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing select instructors query")
		return nil, fmt.Errorf("error querying instructors: %w", err)
	}
	defer rows.Close()

	var records []models.InstructorRecord
	for rows.Next() {
		var rec models.InstructorRecord
		if err := rows.Scan(&rec.ID, &rec.GoogleID, &rec.CourseID, &rec.Email, &rec.Name); err != nil {
			logger.Error().Err(err).Msg("Error scanning instructor row")
			return nil, fmt.Errorf("error scanning instructor: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating instructor rows")
		return nil, fmt.Errorf("error iterating instructors: %w", err)
	}

	return records, nil
}

// Insert issues a write for a new record and fills in its surrogate ID
func (e *PgEngine) Insert(ctx context.Context, rec *models.InstructorRecord) error {
	sql, args, err := e.sb.Insert("instructors").
		Columns("google_id", "course_id", "email", "name").
		Values(rec.GoogleID, rec.CourseID, rec.Email, rec.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert instructor SQL")
		return fmt.Errorf("failed to build insert instructor query: %w", err)
	}

	err = e.writer.QueryRow(ctx, sql, args...).Scan(&rec.ID)
	if err != nil {
		// The schema ships without a unique index on (course_id, google_id);
		// the facade owns that invariant. Translate 23505 anyway in case a
		// deployment added the constraint.
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("googleId", rec.GoogleID).Str("courseId", rec.CourseID).
				Msg("Unique constraint rejected duplicate instructor insert")
			return apperrors.NewEntityAlreadyExistsError(rec.GoogleID, rec.CourseID)
		}
		logger.Error().Err(err).Str("googleId", rec.GoogleID).Str("courseId", rec.CourseID).
			Msg("Error executing insert instructor query")
		return fmt.Errorf("error creating instructor: %w", err)
	}

	return nil
}

// Update rewrites name and email of the record identified by the key pair
func (e *PgEngine) Update(ctx context.Context, rec *models.InstructorRecord) error {
	sql, args, err := e.sb.Update("instructors").
		Set("name", rec.Name).
		Set("email", rec.Email).
		Where(squirrel.Eq{"course_id": rec.CourseID, "google_id": rec.GoogleID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update instructor SQL")
		return fmt.Errorf("failed to build update instructor query: %w", err)
	}

	if _, err := e.writer.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("googleId", rec.GoogleID).Str("courseId", rec.CourseID).
			Msg("Error executing update instructor query")
		return fmt.Errorf("error updating instructor: %w", err)
	}

	return nil
}

// Delete issues a delete for the record identified by the key pair
func (e *PgEngine) Delete(ctx context.Context, courseID, googleID string) error {
	sql, args, err := e.sb.Delete("instructors").
		Where(squirrel.Eq{"course_id": courseID, "google_id": googleID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete instructor SQL")
		return fmt.Errorf("failed to build delete instructor query: %w", err)
	}

	if _, err := e.writer.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("googleId", googleID).Str("courseId", courseID).
			Msg("Error executing delete instructor query")
		return fmt.Errorf("error deleting instructor: %w", err)
	}

	return nil
}

// DeleteAll issues deletes for every record matching the filter
func (e *PgEngine) DeleteAll(ctx context.Context, f Filter) error {
	if f.IsEmpty() {
		return errors.New("refusing to bulk-delete instructors without a filter")
	}

	q := e.sb.Delete("instructors")
	if f.CourseID != "" {
		q = q.Where(squirrel.Eq{"course_id": f.CourseID})
	}
	if f.GoogleID != "" {
		q = q.Where(squirrel.Eq{"google_id": f.GoogleID})
	}
	if f.Email != "" {
		q = q.Where(squirrel.Eq{"email": f.Email})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building bulk delete instructors SQL")
		return fmt.Errorf("failed to build bulk delete instructors query: %w", err)
	}

	if _, err := e.writer.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing bulk delete instructors query")
		return fmt.Errorf("error bulk deleting instructors: %w", err)
	}

	return nil
}

// Flush is a no-op: pgx statements commit as they execute. It exists for
// engines that buffer writes.
func (e *PgEngine) Flush(ctx context.Context) error {
	return nil
}
