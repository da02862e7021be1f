package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/dberrors"
	"github.com/eee-uofk/coursehub/internal/pkg/logger"
)

// IQuestionRepository defines question bank persistence operations
type IQuestionRepository interface {
	Create(ctx context.Context, question *models.Question) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id int64) error
	CountBySubject(ctx context.Context, subjectID int64) (int, error)
}

// QuestionRepository handles question database operations
type QuestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db, sb: statementBuilder()}
}

var questionColumns = []string{
	"q.id", "q.subject_id", "q.topic_ar", "q.topic_en", "q.question_text_ar", "q.question_text_en",
	"q.answer_text_ar", "q.answer_text_en", "q.image_url", "q.answer_image_url", "q.difficulty",
	"q.added_by", "q.created_at", "q.updated_at", "s.name_ar", "s.name_en", "s.code",
}

func scanQuestion(row pgx.Row) (models.Question, error) {
	var q models.Question
	err := row.Scan(
		&q.ID, &q.SubjectID, &q.TopicAr, &q.TopicEn, &q.QuestionTextAr, &q.QuestionTextEn,
		&q.AnswerTextAr, &q.AnswerTextEn, &q.ImageURL, &q.AnswerImageURL, &q.Difficulty,
		&q.AddedBy, &q.CreatedAt, &q.UpdatedAt, &q.SubjectNameAr, &q.SubjectNameEn, &q.SubjectCode,
	)
	return q, err
}

// escapeLike escapes LIKE wildcards in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Create inserts a question and returns its ID
func (r *QuestionRepository) Create(ctx context.Context, q *models.Question) (int64, error) {
	sql, args, err := r.sb.Insert("questions").
		Columns("subject_id", "topic_ar", "topic_en", "question_text_ar", "question_text_en",
			"answer_text_ar", "answer_text_en", "image_url", "answer_image_url", "difficulty", "added_by").
		Values(q.SubjectID, q.TopicAr, q.TopicEn, q.QuestionTextAr, q.QuestionTextEn,
			q.AnswerTextAr, q.AnswerTextEn, q.ImageURL, q.AnswerImageURL, q.Difficulty, q.AddedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create question query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Msg("Error creating question")
		return 0, fmt.Errorf("error creating question: %w", err)
	}
	return q.ID, nil
}

// GetByID retrieves a question with its subject names
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	sql, args, err := r.sb.Select(questionColumns...).
		From("questions q").
		LeftJoin("subjects s ON s.id = q.subject_id").
		Where(squirrel.Eq{"q.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get question query: %w", err)
	}

	q, err := scanQuestion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		logger.Error().Err(err).Int64("questionID", id).Msg("Error scanning question row")
		return nil, fmt.Errorf("error getting question: %w", err)
	}
	return &q, nil
}

// List returns questions newest first. Search matches case-insensitively
// across both topics and both question texts.
func (r *QuestionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	builder := r.sb.Select(questionColumns...).
		From("questions q").
		LeftJoin("subjects s ON s.id = q.subject_id").
		OrderBy("q.created_at DESC")

	if filter.SubjectID != nil {
		builder = builder.Where(squirrel.Eq{"q.subject_id": *filter.SubjectID})
	}
	if filter.Difficulty != nil {
		builder = builder.Where(squirrel.Eq{"q.difficulty": *filter.Difficulty})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"q.topic_ar": pattern},
			squirrel.ILike{"q.topic_en": pattern},
			squirrel.ILike{"q.question_text_ar": pattern},
			squirrel.ILike{"q.question_text_en": pattern},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list questions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list questions query")
		return nil, fmt.Errorf("error querying questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}
	return questions, nil
}

// Update replaces a question's stored fields
func (r *QuestionRepository) Update(ctx context.Context, q *models.Question) error {
	sql, args, err := r.sb.Update("questions").
		SetMap(map[string]interface{}{
			"subject_id":       q.SubjectID,
			"topic_ar":         q.TopicAr,
			"topic_en":         q.TopicEn,
			"question_text_ar": q.QuestionTextAr,
			"question_text_en": q.QuestionTextEn,
			"answer_text_ar":   q.AnswerTextAr,
			"answer_text_en":   q.AnswerTextEn,
			"image_url":        q.ImageURL,
			"answer_image_url": q.AnswerImageURL,
			"difficulty":       q.Difficulty,
			"updated_at":       squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": q.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update question query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&q.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrQuestionNotFound
		}
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("questionID", q.ID).Msg("Error updating question")
		return fmt.Errorf("error updating question: %w", err)
	}
	return nil
}

// Delete removes a question row
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("questions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete question query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// CountBySubject counts the questions attached to a subject
func (r *QuestionRepository) CountBySubject(ctx context.Context, subjectID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("questions").Where(squirrel.Eq{"subject_id": subjectID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count questions query: %w", err)
	}
	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting questions: %w", err)
	}
	return n, nil
}
