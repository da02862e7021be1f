package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	SubjectRepository      *SubjectRepository
	ResourceRepository     *ResourceRepository
	QuestionRepository     *QuestionRepository
	AnnouncementRepository *AnnouncementRepository
	ReactionRepository     *ReactionRepository
	StatisticsRepository   *StatisticsRepository
	HealthRepository       *HealthRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		SubjectRepository:      NewSubjectRepository(db),
		ResourceRepository:     NewResourceRepository(db),
		QuestionRepository:     NewQuestionRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
		ReactionRepository:     NewReactionRepository(db),
		StatisticsRepository:   NewStatisticsRepository(db),
		HealthRepository:       NewHealthRepository(db),
	}
}

// statementBuilder returns a squirrel builder using Postgres placeholders
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
