// Package service implements the board mutation core: every mutating use case
// resolves the caller's role first, validates its input, then loads the
// affected sibling groups inside a serializable transaction, computes new
// position assignments and commits all row changes as one atomic unit.
package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// maxTxRetries bounds how often a serialization conflict is retried
	// before it surfaces as a Conflict to the caller.
	maxTxRetries = 3

	maxTitleLength = 255
)

type Service struct {
	db         *gorm.DB
	resolver   *access.Resolver
	users      *repository.UserRepository
	workspaces *repository.WorkspaceRepository
	boards     *repository.BoardRepository
	members    *repository.BoardUserRepository
	statuses   *repository.StatusRepository
	tasks      *repository.TaskRepository
	log        *logrus.Logger
}

func New(
	db *gorm.DB,
	users *repository.UserRepository,
	workspaces *repository.WorkspaceRepository,
	boards *repository.BoardRepository,
	members *repository.BoardUserRepository,
	statuses *repository.StatusRepository,
	tasks *repository.TaskRepository,
	log *logrus.Logger,
) *Service {
	return &Service{
		db:         db,
		resolver:   access.NewResolver(workspaces, members),
		users:      users,
		workspaces: workspaces,
		boards:     boards,
		members:    members,
		statuses:   statuses,
		tasks:      tasks,
		log:        log,
	}
}

// inTx runs fn inside a serializable transaction, retrying serialization
// conflicts a bounded number of times. Position reads must happen inside fn,
// never from rows fetched before the transaction began.
func (s *Service) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 1; attempt <= maxTxRetries; attempt++ {
		err = s.db.WithContext(ctx).Transaction(fn, opts)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
		s.log.WithError(err).WithField("attempt", attempt).Warn("serialization conflict, retrying transaction")
	}
	return conflict("the board was modified concurrently, please retry")
}

// serialization_failure and deadlock_detected
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// unique_violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// boardForCaller loads a board and gates it against the caller's resolved
// role. A missing board and an existing board the caller has no membership on
// are indistinguishable: both come back as NotFound so that the API never
// leaks board existence to outsiders. Members below the required role get
// Forbidden.
func (s *Service) boardForCaller(ctx context.Context, callerID, boardID uuid.UUID, min access.Role) (*model.Board, access.Role, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, access.None, err
	}
	if board == nil {
		return nil, access.None, notFound("board not found")
	}

	role, err := s.resolver.Resolve(ctx, callerID, board)
	if err != nil {
		return nil, access.None, err
	}
	if role == access.None {
		return nil, access.None, notFound("board not found")
	}
	if !role.AtLeast(min) {
		return nil, access.None, forbidden("insufficient permissions for this board")
	}
	return board, role, nil
}

// concealAs rewrites a NotFound from the board gate into one naming the
// entity the caller actually addressed. Operations that load a child entity
// before resolving access use it so that a hidden board and a missing entity
// produce the same answer.
func concealAs(err error, msg string) error {
	if errors.Is(err, ErrNotFound) {
		return notFound(msg)
	}
	return err
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return validation("title must not be empty")
	}
	if len(title) > maxTitleLength {
		return validation("title is too long")
	}
	return nil
}
