// Package services – ListService
//
// This file implements ListService, the layer between HTTP handlers and the
// data access functions. For every operation it acquires one dedicated
// connection from the pool, invokes exactly one repository call on it, and
// hands the connection back. It adds no business rules: names are stored
// as given and constraint checks are left to the database.
//
// Errors from the repository are returned unchanged (domain.Error values);
// a failure to obtain a connection is reported as a pool error.
//
// Observability: every public method opens an OpenTelemetry span carrying
// the list/item identifiers involved.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-lists-backend/internal/domain"
	"github.com/tbourn/go-lists-backend/internal/repo"
)

// ListRepo defines the data access contract required by ListService.
// Each method runs a single statement on the supplied connection.
type ListRepo interface {
	ListAll(ctx context.Context, conn *gorm.DB) ([]domain.List, error)
	GetList(ctx context.Context, conn *gorm.DB, id int64) (*domain.List, error)
	CreateList(ctx context.Context, conn *gorm.DB, name string) (bool, error)
	ItemsForList(ctx context.Context, conn *gorm.DB, listID int64) ([]domain.ListItem, error)
	AddItem(ctx context.Context, conn *gorm.DB, listID int64, name string) (bool, error)
	RemoveItem(ctx context.Context, conn *gorm.DB, listID, itemID int64) error
}

// ListService exposes list and item operations over a pooled database.
type ListService struct {
	// DB owns the connection pool.
	DB *gorm.DB
	// Repo is the data access implementation.
	Repo ListRepo
}

// NewListService constructs a ListService.
func NewListService(db *gorm.DB, r ListRepo) *ListService {
	return &ListService{DB: db, Repo: r}
}

var tracer = otel.Tracer("services/ListService")

// All returns every list.
func (s *ListService) All(ctx context.Context) ([]domain.List, error) {
	ctx, span := tracer.Start(ctx, "ListService.All")
	defer span.End()

	var out []domain.List
	err := repo.WithConn(ctx, s.DB, func(conn *gorm.DB) (err error) {
		out, err = s.Repo.ListAll(ctx, conn)
		return err
	})
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("list.count", len(out)))
	return out, nil
}

// Get returns a single list or a not-found error.
func (s *ListService) Get(ctx context.Context, id int64) (*domain.List, error) {
	ctx, span := tracer.Start(ctx, "ListService.Get",
		trace.WithAttributes(attribute.Int64("list.id", id)),
	)
	defer span.End()

	var out *domain.List
	err := repo.WithConn(ctx, s.DB, func(conn *gorm.DB) (err error) {
		out, err = s.Repo.GetList(ctx, conn, id)
		return err
	})
	if err != nil {
		return nil, fail(span, err)
	}
	return out, nil
}

// Create inserts a new list named name.
func (s *ListService) Create(ctx context.Context, name string) error {
	ctx, span := tracer.Start(ctx, "ListService.Create")
	defer span.End()

	err := repo.WithConn(ctx, s.DB, func(conn *gorm.DB) error {
		_, err := s.Repo.CreateList(ctx, conn, name)
		return err
	})
	return fail(span, err)
}

// Items returns the items of listID, removed ones last.
func (s *ListService) Items(ctx context.Context, listID int64) ([]domain.ListItem, error) {
	ctx, span := tracer.Start(ctx, "ListService.Items",
		trace.WithAttributes(attribute.Int64("list.id", listID)),
	)
	defer span.End()

	var out []domain.ListItem
	err := repo.WithConn(ctx, s.DB, func(conn *gorm.DB) (err error) {
		out, err = s.Repo.ItemsForList(ctx, conn, listID)
		return err
	})
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("item.count", len(out)))
	return out, nil
}

// AddItem appends an item named name to listID.
func (s *ListService) AddItem(ctx context.Context, listID int64, name string) error {
	ctx, span := tracer.Start(ctx, "ListService.AddItem",
		trace.WithAttributes(attribute.Int64("list.id", listID)),
	)
	defer span.End()

	err := repo.WithConn(ctx, s.DB, func(conn *gorm.DB) error {
		_, err := s.Repo.AddItem(ctx, conn, listID, name)
		return err
	})
	return fail(span, err)
}

// RemoveItem marks itemID in listID as deleted. Absent pairs are a no-op.
func (s *ListService) RemoveItem(ctx context.Context, listID, itemID int64) error {
	ctx, span := tracer.Start(ctx, "ListService.RemoveItem",
		trace.WithAttributes(
			attribute.Int64("list.id", listID),
			attribute.Int64("item.id", itemID),
		),
	)
	defer span.End()

	err := repo.WithConn(ctx, s.DB, func(conn *gorm.DB) error {
		return s.Repo.RemoveItem(ctx, conn, listID, itemID)
	})
	return fail(span, err)
}

// fail records err on span (when non-nil) and returns it unchanged.
func fail(span trace.Span, err error) error {
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, domain.KindOf(err).String())
	return err
}
