package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/constant"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/dto"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/logger"
)

var (
	errRequiredFilter = errors.New("required filter")
	errEmptyUpdate    = errors.New("no columns to update")
	errMissingRow     = errors.New("written row not found")
)

// Repository is CRUD over one table. Every method runs on the caller's
// session and never commits. The primary column is generated by the
// database and therefore never inserted.
type Repository[T any] struct {
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []string
	InsertColumns []string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, otl otel.Otel) Repository[T] {
	columns := dbColumns(reflect.TypeFor[T]())

	insertColumns := slices.DeleteFunc(slices.Clone(columns), func(col string) bool {
		return col == primaryColumn
	})

	return Repository[T]{
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		InsertColumns: insertColumns,
	}
}

// Insert stores model and returns the persisted row, including generated columns.
func (repo *Repository[T]) Insert(ctx context.Context, q database.Querier, model T) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	placeholders := []string{}

	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "), repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var (
		inserted T
		key      any
	)

	if err := q.Get(ctx, &key, query, model); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return inserted, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}

	return repo.reload(ctx, q, key)
}

// Get returns the first row matching filter. The boolean is false when nothing matched.
func (repo *Repository[T]) Get(ctx context.Context, q database.Querier, filter dto.FilterGroup, columns ...string) (T, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.buildWhereClause(ctx, filter)
	selectQuery := repo.getSelectQuery(ctx, columns...)

	query := statement("SELECT", selectQuery, "FROM", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var model T

	err := q.Get(ctx, &model, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, false, fmt.Errorf("failed to get data (%s): %w", repo.entitas, err)
	}

	return model, true, nil
}

// GetAll returns rows in ascending primary key order, skipping params.Skip rows
// and returning at most params.Limit.
func (repo *Repository[T]) GetAll(ctx context.Context, q database.Querier, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.buildWhereClause(ctx, filter)
	selectQuery := repo.getSelectQuery(ctx, columns...)

	args["limit"] = params.Limit
	args["offset"] = params.Skip

	ordering := fmt.Sprintf("ORDER BY %s.%s ASC", repo.table, repo.primaryColumn)

	query := statement("SELECT", selectQuery, "FROM", repo.table, where, ordering, "LIMIT :limit OFFSET :offset")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	if err := q.Select(ctx, &models, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, q database.Querier, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.buildWhereClause(ctx, filter)

	query := statement(fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s", repo.table, repo.primaryColumn, repo.table), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	if err := q.Get(ctx, &count, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entitas, err)
	}

	return count, nil
}

// Update sets the columns in mod on rows matching filter and returns the
// first updated row. The boolean is false when nothing matched.
func (repo *Repository[T]) Update(ctx context.Context, q database.Querier, mod map[string]any, filter dto.FilterGroup) (T, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	var model T

	if len(mod) == 0 {
		return model, false, errEmptyUpdate
	}

	where, args := repo.buildWhereClause(ctx, filter)
	if where == "" {
		return model, false, errRequiredFilter
	}

	updateField := []string{}

	for _, col := range slices.Sorted(maps.Keys(mod)) {
		updateField = append(updateField, fmt.Sprintf("%s = :set_%s", col, col))
		args["set_"+col] = mod[col]
	}

	query := statement("UPDATE", repo.table, "SET", strings.Join(updateField, ", "), where, "RETURNING", repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var key any

	err := q.Get(ctx, &key, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, false, fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
	}

	model, err = repo.reload(ctx, q, key)
	if err != nil {
		return model, false, err
	}

	return model, true, nil
}

// reload reads back the row written under key. Rows are re-selected rather
// than scanned from RETURNING because sqlite reports no declared column types
// there, which leaves timestamps as text.
func (repo *Repository[T]) reload(ctx context.Context, q database.Querier, key any) (T, error) {
	filter := dto.FilterGroup{
		Filters: []dto.Filter{{Field: repo.primaryColumn, Value: key, Table: repo.table}},
	}

	model, found, err := repo.Get(ctx, q, filter)
	if err != nil {
		return model, err
	}

	if !found {
		return model, fmt.Errorf("%w (%s): %v", errMissingRow, repo.entitas, key)
	}

	return model, nil
}

// Delete removes rows matching filter. The boolean is false when nothing matched.
func (repo *Repository[T]) Delete(ctx context.Context, q database.Querier, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.buildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := statement("DELETE FROM", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := q.Exec(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to delete data (%s): %w", repo.entitas, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", repo.entitas, err)
	}

	return affected > 0, nil
}

func (repo *Repository[T]) getSelectQuery(ctx context.Context, columnsParam ...string) string {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.getSelectQuery", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	columns := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(columnsParam) > 0 && !slices.Contains(columnsParam, col) {
			continue
		}

		columns = append(columns, repo.table+"."+col)
	}

	return strings.Join(columns, ", ")
}

func (repo *Repository[T]) buildWhereClause(ctx context.Context, filter dto.FilterGroup) (string, map[string]any) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.buildWhereClause", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where == "" {
		return where, args
	}

	return "WHERE " + where, args
}

// statement joins the non-empty parts of a query with single spaces.
func statement(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}

// dbColumns lists the db tags of T, descending into embedded structs.
func dbColumns(reflectType reflect.Type) []string {
	var columns []string

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
