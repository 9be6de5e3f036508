// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/access-service/internal/db"
	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/monitoring"
	"github.com/canonical/access-service/internal/tracing"
	"github.com/canonical/access-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	var u types.User
	var accountTypeID sql.NullString
	err := s.db.Statement(ctx).
		Select("id", "tenant_id", "name", "email", "primary_language", "is_account_owner", "account_type_id", "status", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.PrimaryLanguage, &u.IsAccountOwner, &accountTypeID, &u.Status, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.AccountTypeID = accountTypeID.String

	return &u, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	var t types.Tenant
	err := s.db.Statement(ctx).
		Select("id", "company_name", "currency", "date_format", "time_format", "time_zone", "status", "created_at", "updated_at").
		From("tenants").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.CompanyName, &t.Currency, &t.DateFormat, &t.TimeFormat, &t.TimeZone, &t.Status, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

func (s *Storage) GetCurrentSubscriptionByTenantID(ctx context.Context, tenantID string) (*types.SubscriptionHistory, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCurrentSubscriptionByTenantID")
	defer span.End()

	var h types.SubscriptionHistory
	err := s.db.Statement(ctx).
		Select("id", "tenant_id", "subscription_plan_id", "plan_payment_type", "plan_price_type", "invoice_number", "start_timestamp", "end_timestamp", "paid_via", "status", "created_at", "updated_at").
		From("tenant_subscription_histories").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		Limit(1).
		QueryRowContext(ctx).
		Scan(&h.ID, &h.TenantID, &h.SubscriptionPlanID, &h.PlanPaymentType, &h.PlanPriceType, &h.InvoiceNumber, &h.StartTimestamp, &h.EndTimestamp, &h.PaidVia, &h.Status, &h.CreatedAt, &h.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription history: %w", err)
	}

	return &h, nil
}

func (s *Storage) GetAccountTypeModules(ctx context.Context, accountTypeID string) ([]types.ModuleDefinition, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAccountTypeModules")
	defer span.End()

	return s.listModules(ctx, sq.Eq{"m.account_type_id": accountTypeID})
}

func (s *Storage) GetTenantDefaultModules(ctx context.Context, tenantID string) ([]types.ModuleDefinition, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantDefaultModules")
	defer span.End()

	return s.listModules(ctx, sq.And{sq.Eq{"m.tenant_id": tenantID}, sq.Eq{"m.account_type_id": nil}})
}

func (s *Storage) listModules(ctx context.Context, pred interface{}) ([]types.ModuleDefinition, error) {
	rows, err := s.db.Statement(ctx).
		Select("m.slug", "m.is_checked", "p.name", "p.is_checked").
		From("account_type_modules m").
		LeftJoin("account_type_permissions p ON p.module_id = m.id").
		Where(pred).
		OrderBy("m.slug", "p.name").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	defer rows.Close()

	var modules []types.ModuleDefinition
	index := map[string]int{}

	for rows.Next() {
		var slug string
		var moduleChecked bool
		var name sql.NullString
		var permChecked sql.NullBool

		if err := rows.Scan(&slug, &moduleChecked, &name, &permChecked); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}

		i, ok := index[slug]
		if !ok {
			modules = append(modules, types.ModuleDefinition{Slug: slug, IsChecked: moduleChecked})
			i = len(modules) - 1
			index[slug] = i
		}

		if name.Valid {
			modules[i].Permissions = append(modules[i].Permissions, types.PermissionDefinition{
				Name:      name.String,
				IsChecked: permChecked.Bool,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return modules, nil
}
