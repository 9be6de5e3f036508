// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// EntityStatus is the lifecycle status shared by users and tenants.
type EntityStatus string

const (
	StatusActive      EntityStatus = "active"
	StatusInactive    EntityStatus = "inactive"
	StatusNotVerified EntityStatus = "not_verified"
	StatusDeleted     EntityStatus = "deleted"
)

// SubscriptionStatus is the stored status flag on a subscription term.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "in_active"
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionDeleted  SubscriptionStatus = "deleted"
)

type User struct {
	ID              string       `db:"id" json:"id" validate:"required,uuid"`
	TenantID        string       `db:"tenant_id" json:"tenant_id" validate:"required,uuid"`
	Name            string       `db:"name" json:"name"`
	Email           string       `db:"email" json:"email"`
	PrimaryLanguage string       `db:"primary_language" json:"primary_language"`
	IsAccountOwner  bool         `db:"is_account_owner" json:"is_account_owner"`
	AccountTypeID   string       `db:"account_type_id" json:"account_type_id" validate:"omitempty,uuid"`
	Status          EntityStatus `db:"status" json:"status" validate:"required,oneof=active inactive not_verified deleted"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
}

type Tenant struct {
	ID          string       `db:"id" json:"id" validate:"required,uuid"`
	CompanyName string       `db:"company_name" json:"company_name"`
	Currency    string       `db:"currency" json:"currency"`
	DateFormat  string       `db:"date_format" json:"date_format"`
	TimeFormat  string       `db:"time_format" json:"time_format"`
	TimeZone    string       `db:"time_zone" json:"time_zone"`
	Status      EntityStatus `db:"status" json:"status" validate:"required,oneof=active inactive not_verified deleted"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// SubscriptionHistory is the tenant's current or most recent subscription term.
// Timestamps are epoch seconds kept as strings, matching the billing pipeline's
// wire format.
type SubscriptionHistory struct {
	ID                 string             `db:"id" json:"id" validate:"required,uuid"`
	TenantID           string             `db:"tenant_id" json:"tenant_id" validate:"required,uuid"`
	SubscriptionPlanID string             `db:"subscription_plan_id" json:"subscription_plan_id"`
	PlanPaymentType    string             `db:"plan_payment_type" json:"plan_payment_type"`
	PlanPriceType      string             `db:"plan_price_type" json:"plan_price_type"`
	InvoiceNumber      int64              `db:"invoice_number" json:"invoice_number"`
	StartTimestamp     string             `db:"start_timestamp" json:"start_timestamp"`
	EndTimestamp       string             `db:"end_timestamp" json:"end_timestamp"`
	PaidVia            string             `db:"paid_via" json:"paid_via"`
	Status             SubscriptionStatus `db:"status" json:"status" validate:"required,oneof=active in_active pending deleted"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

// ModuleDefinition is the backing-store shape of a feature module attached to
// an account type or to a tenant's default permission set.
type ModuleDefinition struct {
	Slug        string                 `db:"slug" json:"slug"`
	IsChecked   bool                   `db:"is_checked" json:"is_checked"`
	Permissions []PermissionDefinition `json:"permissions"`
}

type PermissionDefinition struct {
	Name      string `db:"name" json:"name"`
	IsChecked bool   `db:"is_checked" json:"is_checked"`
}

// ModulePermissions is one entry of a resolved PermissionSet. A permission is
// never allowed when its owning module is disabled.
type ModulePermissions struct {
	ModuleStatus bool            `json:"module_status"`
	Permissions  map[string]bool `json:"permissions"`
}

// PermissionSet maps module slugs to their resolved permission state.
type PermissionSet map[string]ModulePermissions

// Principal is the authorized identity context assembled per request. It is
// never persisted.
type Principal struct {
	UserID   string  `json:"user_id"`
	TenantID string  `json:"tenant_id"`
	User     *User   `json:"user"`
	Tenant   *Tenant `json:"tenant"`

	// UserAccountTypeID is blanked for account owners.
	UserAccountTypeID            string        `json:"user_account_type_id"`
	AllowedModulesAndPermissions PermissionSet `json:"allowed_modules_and_permissions"`

	UserPrimaryLanguage string `json:"user_primary_language"`
	TenantDateFormat    string `json:"tenant_date_format"`
	TenantTimeFormat    string `json:"tenant_time_format"`
	IsAccountOwner      bool   `json:"is_account_owner"`
}
