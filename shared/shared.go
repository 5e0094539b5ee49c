// Package shared holds the small helpers handlers and services reach for:
// query parsing, patch building, cache keys and the request identities.
package shared

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"innkeep/shared/cache"
	"innkeep/shared/constant"
	"innkeep/shared/dto"
	"innkeep/shared/timezone"

	"github.com/rs/zerolog/log"
)

// ParseOptionalBool returns nil for an empty value.
func ParseOptionalBool(value string) (*bool, error) {
	value = strings.TrimSpace(value)
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q as bool: %w", value, err)
	}

	return &parsed, nil
}

func ParseInt(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %q as int: %w", value, err)
	}

	return parsed, nil
}

// TotalPages never reports fewer than one page.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// ChangedFields builds an update patch from a request struct keyed by its db
// tags. Zero values and nil pointers are left out so a partial request only
// touches what it names; non-nil pointers are dereferenced. The audit columns
// are always stamped.
func ChangedFields(data any, actor string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	fields := make(map[string]any, val.NumField()+2)

	for index := range val.NumField() {
		column := typ.Field(index).Tag.Get("db")
		if column == constant.Empty || column == "-" {
			continue
		}

		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		fields[column] = field.Interface()
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = actor

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// CacheKey joins the non-empty parts under prefix.
func CacheKey(prefix string, parts ...string) string {
	key := prefix

	for _, part := range parts {
		if part == constant.Empty {
			continue
		}

		key += ":" + part
	}

	return key
}

// InvalidateCaches drops every key under prefix. Failures are logged only,
// a stale entry expires with its TTL.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// Actor returns the staff user bound to the request, or the system actor for
// background jobs.
func Actor(ctx context.Context) string {
	if user, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && user != constant.Empty {
		return user
	}

	return constant.SystemActor
}

// HolderID returns the hold owner for the request: the guest session header
// when present, otherwise the authenticated staff user.
func HolderID(ctx context.Context) string {
	if holder, ok := ctx.Value(constant.ContextKeyHolderID).(string); ok && holder != constant.Empty {
		return holder
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return user
}
